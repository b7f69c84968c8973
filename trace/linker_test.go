// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"reflect"
	"testing"
)

func TestLinkEntriesStandardUsesArg2(t *testing.T) {
	entries := []rawEntry{
		{ID: 1, Type: "MARK_PUSH", Arg2: 0},
		{ID: 2, Type: "COUNTER", Arg2: 1},
	}
	l := linkEntries(entries)
	if got := l.childrenOf(1); !reflect.DeepEqual(got, []int32{2}) {
		t.Errorf("childrenOf(1) = %v, want [2]", got)
	}
}

func TestLinkEntriesBytesUsesArg1(t *testing.T) {
	entries := []rawEntry{
		{ID: 1, Type: "TRACE_THREAD_NAME", Arg2: 0},
		{ID: 2, Type: "STRING_KEY", Arg1: 1, IsBytes: true, Data: "__name"},
	}
	l := linkEntries(entries)
	if got := l.childrenOf(1); !reflect.DeepEqual(got, []int32{2}) {
		t.Errorf("childrenOf(1) = %v, want [2]", got)
	}
}

func TestLinkEntriesIgnoresCPUCounterArg2(t *testing.T) {
	entries := []rawEntry{
		{ID: 1, Type: "MARK_PUSH"},
		{ID: 2, Type: "CPU_COUNTER", Arg2: 1}, // arg2 is a core number here, not a parent id
	}
	l := linkEntries(entries)
	if got := l.childrenOf(1); len(got) != 0 {
		t.Errorf("childrenOf(1) = %v, want none (CPU_COUNTER opts out of parent linking)", got)
	}
}

func TestLinkEntriesIgnoresUnseenParent(t *testing.T) {
	entries := []rawEntry{
		{ID: 2, Type: "COUNTER", Arg2: 999}, // 999 never appears as an entry id
	}
	l := linkEntries(entries)
	if parent, ok := l.parent[2]; ok {
		t.Errorf("parent[2] = %d, want no entry (parent id never seen)", parent)
	}
}

func TestLinkEntriesPreservesArrivalOrder(t *testing.T) {
	entries := []rawEntry{
		{ID: 1, Type: "MARK_PUSH"},
		{ID: 3, Type: "COUNTER", Arg2: 1},
		{ID: 2, Type: "COUNTER", Arg2: 1},
	}
	l := linkEntries(entries)
	got := l.childrenOf(1)
	want := []int32{3, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("childrenOf(1) = %v, want %v (arrival order, not sorted)", got, want)
	}
}
