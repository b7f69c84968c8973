// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"errors"
	"testing"
)

func TestNewIDIsElevenBase64Chars(t *testing.T) {
	id := newID()
	if len(id) != 11 {
		t.Fatalf("len(newID()) = %d, want 11", len(id))
	}
	for _, c := range id {
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '+' || c == '/') {
			t.Fatalf("newID() contains non-base64 character %q", c)
		}
	}
}

func TestPushPopBlockBalanced(t *testing.T) {
	u := newExecutionUnit()
	b := u.PushBlock(10)
	got := u.PopBlock(20)
	if got != b {
		t.Fatalf("PopBlock returned a different block than was pushed")
	}
	if b.Begin.Timestamp != 10 || b.End.Timestamp != 20 {
		t.Errorf("block bounds = [%d,%d], want [10,20]", b.Begin.Timestamp, b.End.Timestamp)
	}
}

func TestPopBlockUnbalancedCreatesEndOnlyBlock(t *testing.T) {
	u := newExecutionUnit()
	b := u.PopBlock(5) // no matching push
	if b.Begin != nil {
		t.Errorf("unbalanced pop's block has a Begin point, want nil")
	}
	if b.End == nil || b.End.Timestamp != 5 {
		t.Fatalf("unbalanced pop's block End = %v, want timestamp 5", b.End)
	}
}

func TestNestedPushPop(t *testing.T) {
	u := newExecutionUnit()
	outer := u.PushBlock(0)
	inner := u.PushBlock(5)
	gotInner := u.PopBlock(10)
	gotOuter := u.PopBlock(20)

	if gotInner != inner || gotOuter != outer {
		t.Fatalf("push/pop did not nest as a stack")
	}
}

func TestCreateBeginPointPanicsOnSecondCall(t *testing.T) {
	b := newBlock()
	b.CreateBeginPoint(1)
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic calling CreateBeginPoint twice")
		}
	}()
	b.CreateBeginPoint(2)
}

func TestNormalizeBlocksFillsOpenBounds(t *testing.T) {
	tr := NewTrace(0, 100, "")
	u := tr.AddUnit()
	b := u.PopBlock(50) // begin-less block from an unbalanced pop

	if err := u.NormalizeBlocks(tr); err != nil {
		t.Fatalf("NormalizeBlocks: %v", err)
	}
	if b.Begin.Timestamp != tr.Begin {
		t.Errorf("Begin.Timestamp = %d, want trace begin %d", b.Begin.Timestamp, tr.Begin)
	}
}

func TestAddPointSynthesizesZeroLengthBlock(t *testing.T) {
	tr := NewTrace(0, 100, "")
	u := tr.AddUnit()
	if err := u.NormalizeBlocks(tr); err != nil {
		t.Fatalf("NormalizeBlocks: %v", err)
	}

	p, err := u.AddPoint(42)
	if err != nil {
		t.Fatalf("AddPoint: %v", err)
	}
	if p.Timestamp != 42 {
		t.Errorf("point timestamp = %d, want 42", p.Timestamp)
	}
	if len(u.Blocks) != 1 {
		t.Fatalf("Blocks = %d, want 1 synthesized zero-length block", len(u.Blocks))
	}
	if u.Blocks[0].Begin.Timestamp != 42 || u.Blocks[0].End.Timestamp != 42 {
		t.Errorf("synthesized block bounds = [%d,%d], want [42,42]",
			u.Blocks[0].Begin.Timestamp, u.Blocks[0].End.Timestamp)
	}
}

func TestAddPointUsesDeepestContainingBlock(t *testing.T) {
	tr := NewTrace(0, 100, "")
	u := tr.AddUnit()
	u.PushBlock(0)
	inner := u.PushBlock(10)
	u.PopBlock(20)
	u.PopBlock(30)
	if err := u.NormalizeBlocks(tr); err != nil {
		t.Fatalf("NormalizeBlocks: %v", err)
	}

	p, err := u.AddPoint(15)
	if err != nil {
		t.Fatalf("AddPoint: %v", err)
	}
	found := false
	for _, op := range inner.OtherPoints {
		if op == p {
			found = true
		}
	}
	if !found {
		t.Errorf("point at ts=15 was not attached to the innermost block")
	}
}

func TestAddChildBlockCreatesNestedCallReturnEdges(t *testing.T) {
	tr := NewTrace(0, 100, "")
	u := tr.AddUnit()
	u.PushBlock(0)
	u.PushBlock(10)
	u.PopBlock(20)
	u.PopBlock(30)

	if err := u.NormalizeBlocks(tr); err != nil {
		t.Fatalf("NormalizeBlocks: %v", err)
	}
	if len(tr.Edges) != 2 {
		t.Fatalf("Edges = %d, want 2 (one nested_call, one nested_return)", len(tr.Edges))
	}
	kinds := map[EdgeKind]bool{}
	for _, e := range tr.Edges {
		kinds[e.Kind] = true
	}
	if !kinds[EdgeNestedCall] || !kinds[EdgeNestedReturn] {
		t.Errorf("edge kinds = %v, want both nested_call and nested_return", kinds)
	}
}

func TestAddChildBlockRejectsNonNestedChild(t *testing.T) {
	tr := NewTrace(0, 100, "")
	parent := newBlock()
	parent.CreateBeginPoint(0)
	parent.CreateEndPoint(10)

	child := newBlock()
	child.CreateBeginPoint(5)
	child.CreateEndPoint(20) // extends past parent's end: not nested

	err := tr.addChildBlock(parent, child)
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("addChildBlock with non-nested child: err = %v, want ErrInvariant", err)
	}
}

func TestTraceCollectFlattensUnits(t *testing.T) {
	tr := NewTrace(0, 100, "")
	u := tr.AddUnit()
	u.PushBlock(0)
	u.PopBlock(10)
	if err := u.NormalizeBlocks(tr); err != nil {
		t.Fatalf("NormalizeBlocks: %v", err)
	}
	tr.collect()
	if len(tr.Blocks) != 1 {
		t.Errorf("tr.Blocks = %d, want 1", len(tr.Blocks))
	}
	if len(tr.Points) != 2 { // begin + end
		t.Errorf("tr.Points = %d, want 2", len(tr.Points))
	}
}
