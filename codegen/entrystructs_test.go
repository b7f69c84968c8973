// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"strings"
	"testing"

	"github.com/gotrace/profilo/entries"
)

func TestEntryStructsCodegenEmitsSignableGoSource(t *testing.T) {
	g := &EntryStructsCodegen{
		Package: "entries",
		Lang:    LanguageGo,
		Descs: []*entries.EntryDescription{
			{ID: 1, Name: "STANDARD", Format: entries.StandardFormat},
			{ID: 2, Name: "BYTES", Format: entries.BytesFormat},
		},
	}

	out, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, sentinelToken) {
		t.Fatalf("Generate output has no sentinel to sign")
	}

	signed, err := Sign(out)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if ok, err := Verify(signed); err != nil || !ok {
		t.Fatalf("Verify(signed) = %v, %v; want true, nil", ok, err)
	}

	for _, want := range []string{"type StandardEntry struct", "type BytesEntry struct", "func (e *StandardEntry) Pack(", "func (e *BytesEntry) Unpack("} {
		if !strings.Contains(signed, want) {
			t.Errorf("generated source missing %q", want)
		}
	}
}

func TestEntryStructsCodegenDeduplicatesByTypename(t *testing.T) {
	g := &EntryStructsCodegen{
		Package: "entries",
		Lang:    LanguageGo,
		Descs: []*entries.EntryDescription{
			{ID: 1, Name: "STANDARD_A", Format: entries.StandardFormat},
			{ID: 2, Name: "STANDARD_B", Format: entries.StandardFormat},
		},
	}
	out, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n := strings.Count(out, "type StandardEntry struct"); n != 1 {
		t.Errorf("StandardEntry struct declared %d times, want 1", n)
	}
}

func TestEntryStructsCodegenRejectsUnsupportedLanguage(t *testing.T) {
	g := &EntryStructsCodegen{Package: "entries", Lang: LanguageCpp}
	if _, err := g.Generate(); err == nil {
		t.Fatal("expected an error generating non-Go output")
	}
}

func TestDispatchParserCodegenEmitsVisitorInterface(t *testing.T) {
	g := &DispatchParserCodegen{
		Package: "entries",
		Lang:    LanguageGo,
		Descs: []*entries.EntryDescription{
			{ID: 1, Name: "STANDARD", Format: entries.StandardFormat},
			{ID: 2, Name: "FRAMES", Format: entries.FramesFormat},
		},
	}
	out, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, want := range []string{"type Visitor interface", "VisitStandardEntry(e *StandardEntry) error", "VisitFramesEntry(e *FramesEntry) error", "func Dispatch("} {
		if !strings.Contains(out, want) {
			t.Errorf("generated dispatch source missing %q", want)
		}
	}
}
