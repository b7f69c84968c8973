// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entries

import "testing"

func TestRegistryAssignsMonotonicTypeIDs(t *testing.T) {
	var r Registry
	a, err := r.NewMemoryFormat("A", Field{Name: "x", Type: Uint8})
	if err != nil {
		t.Fatalf("NewMemoryFormat(A): %v", err)
	}
	b, err := r.NewMemoryFormat("B", Field{Name: "y", Type: Uint32})
	if err != nil {
		t.Fatalf("NewMemoryFormat(B): %v", err)
	}
	if a.TypeID == 0 || b.TypeID != a.TypeID+1 {
		t.Errorf("TypeIDs not monotonic: a=%d b=%d", a.TypeID, b.TypeID)
	}
}

func TestNewMemoryFormatRejectsNonTrailingDynamicArray(t *testing.T) {
	var r Registry
	_, err := r.NewMemoryFormat("Bad",
		Field{Name: "data", Type: DynamicArrayType{Member: Uint8}},
		Field{Name: "trailing", Type: Uint32},
	)
	if err == nil {
		t.Fatal("expected an error for a non-trailing dynamic array field")
	}
}

func TestDefaultRegistryFormatsAreDistinct(t *testing.T) {
	ids := map[uint8]string{}
	for _, f := range []*MemoryFormat{StandardFormat, BytesFormat, FramesFormat} {
		if prev, ok := ids[f.TypeID]; ok {
			t.Fatalf("TypeID %d assigned to both %s and %s", f.TypeID, prev, f.Typename)
		}
		ids[f.TypeID] = f.Typename
	}
}

func TestAlignPayloadRoundsUpTo4(t *testing.T) {
	cases := map[int]int{0: 0, 1: 4, 3: 4, 4: 4, 5: 8, 11: 12}
	for in, want := range cases {
		if got := AlignPayload(in); got != want {
			t.Errorf("AlignPayload(%d) = %d, want %d", in, got, want)
		}
	}
}
