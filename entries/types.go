// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package entries describes the packed, variable-length record layouts
// used on the wire by the runtime log-entry ring buffer, and the
// deterministic pack/unpack contracts that go with them.
package entries

import "fmt"

// Type is a tagged variant over the primitive and compound shapes a
// record field can take. Every Type knows its constant (inline) size and
// whether it carries a trailing dynamic payload.
type Type interface {
	// ConstantSize is the number of bytes this type contributes to a
	// record's fixed-size header: the type's own size for primitives,
	// the sum of member sizes for compounds, and just the inline
	// size/pointer-placeholder pair for a dynamic array.
	ConstantSize() int

	// IsDynamic reports whether this type carries a variable-length
	// payload following its constant-size header.
	IsDynamic() bool
}

// IntType is a fixed-width signed or unsigned integer.
type IntType struct {
	Width  int // 1, 2, 4, or 8 bytes
	Signed bool
}

var (
	Int8   = IntType{Width: 1, Signed: true}
	Int16  = IntType{Width: 2, Signed: true}
	Int32  = IntType{Width: 4, Signed: true}
	Int64  = IntType{Width: 8, Signed: true}
	Uint8  = IntType{Width: 1, Signed: false}
	Uint16 = IntType{Width: 2, Signed: false}
	Uint32 = IntType{Width: 4, Signed: false}
	Uint64 = IntType{Width: 8, Signed: false}
)

func (t IntType) ConstantSize() int { return t.Width }
func (t IntType) IsDynamic() bool   { return false }

func (t IntType) GoType() string {
	bits := t.Width * 8
	u := "u"
	if t.Signed {
		u = ""
	}
	return fmt.Sprintf("%sint%d", u, bits)
}

// EnumType represents a one-byte unsigned enumeration tag, such as the
// EntryType discriminator embedded in a record.
type EnumType struct{}

func (EnumType) ConstantSize() int { return 1 }
func (EnumType) IsDynamic() bool   { return false }

// ArrayType is a fixed-size array of an integer member type.
type ArrayType struct {
	Member IntType
	Count  int
}

func (t ArrayType) ConstantSize() int { return t.Member.Width * t.Count }
func (t ArrayType) IsDynamic() bool   { return false }

// PointerType is a pointer to an integer, always a 4-byte on-wire
// placeholder; the real payload is written inline by a DynamicArrayType.
type PointerType struct {
	Pointee IntType
}

// PointerWireSize is the fixed on-wire width of a pointer placeholder.
const PointerWireSize = 4

func (t PointerType) ConstantSize() int { return PointerWireSize }
func (t PointerType) IsDynamic() bool   { return false }

// Member is one named field of a CompoundType, in declaration order.
type Member struct {
	Name string
	Type Type
}

// CompoundType is a named, ordered list of member fields.
type CompoundType struct {
	Members []Member
}

func (t CompoundType) ConstantSize() int {
	size := 0
	for _, m := range t.Members {
		size += m.Type.ConstantSize()
	}
	return size
}

func (t CompoundType) IsDynamic() bool {
	for _, m := range t.Members {
		if m.Type.IsDynamic() {
			return true
		}
	}
	return false
}

// Member names of the implicit pair every dynamic array carries.
const (
	DynamicArrayMemberSize   = "size"
	DynamicArrayMemberValues = "values"
)

// DynamicArrayType is a compound carrying a u16 size member and a
// pointer-to-T values member. Its ConstantSize covers only the inline
// header (size field + pointer placeholder); the runtime payload size
// depends on the record's actual element count and is computed
// separately (see the Size methods in generated_entries.go).
type DynamicArrayType struct {
	Member IntType
}

func (t DynamicArrayType) fields() CompoundType {
	return CompoundType{Members: []Member{
		{Name: DynamicArrayMemberSize, Type: Uint16},
		{Name: DynamicArrayMemberValues, Type: PointerType{Pointee: t.Member}},
	}}
}

func (t DynamicArrayType) ConstantSize() int { return t.fields().ConstantSize() }
func (t DynamicArrayType) IsDynamic() bool   { return true }

// AlignPayload rounds an offset up to the next 4-byte boundary, as
// required before writing or reading a dynamic array's payload.
func AlignPayload(offset int) int {
	return (offset + 3) &^ 3
}
