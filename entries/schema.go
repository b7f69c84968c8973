// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entries

import "fmt"

// Field is one (name, type) pair of a MemoryFormat, in declaration order.
type Field struct {
	Name string
	Type Type
}

// MemoryFormat is a named record layout: an ordered list of fields plus a
// type name, with a monotonically-assigned numeric TypeID used as the
// one-byte serialization discriminator. Only the last field may be a
// dynamic array.
type MemoryFormat struct {
	Typename string
	Fields   []Field
	TypeID   uint8
}

// Registry assigns monotonically increasing type IDs to MemoryFormats. A
// zero Registry is ready to use; IDs start at 1, with 0 reserved as
// "unknown".
type Registry struct {
	next uint8
}

// NewMemoryFormat validates and registers a new record layout, assigning
// it the next available type ID.
//
// It is an error for a dynamic-array field to appear anywhere but last.
func (r *Registry) NewMemoryFormat(typename string, fields ...Field) (*MemoryFormat, error) {
	for i, f := range fields {
		if f.Type.IsDynamic() && i != len(fields)-1 {
			return nil, fmt.Errorf("entries: %s: dynamic array field %q must be last", typename, f.Name)
		}
	}

	r.next++
	if r.next == 0 {
		return nil, fmt.Errorf("entries: %s: type ID space exhausted", typename)
	}

	return &MemoryFormat{
		Typename: typename,
		Fields:   fields,
		TypeID:   r.next,
	}, nil
}

// ConstantSize is the sum of the constant sizes of every field. For a
// format whose last field is a dynamic array, this is the fixed header
// size; the runtime payload is computed per-entry (see the Size methods in generated_entries.go).
func (m *MemoryFormat) ConstantSize() int {
	size := 0
	for _, f := range m.Fields {
		size += f.Type.ConstantSize()
	}
	return size
}

// IsDynamic reports whether the format's last field is a dynamic array.
func (m *MemoryFormat) IsDynamic() bool {
	if len(m.Fields) == 0 {
		return false
	}
	return m.Fields[len(m.Fields)-1].Type.IsDynamic()
}

// EntryDescription names one kind of trace event and the memory format
// used to serialize entries of that kind.
type EntryDescription struct {
	ID     uint32
	Name   string
	Format *MemoryFormat
}
