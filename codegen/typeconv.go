// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"fmt"

	"github.com/gotrace/profilo/entries"
)

// fieldIR is the Go-target intermediate representation of one
// entries.Field, flattened into what the struct/pack/unpack templates
// need. It intentionally knows nothing about entries.Type beyond what was
// extracted by newFieldIR, keeping the templates free of type switches.
type fieldIR struct {
	Name     string // exported Go field name
	GoType   string // declared Go type
	ElemType string // element type, for array fields
	Width    int    // byte width for primitive/enum fields
	IsArray  bool
	Count    int // ArrayType element count
	IsDyn    bool
	DynWidth int    // byte width of one dynamic-array element
	DynElem  string // Go element type of the dynamic-array slice
	SizeName string // exported Go name of the paired "size" field

	// IsSizeField marks the size half of a dynamic array's pair. It is
	// declared and counted like any other uint16 field, but Pack/Unpack
	// skip it in the plain-field path: the paired Dyn field packs and
	// unpacks the size itself, immediately before its payload.
	IsSizeField bool
}

func exportName(name string) string {
	if name == "" {
		return name
	}
	b := []byte(name)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// newFieldIR converts one declared entries.Field into its Go-target IR.
// It returns one fieldIR for primitive/array/enum fields, or two (size
// field, then values field) for a dynamic array, since both of the
// array's implicit members need Go struct fields.
func newFieldIR(f entries.Field) ([]fieldIR, error) {
	name := exportName(f.Name)

	switch t := f.Type.(type) {
	case entries.IntType:
		return []fieldIR{{Name: name, GoType: t.GoType(), Width: t.Width}}, nil

	case entries.EnumType:
		return []fieldIR{{Name: name, GoType: "uint8", Width: 1}}, nil

	case entries.ArrayType:
		return []fieldIR{{
			Name:     name,
			GoType:   fmt.Sprintf("[%d]%s", t.Count, t.Member.GoType()),
			ElemType: t.Member.GoType(),
			IsArray:  true,
			Count:    t.Count,
			Width:    t.Member.Width,
		}}, nil

	case entries.DynamicArrayType:
		sizeName := name + "Size"
		return []fieldIR{
			{Name: sizeName, GoType: "uint16", Width: 2, IsSizeField: true},
			{
				Name:     name,
				GoType:   "[]" + t.Member.GoType(),
				IsDyn:    true,
				DynWidth: t.Member.Width,
				DynElem:  t.Member.GoType(),
				SizeName: sizeName,
			},
		}, nil

	default:
		return nil, fmt.Errorf("codegen: unsupported field type %T for field %q", f.Type, f.Name)
	}
}

// formatIR is the Go-target IR of an entire entries.MemoryFormat.
type formatIR struct {
	Typename string
	TypeID   uint8
	Fields   []fieldIR
}

func newFormatIR(m *entries.MemoryFormat) (*formatIR, error) {
	out := &formatIR{Typename: m.Typename, TypeID: m.TypeID}
	for _, f := range m.Fields {
		irs, err := newFieldIR(f)
		if err != nil {
			return nil, err
		}
		out.Fields = append(out.Fields, irs...)
	}
	return out, nil
}
