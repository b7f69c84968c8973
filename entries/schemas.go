// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entries

// DefaultRegistry assigns wire type IDs to the memory formats declared
// below, in declaration order.
var DefaultRegistry Registry

// The three memory formats the runtime ring buffer actually emits:
// StandardFormat for ordinary timestamped events, BytesFormat for
// string/annotation payloads, and FramesFormat for native stack samples.
var (
	StandardFormat = mustFormat("StandardEntry",
		Field{Name: "id", Type: Int32},
		Field{Name: "kind", Type: EnumType{}},
		Field{Name: "timestamp", Type: Int64},
		Field{Name: "tid", Type: Int32},
		Field{Name: "arg1", Type: Int32},
		Field{Name: "arg2", Type: Int32},
		Field{Name: "arg3", Type: Int64},
	)

	BytesFormat = mustFormat("BytesEntry",
		Field{Name: "id", Type: Int32},
		Field{Name: "kind", Type: EnumType{}},
		Field{Name: "arg1", Type: Int32},
		Field{Name: "data", Type: DynamicArrayType{Member: Uint8}},
	)

	FramesFormat = mustFormat("FramesEntry",
		Field{Name: "id", Type: Int32},
		Field{Name: "kind", Type: EnumType{}},
		Field{Name: "timestamp", Type: Int64},
		Field{Name: "tid", Type: Int32},
		Field{Name: "frames", Type: DynamicArrayType{Member: Uint64}},
	)
)

func mustFormat(typename string, fields ...Field) *MemoryFormat {
	m, err := DefaultRegistry.NewMemoryFormat(typename, fields...)
	if err != nil {
		panic(err)
	}
	return m
}
