// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entries

import (
	"encoding/binary"
	"errors"
)

// Errors returned by the pack/unpack contracts of generated entry types,
// and by the dispatch parser.
var (
	ErrWireShort       = errors.New("entries: buffer too small")
	ErrWireTagMismatch = errors.New("entries: type tag mismatch")
	ErrUnknownKind     = errors.New("entries: unknown type_id")
)

// putUint writes the low width bytes of v to dst in host byte order.
func putUint(dst []byte, width int, v uint64) {
	switch width {
	case 1:
		dst[0] = byte(v)
	case 2:
		binary.NativeEndian.PutUint16(dst, uint16(v))
	case 4:
		binary.NativeEndian.PutUint32(dst, uint32(v))
	case 8:
		binary.NativeEndian.PutUint64(dst, v)
	default:
		panic("entries: unsupported integer width")
	}
}

// getUint reads width bytes from src in host byte order.
func getUint(src []byte, width int) uint64 {
	switch width {
	case 1:
		return uint64(src[0])
	case 2:
		return uint64(binary.NativeEndian.Uint16(src))
	case 4:
		return uint64(binary.NativeEndian.Uint32(src))
	case 8:
		return binary.NativeEndian.Uint64(src)
	default:
		panic("entries: unsupported integer width")
	}
}
