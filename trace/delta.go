// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import "strconv"

// deltaDecoder reconstructs absolute fields from the delta-encoded
// stream. Bytes entries are passed through unchanged and do not reset
// the delta baseline.
type deltaDecoder struct {
	multiplier int64
	last       *rawEntry
}

func newDeltaDecoder(headers map[string]string) *deltaDecoder {
	precision := 0
	if v, ok := headers["prec"]; ok {
		if p, err := strconv.Atoi(v); err == nil {
			precision = p
		}
	}
	multiplier := int64(1)
	for i := 0; i < 9-precision; i++ {
		multiplier *= 10
	}
	return &deltaDecoder{multiplier: multiplier}
}

// decode applies the decoder's running baseline to e, returning the
// absolute entry. e is consumed by value, so the caller's rawEntry is
// never mutated in place.
func (d *deltaDecoder) decode(e rawEntry) rawEntry {
	if e.IsBytes {
		return e
	}

	if d.last == nil {
		e.Timestamp *= d.multiplier
		d.last = &e
		return e
	}

	out := rawEntry{
		ID:        wrapAdd32(d.last.ID, e.ID),
		Type:      e.Type,
		Timestamp: wrapAdd64(d.last.Timestamp, e.Timestamp*d.multiplier),
		Tid:       wrapAdd32(d.last.Tid, e.Tid),
		Arg1:      wrapAdd32(d.last.Arg1, e.Arg1),
		Arg2:      wrapAdd32(d.last.Arg2, e.Arg2),
		Arg3:      wrapAdd64(d.last.Arg3, e.Arg3),
	}
	d.last = &out
	return out
}

// wrapAdd32 and wrapAdd64 perform two's-complement wrapping addition.
// Go's signed integer overflow already wraps this way; these exist only
// to name the operation. The wire format relies on wraparound, so
// checked arithmetic must not be introduced here.
func wrapAdd32(a, b int32) int32 { return a + b }
func wrapAdd64(a, b int64) int64 { return a + b }
