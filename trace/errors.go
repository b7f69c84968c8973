// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"errors"
	"fmt"
)

// ErrInvariant marks a condition that indicates a bug or corrupt input
// rather than a malformed line: overlapping non-nested blocks, a block
// gaining a second parent, and similar structural contradictions. It is
// fatal to the current trace.
var ErrInvariant = errors.New("trace: invariant violated")

// FormatError reports a malformed trace-file line: bad header syntax,
// an unrecognized entry discriminator, or a field-count mismatch. It
// carries the 1-based line number for caller-facing context.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("trace: line %d: %s", e.Line, e.Msg)
}

func newFormatError(line int, format string, args ...any) *FormatError {
	return &FormatError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
