// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"bufio"
	"bytes"
	"io"

	kgzip "github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// OpenCompressed sniffs r's leading bytes for a gzip or LZ4 frame magic
// number and wraps it in the matching decompressing reader. A stream
// that matches neither magic is assumed to already be decompressed
// UTF-8 trace text and is returned unwrapped.
func OpenCompressed(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return kgzip.NewReader(br)
	case bytes.Equal(head, lz4Magic):
		return lz4.NewReader(br), nil
	default:
		return br, nil
	}
}
