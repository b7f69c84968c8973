// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"bytes"
	"io"
	"strings"
	"testing"

	kgzip "github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
)

const compressTestText = "id|t\n\n0|TRACE_START|1000|100|0|0|0\n"

func TestOpenCompressedPassesThroughPlainText(t *testing.T) {
	r, err := OpenCompressed(strings.NewReader(compressTestText))
	if err != nil {
		t.Fatalf("OpenCompressed: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != compressTestText {
		t.Errorf("got %q, want the stream unchanged", got)
	}
}

func TestOpenCompressedSniffsGzip(t *testing.T) {
	var buf bytes.Buffer
	w := kgzip.NewWriter(&buf)
	if _, err := w.Write([]byte(compressTestText)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}

	r, err := OpenCompressed(&buf)
	if err != nil {
		t.Fatalf("OpenCompressed: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != compressTestText {
		t.Errorf("got %q, want the decompressed trace text", got)
	}
}

func TestOpenCompressedSniffsLZ4(t *testing.T) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write([]byte(compressTestText)); err != nil {
		t.Fatalf("lz4 write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("lz4 close: %v", err)
	}

	r, err := OpenCompressed(&buf)
	if err != nil {
		t.Fatalf("OpenCompressed: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != compressTestText {
		t.Errorf("got %q, want the decompressed trace text", got)
	}
}

func TestOpenCompressedEmptyStream(t *testing.T) {
	r, err := OpenCompressed(strings.NewReader(""))
	if err != nil {
		t.Fatalf("OpenCompressed: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %q, want empty", got)
	}
}
