// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// rawEntry is one line of the trace body before delta-decoding, in
// whichever of the two wire shapes its Type discriminates.
type rawEntry struct {
	ID        int32
	Type      string
	Timestamp int64 // standard only
	Tid       int32 // standard only
	Arg1      int32
	Arg2      int32 // standard only
	Arg3      int64 // standard only
	Data      string // bytes only

	IsBytes bool
}

// Lexer splits a decompressed trace file into its header map and a lazy
// sequence of raw entries, the way perffile.Records iterates records
// without materializing the whole stream up front.
type Lexer struct {
	sc      *bufio.Scanner
	lineNum int
	err     error

	Headers map[string]string
	Entry   rawEntry
}

// NewLexer scans headers eagerly (they are a handful of short lines) and
// returns a Lexer positioned at the start of the body, ready for Next.
func NewLexer(r io.Reader) (*Lexer, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	headers := map[string]string{}
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		if line == "" {
			break
		}
		key, value, ok := strings.Cut(line, "|")
		if !ok {
			return nil, newFormatError(lineNum, "malformed header line %q", line)
		}
		headers[key] = value // last value wins
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return &Lexer{sc: sc, lineNum: lineNum, Headers: headers}, nil
}

// Err returns the first error encountered by Next.
func (l *Lexer) Err() error { return l.err }

// Next scans the next body line into l.Entry. It returns false at EOF
// or on the first error; callers should check Err after a false return.
func (l *Lexer) Next() bool {
	if l.err != nil {
		return false
	}
	for l.sc.Scan() {
		l.lineNum++
		line := l.sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := parseEntryLine(l.lineNum, line)
		if err != nil {
			l.err = err
			return false
		}
		l.Entry = entry
		return true
	}
	l.err = l.sc.Err()
	return false
}

func parseEntryLine(lineNum int, line string) (rawEntry, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 2 {
		return rawEntry{}, newFormatError(lineNum, "entry line has fewer than 2 fields: %q", line)
	}

	id, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil {
		return rawEntry{}, newFormatError(lineNum, "bad entry id %q: %v", fields[0], err)
	}
	typ := fields[1]

	if bytesEntryTypes[typ] {
		if len(fields) != 4 {
			return rawEntry{}, newFormatError(lineNum, "bytes entry %q wants 4 fields, got %d", typ, len(fields))
		}
		arg1, err := strconv.ParseInt(fields[2], 10, 32)
		if err != nil {
			return rawEntry{}, newFormatError(lineNum, "bad arg1 %q: %v", fields[2], err)
		}
		return rawEntry{ID: int32(id), Type: typ, Arg1: int32(arg1), Data: fields[3], IsBytes: true}, nil
	}

	if len(fields) != 7 {
		return rawEntry{}, newFormatError(lineNum, "standard entry %q wants 7 fields, got %d", typ, len(fields))
	}
	ts, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return rawEntry{}, newFormatError(lineNum, "bad timestamp %q: %v", fields[2], err)
	}
	tid, err := strconv.ParseInt(fields[3], 10, 32)
	if err != nil {
		return rawEntry{}, newFormatError(lineNum, "bad tid %q: %v", fields[3], err)
	}
	arg1, err := strconv.ParseInt(fields[4], 10, 32)
	if err != nil {
		return rawEntry{}, newFormatError(lineNum, "bad arg1 %q: %v", fields[4], err)
	}
	arg2, err := strconv.ParseInt(fields[5], 10, 32)
	if err != nil {
		return rawEntry{}, newFormatError(lineNum, "bad arg2 %q: %v", fields[5], err)
	}
	arg3, err := strconv.ParseInt(fields[6], 10, 64)
	if err != nil {
		return rawEntry{}, newFormatError(lineNum, "bad arg3 %q: %v", fields[6], err)
	}
	return rawEntry{
		ID: int32(id), Type: typ, Timestamp: ts, Tid: int32(tid),
		Arg1: int32(arg1), Arg2: int32(arg2), Arg3: arg3,
	}, nil
}
