// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gotrace/profilo/trace"
)

// loadSymbols reads a text file of "hex_addr symbol" lines (one mapping
// per line, whitespace-separated) into a *trace.Symbols, the minimal
// stand-in for the method-index a real caller would extract from a
// compiled binary's symbol table.
func loadSymbols(path string) (*trace.Symbols, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	index := map[uint64]string{}
	sc := bufio.NewScanner(f)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("symbols:%d: want 2 fields, got %d", lineNum, len(fields))
		}
		addr, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "0x"), 16, 64)
		if err != nil {
			return nil, fmt.Errorf("symbols:%d: %w", lineNum, err)
		}
		index[addr] = fields[1]
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return &trace.Symbols{MethodIndex: index}, nil
}
