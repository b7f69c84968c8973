// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import "github.com/ianlancetaylor/demangle"

// Symbols is an optional address -> symbol-name index built outside
// this package (typically from a compiled binary's symbol table) and
// handed to an Interpreter.
type Symbols struct {
	// MethodIndex maps a native frame address to its resolved symbol
	// name, possibly still mangled.
	MethodIndex map[uint64]string
}

// resolve looks up addr in s.MethodIndex, then in the trace-local
// framework-frames map built from JAVA_FRAME_NAME entries, demangling
// whatever name it finds. It returns ("", false) if addr resolves to
// nothing in either map.
func (s *Symbols) resolve(addr uint64, frameworkFrames map[uint64]string) (string, bool) {
	if s == nil {
		return frameworkLookup(addr, frameworkFrames)
	}
	if name, ok := s.MethodIndex[addr]; ok {
		return demangleName(name), true
	}
	return frameworkLookup(addr, frameworkFrames)
}

func frameworkLookup(addr uint64, frameworkFrames map[uint64]string) (string, bool) {
	if name, ok := frameworkFrames[addr]; ok {
		return demangleName(name), true
	}
	return "", false
}

// demangleName best-effort demangles an Itanium C++ or Rust mangled
// symbol. Names demangle.Filter does not recognize (plain Java/Python
// names, the common case for framework frames) pass through unchanged.
func demangleName(name string) string {
	return demangle.Filter(name)
}
