// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace parses the textual trace stream produced at runtime and
// reconstructs a structured, hierarchical Trace: execution units, nested
// blocks, points, stack traces, and counters.
package trace

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Interpreter runs the full import pipeline: lex, delta-decode, link,
// reconstruct per-thread blocks, assign points, resolve names, and
// (optionally) join stack frames against a symbol table.
type Interpreter struct {
	Symbols *Symbols
}

// stackSample accumulates the STACK_FRAME entries sharing one timestamp
// until they are coalesced into a single point.
type stackSample struct {
	addrs []uint64
}

// unitState tracks the book-keeping an execution unit's build pass
// needs beyond what ExecutionUnit itself stores: the originating begin
// and end entry ids for each block (for naming), and the per-timestamp
// stack-frame accumulator.
type unitState struct {
	unit *ExecutionUnit

	blockBeginID map[*Block]int32
	blockEndID   map[*Block]int32

	stacks map[int64]*stackSample
}

// Interpret runs the pipeline over r, a decompressed UTF-8 trace
// stream, and returns the reconstructed Trace.
func (in *Interpreter) Interpret(r io.Reader) (*Trace, error) {
	lex, err := NewLexer(r)
	if err != nil {
		return nil, err
	}

	decoder := newDeltaDecoder(lex.Headers)
	var decoded []rawEntry
	for lex.Next() {
		decoded = append(decoded, decoder.decode(lex.Entry))
	}
	if err := lex.Err(); err != nil {
		return nil, err
	}

	return in.interpretEntries(decoded, lex.Headers)
}

func (in *Interpreter) interpretEntries(decoded []rawEntry, headers map[string]string) (*Trace, error) {
	entriesByID := make(map[int32]rawEntry, len(decoded))
	for _, e := range decoded {
		entriesByID[e.ID] = e
	}
	link := linkEntries(decoded)
	names := &namer{entriesByID: entriesByID, link: link}

	begin, end, ok := traceBounds(decoded)
	if !ok {
		// No standard entries at all: an empty trace.
		tr := NewTrace(0, 0, headers["id"])
		tr.PID = headers["pid"]
		return tr, nil
	}

	tr := NewTrace(begin, end, headers["id"])
	tr.PID = headers["pid"]

	frameworkFrames := map[uint64]string{}
	for _, e := range decoded {
		if e.Type != "JAVA_FRAME_NAME" {
			continue
		}
		for _, childID := range link.childrenOf(e.ID) {
			if child, ok := entriesByID[childID]; ok {
				frameworkFrames[uint64(e.Arg3)] = child.Data
			}
		}
	}

	byTid := map[int32][]rawEntry{}
	for _, e := range decoded {
		if e.Type == "JAVA_FRAME_NAME" || e.IsBytes {
			continue // bytes entries are processed as children, above
		}
		byTid[e.Tid] = append(byTid[e.Tid], e)
	}

	units := map[int32]*unitState{}
	tids := make([]int32, 0, len(byTid))
	for tid := range byTid {
		tids = append(tids, tid)
	}
	sort.Slice(tids, func(i, j int) bool { return tids[i] < tids[j] })

	for _, tid := range tids {
		entries := byTid[tid]
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Timestamp != entries[j].Timestamp {
				return entries[i].Timestamp < entries[j].Timestamp
			}
			return entries[i].ID < entries[j].ID
		})

		us := in.ensureUnit(tr, units, headers, tid)

		for _, e := range entries {
			var block *Block
			switch {
			case blockStartEntries[e.Type]:
				block = us.unit.PushBlock(e.Timestamp)
				us.blockBeginID[block] = e.ID
			case blockEndEntries[e.Type]:
				block = us.unit.PopBlock(e.Timestamp)
				us.blockEndID[block] = e.ID
			case e.Type == "STACK_FRAME":
				s := us.stacks[e.Timestamp]
				if s == nil {
					s = &stackSample{}
					us.stacks[e.Timestamp] = s
				}
				s.addrs = append(s.addrs, uint64(e.Arg3))
			case threadMetadataEntries[e.Type]:
				in.processThreadMetadata(tr, units, headers, us, e, link, entriesByID)
			}

			if block != nil {
				names.assignBlockName(&block.Properties, us.blockBeginID[block], us.blockEndID[block])
			}
		}

		if err := us.unit.NormalizeBlocks(tr); err != nil {
			return nil, err
		}

		// Attach single points. This is a second pass over the same
		// entries because an unbalanced pop's block may not exist yet
		// when the point's entry is first seen.
		for _, e := range entries {
			switch e.Type {
			case "COUNTER":
				point, err := us.unit.AddPoint(e.Timestamp)
				if err != nil {
					return nil, err
				}
				name, ok := counterNames[e.Arg1]
				if !ok {
					name = fmt.Sprintf("UNKNOWN_%d", e.Arg1)
				}
				point.Properties.AddCounter(name, int64(e.Arg3))
				names.assignPointName(&point.Properties, e.ID)

			case "TRACE_ANNOTATION":
				point, err := us.unit.AddPoint(e.Timestamp)
				if err != nil {
					return nil, err
				}
				name, ok := annotationNames[e.Arg1]
				if !ok {
					name = fmt.Sprintf("UNKNOWN_%d", e.Arg1)
				}
				point.Properties.AddAnnotation(name, int64(e.Arg3))
				names.assignPointName(&point.Properties, e.ID)

			case "STACK_FRAME":
				s, ok := us.stacks[e.Timestamp]
				if !ok {
					continue // already flushed by an earlier frame at this timestamp
				}
				point, err := us.unit.AddPoint(e.Timestamp)
				if err != nil {
					return nil, err
				}
				names.assignPointName(&point.Properties, e.ID)

				st := &StackTrace{}
				for i := len(s.addrs) - 1; i >= 0; i-- { // reverse to outermost-first
					addr := s.addrs[i]
					symbol, _ := in.Symbols.resolve(addr, frameworkFrames)
					st.Append(addr, symbol)
				}
				point.Properties.StackTraces["stacks"] = st
				delete(us.stacks, e.Timestamp)
			}
		}
	}

	tr.collect()
	return tr, nil
}

func traceBounds(decoded []rawEntry) (begin, end int64, ok bool) {
	first := true
	for _, e := range decoded {
		if e.IsBytes {
			continue
		}
		if first {
			begin, end, first = e.Timestamp, e.Timestamp, false
			continue
		}
		if e.Timestamp < begin {
			begin = e.Timestamp
		}
		if e.Timestamp > end {
			end = e.Timestamp
		}
	}
	return begin, end, !first
}

func (in *Interpreter) ensureUnit(tr *Trace, units map[int32]*unitState, headers map[string]string, tid int32) *unitState {
	if us, ok := units[tid]; ok {
		return us
	}

	name := fmt.Sprintf("Thread_%d", tid)
	if headers["pid"] == fmt.Sprintf("%d", tid) {
		name = fmt.Sprintf("Main Thread_%d", tid)
	}

	unit := tr.AddUnit()
	unit.Properties.CoreProps["name"] = name
	unit.Properties.CustomProps["tid"] = fmt.Sprintf("%d", tid)
	unit.Properties.CoreProps["priority"] = "0"

	us := &unitState{
		unit:         unit,
		blockBeginID: map[*Block]int32{},
		blockEndID:   map[*Block]int32{},
		stacks:       map[int64]*stackSample{},
	}
	units[tid] = us
	return us
}

// processThreadMetadata applies a TRACE_THREAD_PRI or TRACE_THREAD_NAME
// entry found while walking tid's entries. A TRACE_THREAD_NAME entry
// names the unit identified by its STRING_KEY child's data (the target
// tid, as a string), not necessarily the unit it was emitted on.
func (in *Interpreter) processThreadMetadata(tr *Trace, units map[int32]*unitState, headers map[string]string, us *unitState, e rawEntry, link *linker, entriesByID map[int32]rawEntry) {
	switch e.Type {
	case "TRACE_THREAD_PRI":
		us.unit.Properties.CoreProps["priority"] = fmt.Sprintf("%d", e.Arg3)

	case "TRACE_THREAD_NAME":
		children := link.childrenOf(e.ID)
		if len(children) != 1 {
			return
		}
		keyChild, ok := entriesByID[children[0]]
		if !ok || keyChild.Type != "STRING_KEY" {
			return
		}

		valueChildren := link.childrenOf(keyChild.ID)
		if len(valueChildren) != 1 {
			return
		}
		valueChild, ok := entriesByID[valueChildren[0]]
		if !ok || valueChild.Type != "STRING_VALUE" {
			return
		}
		tname := valueChild.Data

		targetTid, err := strconv.ParseInt(keyChild.Data, 10, 32)
		if err != nil {
			return
		}
		target := in.ensureUnit(tr, units, headers, int32(targetTid))

		current := target.unit.Properties.CoreProps["name"]
		if strings.Contains(current, "Main") {
			target.unit.Properties.CoreProps["name"] = "(Main) " + tname
		} else {
			target.unit.Properties.CoreProps["name"] = tname
		}
	}
}
