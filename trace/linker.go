// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

// linker computes the parent/child relationships between decoded
// entries in a single pass. An invalid parent (referencing an id never
// seen) is silently ignored.
type linker struct {
	parent   map[int32]int32   // child id -> parent id
	children map[int32][]int32 // parent id -> child ids, arrival order
}

func linkEntries(decoded []rawEntry) *linker {
	l := &linker{parent: map[int32]int32{}, children: map[int32][]int32{}}
	seen := map[int32]bool{}
	for _, e := range decoded {
		seen[e.ID] = true
	}

	for _, e := range decoded {
		var parentID int32
		if e.IsBytes {
			parentID = e.Arg1
		} else {
			if ignoreParentEntries[e.Type] {
				continue
			}
			parentID = e.Arg2
		}
		if parentID == 0 || !seen[parentID] {
			continue
		}
		l.parent[e.ID] = parentID
		l.children[parentID] = append(l.children[parentID], e.ID)
	}
	return l
}

func (l *linker) childrenOf(id int32) []int32 { return l.children[id] }
