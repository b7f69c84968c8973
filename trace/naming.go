// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"fmt"
	"strings"
)

// namer resolves human-readable names for blocks and stand-alone
// points from the string entries attached to them.
type namer struct {
	entriesByID map[int32]rawEntry
	link        *linker
}

// findByStringKeyValue looks for a STRING_KEY child of id whose data is
// "__name", then follows its own single STRING_VALUE child for the
// name. It returns ("", false) if no such chain exists.
func (n *namer) findByStringKeyValue(id int32) (string, bool) {
	for _, childID := range n.link.childrenOf(id) {
		child, ok := n.entriesByID[childID]
		if !ok || child.Type != "STRING_KEY" || child.Data != "__name" {
			continue
		}
		valueChildren := n.link.childrenOf(childID)
		if len(valueChildren) != 1 {
			// A trace stopped mid-write may be missing the VALUE of a
			// KEY; that's unrecoverable for this one chain.
			return "", false
		}
		value, ok := n.entriesByID[valueChildren[0]]
		if !ok || value.Type != "STRING_VALUE" {
			return "", false
		}
		return value.Data, true
	}
	return "", false
}

// findByStringName returns the data of the first STRING_NAME child of
// id, in arrival order.
func (n *namer) findByStringName(id int32) (string, bool) {
	for _, childID := range n.link.childrenOf(id) {
		child, ok := n.entriesByID[childID]
		if ok && child.Type == "STRING_NAME" {
			return child.Data, true
		}
	}
	return "", false
}

// nameOf resolves the name for one entry, trying the STRING_KEY/VALUE
// chain first and falling back to STRING_NAME.
func (n *namer) nameOf(id int32) (string, bool) {
	if name, ok := n.findByStringKeyValue(id); ok {
		return name, true
	}
	return n.findByStringName(id)
}

// assignBlockName derives a block's "name" core property from its begin
// and end entries (either may be zero to mean "absent"); a half-open
// block gets a "... to Missing" or "Missing to ..." name.
func (n *namer) assignBlockName(props *Properties, beginID, endID int32) {
	pattern := "%s"
	switch {
	case beginID != 0 && endID == 0:
		pattern = "%s to Missing"
	case beginID == 0 && endID != 0:
		pattern = "Missing to %s"
	}
	props.CoreProps["name"] = fmt.Sprintf(pattern, n.resolveName([]int32{beginID, endID}))
}

// assignPointName derives a stand-alone point's "name" core property
// from the single entry that produced it. Unlike blocks, points never
// get a "... to Missing" pattern: there is only ever one entry.
func (n *namer) assignPointName(props *Properties, id int32) {
	props.CoreProps["name"] = n.resolveName([]int32{id})
}

// resolveName tries the STRING_KEY/VALUE and STRING_NAME chains of each
// id in turn, falling back to joining the contributing entries' type
// names with " to ".
func (n *namer) resolveName(ids []int32) string {
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if name, found := n.nameOf(id); found {
			return name
		}
	}

	var types []string
	for _, id := range ids {
		if id == 0 {
			continue
		}
		types = append(types, n.entriesByID[id].Type)
	}
	return strings.Join(types, " to ")
}
