// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interval implements a nested interval tree over integer
// timestamps with inclusive bounds, used to place free-standing points
// into the deepest block that contains them.
package interval

import (
	"errors"
	"fmt"
	"sort"
)

// ErrOverlap reports a partial overlap between two intervals: neither is
// a superset nor a subset of the other. The data this tree indexes
// (trace blocks within one execution unit) is expected to nest strictly,
// so this is an invariant violation rather than a recoverable condition.
var ErrOverlap = errors.New("interval: overlapping, non-nested intervals")

// Interval is one node of an IntervalTree: a closed range [Begin, End]
// carrying an opaque Data payload, plus any children strictly nested
// inside it. A nil Data marks a synthetic container interval created to
// hold two otherwise-disjoint intervals (see IntervalTree.Add).
type Interval struct {
	Begin, End int64
	Data       any

	children       []*Interval
	childrenBegins []int64 // kept parallel to children, sorted ascending
}

// NewInterval constructs a leaf interval. It panics if begin > end.
func NewInterval(begin, end int64, data any) *Interval {
	if begin > end {
		panic(fmt.Sprintf("interval: begin %d > end %d", begin, end))
	}
	return &Interval{Begin: begin, End: end, Data: data}
}

// Length is the inclusive span of the interval.
func (iv *Interval) Length() int64 { return iv.End - iv.Begin }

// Children returns the interval's direct children, sorted by Begin.
func (iv *Interval) Children() []*Interval { return iv.children }

// contains reports whether iv fully contains other, or returns
// ErrOverlap if the two intervals partially overlap in a non-nested way.
func (iv *Interval) contains(other *Interval) (bool, error) {
	if iv.Begin < other.Begin && other.Begin < iv.End && iv.End < other.End {
		return false, fmt.Errorf("%w: %v inside %v", ErrOverlap, other, iv)
	}
	return iv.Begin <= other.Begin && other.End <= iv.End, nil
}

// addChild inserts child into iv's children, keeping childrenBegins
// sorted so lookups can binary search.
func (iv *Interval) addChild(child *Interval) {
	idx := sort.Search(len(iv.childrenBegins), func(i int) bool {
		return iv.childrenBegins[i] > child.Begin
	})
	iv.childrenBegins = append(iv.childrenBegins, 0)
	copy(iv.childrenBegins[idx+1:], iv.childrenBegins[idx:])
	iv.childrenBegins[idx] = child.Begin

	iv.children = append(iv.children, nil)
	copy(iv.children[idx+1:], iv.children[idx:])
	iv.children[idx] = child
}

// findInterval returns the narrowest descendant of iv (possibly iv
// itself) containing target, or nil if iv does not contain it at all.
func (iv *Interval) findInterval(target *Interval) (*Interval, error) {
	ok, err := iv.contains(target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	idx := sort.Search(len(iv.childrenBegins), func(i int) bool {
		return iv.childrenBegins[i] > target.Begin
	})
	if idx > 0 {
		child := iv.children[idx-1]
		result, err := child.findInterval(target)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}
	return iv, nil
}

func (iv *Interval) String() string {
	return fmt.Sprintf("Interval[%d,%d]", iv.Begin, iv.End)
}

// Tree is a tree of Intervals with inclusive bounds on either end,
// rooted at whichever interval was first inserted or subsequently grew
// to dominate the others.
type Tree struct {
	Root *Interval
}

// Find returns the narrowest interval in the tree containing point, or
// nil if no interval does.
func (t *Tree) Find(point int64) (*Interval, error) {
	if t.Root == nil {
		return nil, nil
	}
	return t.Root.findInterval(&Interval{Begin: point, End: point})
}

// Add inserts a new [begin, end] interval carrying data, preserving
// strict nesting with whatever is already in the tree, and returns the
// inserted node.
func (t *Tree) Add(begin, end int64, data any) (*Interval, error) {
	node := NewInterval(begin, end, data)
	if t.Root == nil {
		t.Root = node
		return node, nil
	}

	containing, err := t.Root.findInterval(node)
	if err != nil {
		return nil, err
	}
	if containing != nil {
		containing.addChild(node)
		return node, nil
	}

	rootInside, err := node.contains(t.Root)
	if err != nil {
		return nil, err
	}
	switch {
	case rootInside:
		// The new interval dominates the current root.
		node.addChild(t.Root)
		t.Root = node
	case t.Root.Data != nil:
		// Disjoint from a root that carries real data: synthesize a
		// container above both.
		newRoot := &Interval{
			Begin: min(node.Begin, t.Root.Begin),
			End:   max(node.End, t.Root.End),
		}
		newRoot.addChild(node)
		newRoot.addChild(t.Root)
		t.Root = newRoot
	default:
		// The root is already a synthetic container; just extend it.
		t.Root.Begin = min(node.Begin, t.Root.Begin)
		t.Root.End = max(node.End, t.Root.End)
		t.Root.addChild(node)
	}
	return node, nil
}
