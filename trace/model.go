// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/gotrace/profilo/trace/interval"
)

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// newID generates an 11-character base64 identifier from a random
// 64-bit value, locally unique within a trace. 'A' decodes to zero, so
// a zero value renders as eleven 'A's.
func newID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("trace: reading random id: %v", err))
	}
	num := binary.BigEndian.Uint64(buf[:])

	var out [11]byte
	for i := range out {
		out[i] = 'A'
	}
	idx := len(out) - 1
	for num != 0 && idx >= 0 {
		out[idx] = base64Alphabet[num%64]
		num /= 64
		idx--
	}
	return string(out[:])
}

// CounterUnit names the unit a counter's value is reported in. ITEMS is
// the only unit the importer ever produces; the field exists so
// Properties.CounterProps can key on more units without a model change.
type CounterUnit string

const CounterUnitItems CounterUnit = "ITEMS"

// StackFrame is one frame of a StackTrace: a raw address plus its
// resolved symbol, if any.
type StackFrame struct {
	Identifier uint64
	Symbol     string // empty if unresolved
}

// StackTrace is an ordered list of frames, outermost first.
type StackTrace struct {
	Frames []StackFrame
}

// Append adds a frame to the end of the trace.
func (s *StackTrace) Append(identifier uint64, symbol string) {
	s.Frames = append(s.Frames, StackFrame{Identifier: identifier, Symbol: symbol})
}

// Properties is the generic key/value bag every trace element
// (ExecutionUnit, Block, Point, Edge) carries. CoreProps holds
// well-known keys ("name", "priority"); CustomProps holds anything
// importer-specific ("tid"); CounterProps and AnnotationProps hold
// per-unit counter and annotation readings keyed by CounterUnit then
// name; StackTraces holds named StackTrace attachments (conventionally
// keyed "stacks").
type Properties struct {
	CoreProps       map[string]string
	CustomProps     map[string]string
	CounterProps    map[CounterUnit]map[string]int64
	AnnotationProps map[CounterUnit]map[string]int64
	StackTraces     map[string]*StackTrace
}

func newProperties() Properties {
	return Properties{
		CoreProps:       map[string]string{},
		CustomProps:     map[string]string{},
		CounterProps:    map[CounterUnit]map[string]int64{},
		AnnotationProps: map[CounterUnit]map[string]int64{},
		StackTraces:     map[string]*StackTrace{},
	}
}

// AddCounter records a counter reading under CounterUnitItems, the only
// unit the wire format ever produces.
func (p *Properties) AddCounter(name string, value int64) {
	m := p.CounterProps[CounterUnitItems]
	if m == nil {
		m = map[string]int64{}
		p.CounterProps[CounterUnitItems] = m
	}
	m[name] = value
}

// AddAnnotation records an annotation reading the same way AddCounter
// records a counter, under the separate AnnotationProps bag.
func (p *Properties) AddAnnotation(name string, value int64) {
	m := p.AnnotationProps[CounterUnitItems]
	if m == nil {
		m = map[string]int64{}
		p.AnnotationProps[CounterUnitItems] = m
	}
	m[name] = value
}

// EdgeKind names the causal relationship an Edge records between a
// parent block and a child block.
type EdgeKind string

const (
	EdgeNestedCall   EdgeKind = "nested_call"
	EdgeNestedReturn EdgeKind = "nested_return"
)

// Edge is a causal link between two points, used to connect a parent
// block to a child block at call time and return time.
type Edge struct {
	SourcePoint string
	TargetPoint string
	Kind        EdgeKind
	Properties  Properties
}

// Point is a zero-duration event attached to exactly one Block.
type Point struct {
	ID         string
	Timestamp  int64
	Properties Properties
}

func newPoint(ts int64) *Point {
	return &Point{ID: newID(), Timestamp: ts, Properties: newProperties()}
}

// Block is a closed or half-open time interval on a single
// ExecutionUnit, bracketed by PUSH/POP-family entries. Begin and End
// are nil until the corresponding point is created; normalization
// guarantees both are set on every block returned to a caller.
type Block struct {
	ID          string
	Begin       *Point
	End         *Point
	OtherPoints []*Point
	Properties  Properties

	parent *Block
}

func newBlock() *Block {
	return &Block{ID: newID(), Properties: newProperties()}
}

// CreateBeginPoint instantiates b's begin point at ts. It panics if
// called twice.
func (b *Block) CreateBeginPoint(ts int64) *Point {
	if b.Begin != nil {
		panic("trace: block already has a begin point")
	}
	b.Begin = newPoint(ts)
	return b.Begin
}

// CreateEndPoint instantiates b's end point at ts. It panics if called
// twice.
func (b *Block) CreateEndPoint(ts int64) *Point {
	if b.End != nil {
		panic("trace: block already has an end point")
	}
	b.End = newPoint(ts)
	return b.End
}

// AddPoint attaches a free-standing point to b at ts.
func (b *Block) AddPoint(ts int64) *Point {
	p := newPoint(ts)
	b.OtherPoints = append(b.OtherPoints, p)
	return p
}

// Points returns every point owned by b: begin, the free-standing
// points in attachment order, then end.
func (b *Block) Points() []*Point {
	out := make([]*Point, 0, len(b.OtherPoints)+2)
	if b.Begin != nil {
		out = append(out, b.Begin)
	}
	out = append(out, b.OtherPoints...)
	if b.End != nil {
		out = append(out, b.End)
	}
	return out
}

// ExecutionUnit is a per-thread grouping of blocks and points, the Go
// analog of a thread's contribution to the trace.
type ExecutionUnit struct {
	ID         string
	Blocks     []*Block
	Properties Properties

	stack []*Block
	tree  *interval.Tree
}

func newExecutionUnit() *ExecutionUnit {
	return &ExecutionUnit{ID: newID(), Properties: newProperties()}
}

func (u *ExecutionUnit) addBlock() *Block {
	b := newBlock()
	u.Blocks = append(u.Blocks, b)
	return b
}

// PushBlock opens a new block at ts and pushes it onto the unit's block
// stack, recording it as an in-progress call.
func (u *ExecutionUnit) PushBlock(ts int64) *Block {
	b := u.addBlock()
	b.CreateBeginPoint(ts)
	u.stack = append(u.stack, b)
	return b
}

// PopBlock closes the innermost open block at ts. If the stack is empty
// or its top is already closed (an unbalanced pop), it instead opens a
// fresh end-only block and pushes it onto the stack, where it stays: a
// closed block on top of the stack makes the next pop unbalanced too.
func (u *ExecutionUnit) PopBlock(ts int64) *Block {
	if len(u.stack) == 0 || u.stack[len(u.stack)-1].End != nil {
		b := u.addBlock()
		b.CreateEndPoint(ts)
		u.stack = append(u.stack, b)
		return b
	}
	b := u.stack[len(u.stack)-1]
	u.stack = u.stack[:len(u.stack)-1]
	b.CreateEndPoint(ts)
	return b
}

// AddPoint finds the deepest block containing ts and creates a
// free-standing point within it, synthesizing a zero-length block if no
// existing block contains ts. NormalizeBlocks must have been called
// first. The synthesized block is not inserted into the unit's interval
// tree: two free-standing points of different kinds at the same
// timestamp each get their own zero-length block rather than sharing
// one.
func (u *ExecutionUnit) AddPoint(ts int64) (*Point, error) {
	if u.tree == nil {
		return nil, fmt.Errorf("trace: AddPoint called before NormalizeBlocks")
	}
	iv, err := u.tree.Find(ts)
	if err != nil {
		return nil, err
	}
	if iv == nil || iv.Data == nil {
		b := u.PushBlock(ts)
		u.PopBlock(ts)
		return b.AddPoint(ts), nil
	}
	return iv.Data.(*Block).AddPoint(ts), nil
}

// NormalizeBlocks aligns every open-ended block to the trace's global
// bounds, builds the unit's interval tree, and derives parent/child
// nesting (with nested_call/nested_return edges) between blocks.
func (u *ExecutionUnit) NormalizeBlocks(tr *Trace) error {
	for _, b := range u.Blocks {
		if b.Begin == nil {
			b.CreateBeginPoint(tr.Begin)
		}
		if b.End == nil {
			b.CreateEndPoint(tr.End)
		}
	}

	u.tree = &interval.Tree{}
	for _, b := range u.Blocks {
		if _, err := u.tree.Add(b.Begin.Timestamp, b.End.Timestamp, b); err != nil {
			return fmt.Errorf("%w: %w", ErrInvariant, err)
		}
	}

	return u.assignParentChildBlocks(tr, u.tree.Root)
}

func (u *ExecutionUnit) assignParentChildBlocks(tr *Trace, node *interval.Interval) error {
	if node == nil {
		return nil
	}
	for _, childNode := range node.Children() {
		if node.Data != nil {
			parent := node.Data.(*Block)
			child := childNode.Data.(*Block)
			if err := tr.addChildBlock(parent, child); err != nil {
				return err
			}
		}
		if err := u.assignParentChildBlocks(tr, childNode); err != nil {
			return err
		}
	}
	return nil
}

// Trace is the fully interpreted import result: every execution unit,
// block, point, and causal edge reconstructed from one trace file.
type Trace struct {
	ID         string
	PID        string
	Begin, End int64
	Units      []*ExecutionUnit
	Blocks     []*Block
	Points     []*Point
	Edges      []*Edge
	Properties Properties
}

// NewTrace constructs an empty Trace spanning [begin, end]. If id is
// empty, one is generated with the same scheme as every other
// identifier in the model.
func NewTrace(begin, end int64, id string) *Trace {
	if id == "" {
		id = newID()
	}
	return &Trace{ID: id, Begin: begin, End: end, Properties: newProperties()}
}

// AddUnit creates and registers a new, empty ExecutionUnit.
func (t *Trace) AddUnit() *ExecutionUnit {
	u := newExecutionUnit()
	t.Units = append(t.Units, u)
	return u
}

// AddEdge records a causal edge between two already-created points.
func (t *Trace) AddEdge(source, target *Point, kind EdgeKind) *Edge {
	e := &Edge{SourcePoint: source.ID, TargetPoint: target.ID, Kind: kind, Properties: newProperties()}
	t.Edges = append(t.Edges, e)
	return e
}

// collect flattens every unit's blocks and points into t.Blocks and
// t.Points, so callers can walk the whole trace without descending into
// units.
func (t *Trace) collect() {
	t.Blocks = nil
	t.Points = nil
	for _, u := range t.Units {
		for _, b := range u.Blocks {
			t.Blocks = append(t.Blocks, b)
			t.Points = append(t.Points, b.Points()...)
		}
	}
}

// addChildBlock records parent as child's direct container: it is a
// structural error for child to already have a parent, or for child's
// bounds to fall outside parent's. It then emits the nested_call and
// nested_return edge pair connecting the two blocks.
func (t *Trace) addChildBlock(parent, child *Block) error {
	if child.parent != nil {
		return fmt.Errorf("trace: %w: block %s already has a parent", ErrInvariant, child.ID)
	}
	callTime, returnTime := child.Begin.Timestamp, child.End.Timestamp
	if !(parent.Begin.Timestamp <= callTime && callTime <= returnTime && returnTime <= parent.End.Timestamp) {
		return fmt.Errorf("trace: %w: child [%d,%d] not nested in parent [%d,%d]",
			ErrInvariant, callTime, returnTime, parent.Begin.Timestamp, parent.End.Timestamp)
	}

	callFrom := parent.AddPoint(callTime)
	callTo := child.AddPoint(callTime)
	returnFrom := child.AddPoint(returnTime)
	returnTo := parent.AddPoint(returnTime)

	t.AddEdge(callFrom, callTo, EdgeNestedCall)
	t.AddEdge(returnFrom, returnTo, EdgeNestedReturn)

	child.parent = parent
	return nil
}
