// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entries

import (
	"bytes"
	"errors"
	"testing"
)

func TestStandardEntryRoundTrip(t *testing.T) {
	want := StandardEntry{
		Kind:      1,
		Id:        42,
		Timestamp: 1234567890,
		Tid:       7,
		Arg1:      -1,
		Arg2:      2,
		Arg3:      -9999999999,
	}

	buf := make([]byte, want.Size())
	if err := want.Pack(buf); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if len(buf) != want.Size() {
		t.Fatalf("Size() = %d, Pack wrote into a %d-byte buffer", want.Size(), len(buf))
	}

	var got StandardEntry
	if err := got.Unpack(buf); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestBytesEntryRoundTrip(t *testing.T) {
	data := []byte("hello, trace")
	want := BytesEntry{Kind: 2, Id: 5, Arg1: 99, DataSize: uint16(len(data)), Data: data}

	buf := make([]byte, want.Size())
	if err := want.Pack(buf); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	var got BytesEntry
	if err := got.Unpack(buf); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if got.Id != want.Id || got.Arg1 != want.Arg1 || got.DataSize != want.DataSize {
		t.Fatalf("header mismatch: got %+v, want %+v", got, want)
	}
	if !bytes.Equal(got.Data, data) {
		t.Errorf("Data = %q, want %q", got.Data, data)
	}
}

func TestBytesEntryEmptyPayload(t *testing.T) {
	want := BytesEntry{Kind: 2, Id: 1, Arg1: 0, DataSize: 0, Data: nil}
	buf := make([]byte, want.Size())
	if err := want.Pack(buf); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	var got BytesEntry
	if err := got.Unpack(buf); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if len(got.Data) != 0 {
		t.Errorf("Data = %v, want empty", got.Data)
	}
}

func TestFramesEntryRoundTrip(t *testing.T) {
	frames := []uint64{0xdeadbeef, 0x1, 0xffffffffffffffff}
	want := FramesEntry{Kind: 3, Id: 9, Timestamp: 55, Tid: 3, FramesSize: uint16(len(frames)), Frames: frames}

	buf := make([]byte, want.Size())
	if err := want.Pack(buf); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	var got FramesEntry
	if err := got.Unpack(buf); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if len(got.Frames) != len(frames) {
		t.Fatalf("Frames length = %d, want %d", len(got.Frames), len(frames))
	}
	for i := range frames {
		if got.Frames[i] != frames[i] {
			t.Errorf("Frames[%d] = %#x, want %#x", i, got.Frames[i], frames[i])
		}
	}
}

func TestUnpackTruncatedBuffer(t *testing.T) {
	var e StandardEntry
	err := e.Unpack([]byte{StandardEntryTypeID, 0, 0})
	if !errors.Is(err, ErrWireShort) {
		t.Errorf("Unpack on truncated buffer: err = %v, want ErrWireShort", err)
	}
}

func TestUnpackTagMismatch(t *testing.T) {
	var e StandardEntry
	buf := make([]byte, e.Size())
	buf[0] = BytesEntryTypeID
	if err := e.Unpack(buf); !errors.Is(err, ErrWireTagMismatch) {
		t.Errorf("Unpack with wrong tag: err = %v, want ErrWireTagMismatch", err)
	}
}

func TestPackShortDestination(t *testing.T) {
	e := StandardEntry{}
	err := e.Pack(make([]byte, 2))
	if !errors.Is(err, ErrWireShort) {
		t.Errorf("Pack into short buffer: err = %v, want ErrWireShort", err)
	}
}

func TestDispatchVisitsCorrectMethod(t *testing.T) {
	want := StandardEntry{Kind: 1, Id: 1, Timestamp: 1, Tid: 1, Arg1: 1, Arg2: 1, Arg3: 1}
	buf := make([]byte, want.Size())
	if err := want.Pack(buf); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	got := &recordingVisitor{}
	if err := Dispatch(buf, got); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got.standard == nil || got.standard.Id != want.Id {
		t.Errorf("Dispatch did not call VisitStandardEntry with the unpacked record")
	}
}

func TestDispatchUnknownKind(t *testing.T) {
	err := Dispatch([]byte{0xff}, &recordingVisitor{})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Dispatch of unknown tag: err = %v, want ErrUnknownKind", err)
	}
}

type recordingVisitor struct {
	UnimplementedVisitor
	standard *StandardEntry
}

func (r *recordingVisitor) VisitStandardEntry(e *StandardEntry) error {
	r.standard = e
	return nil
}
