// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

// bytesEntryTypes is the closed set of entry type names whose text
// representation carries a variable-length byte payload instead of the
// seven standard fields. JAVA_FRAME_NAME is a standard entry, not a
// bytes entry: its arg3 carries the method id that frameworkFrames keys
// on.
var bytesEntryTypes = map[string]bool{
	"STRING_KEY":   true,
	"STRING_VALUE": true,
	"STRING_NAME":  true,
	"MAPPING":      true,
	"CLASS_VALUE":  true,
}

// ignoreParentEntries opts standard entry types out of parent linking:
// for these, arg2 is not a parent link, it carries unrelated data (a CPU
// core number, for CPU_COUNTER).
var ignoreParentEntries = map[string]bool{
	"CPU_COUNTER": true,
}

var blockStartEntries = map[string]bool{
	"MARK_PUSH": true,
	"IO_START":  true,
}

var blockEndEntries = map[string]bool{
	"MARK_POP": true,
	"IO_END":   true,
}

var threadMetadataEntries = map[string]bool{
	"TRACE_THREAD_NAME": true,
	"TRACE_THREAD_PRI":  true,
}

// counterNames maps the numeric arg1 code of a COUNTER entry to its
// human name. The codes are fixed by the runtime that writes traces.
var counterNames = map[int32]string{
	9240581: "THREAD_CPU_TIME",
	9240612: "LOADAVG_1M",
	9240613: "LOADAVG_5M",
	9240614: "LOADAVG_15M",
	9240615: "TOTAL_MEM",
	9240616: "FREE_MEM",
	9240617: "SHARED_MEM",
	9240618: "BUFFER_MEM",
	9240619: "NUM_PROCS",
	9240582: "QL_THREAD_FAULTS_MAJOR",
	9240621: "ALLOC_MMAP_BYTES",
	9240622: "ALLOC_MAX_BYTES",
	9240623: "ALLOC_TOTAL_BYTES",
	9240624: "ALLOC_FREE_BYTES",
	9240579: "PROC_CPU_TIME",
	9240580: "PROC_SW_FAULTS_MAJOR",
	9240593: "GLOBAL_ALLOC_COUNT",
	9240594: "GLOBAL_ALLOC_SIZE",
	9240595: "GLOBAL_GC_INVOCATION_SIZE",
	9240626: "THREAD_WAIT_IN_RUNQUEUE_TIME",
	9240628: "CONTEXT_SWITCHES_VOLUNTARY",
	9240629: "CONTEXT_SWITCHES_INVOLUNTARY",
	9240630: "IOWAIT_COUNT",
	9240631: "IOWAIT_TIME",
	8126501: "AVAILABLE_COUNTERS",
	9240634: "JAVA_FREE_BYTES",
	9240635: "JAVA_MAX_BYTES",
	9240636: "JAVA_ALLOC_BYTES",
	9240637: "JAVA_TOTAL_BYTES",
}

// annotationNames maps the numeric arg1 code of a TRACE_ANNOTATION
// entry to its human name, the counterpart to counterNames.
var annotationNames = map[int32]string{
	8126491: "PROF_ERR_SIG_CRASHES",
	8126492: "PROF_ERR_SLOT_MISSES",
	8126493: "PROF_ERR_STACK_OVERFLOWS",
}
