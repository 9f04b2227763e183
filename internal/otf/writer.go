// Package otf is a pluggable abstraction over the binary trace-file format
// the JULEA tracing core's binary sink writes to. The real framework this
// is ported from defers to an externally defined binary format (OTF); no
// Go binding for that wire format exists in this module's dependency
// reach, so this package defines the abstract Writer the rest of jtrace
// programs against, plus one concrete implementation backed by
// github.com/vmihailenco/msgpack/v5 — the same compact, schemaless binary
// encoding the tracing ecosystem (dd-trace-go's agent protocol) actually
// uses for streaming span records to a collector.
//
// jtrace never references msgpack or bufio, and never opens the trace file
// itself: it only sees the Writer interface (obtained through Open by
// default), so a build could swap in a different concrete sink
// (or omit the binary sink entirely) without touching the core.
package otf

import "time"

// Writer is the abstract binary trace-file sink. Every method corresponds
// to one of the record kinds spec §4.4/§6 requires: creator definition,
// timer resolution, process definition and lifecycle, function definition,
// file definition, counter definition, enter, leave, begin/end file
// operation, and counter sample.
type Writer interface {
	// WriteCreator records the tool that produced this trace and the
	// process name passed to Init.
	WriteCreator(creator, processName string) error

	// WriteTimerResolution records that one tick of every timestamp in
	// this trace equals one microsecond.
	WriteTimerResolution(oneTick time.Duration) error

	// WriteProcessDef declares a process id as belonging to processName.
	WriteProcessDef(processID uint64, processName string) error
	// WriteProcessBegin / WriteProcessEnd bracket a process's lifetime.
	WriteProcessBegin(timestamp int64, processID uint64) error
	WriteProcessEnd(timestamp int64, processID uint64) error

	// WriteFunctionDef interns a function name under functionID, emitted
	// only the first time that name is seen.
	WriteFunctionDef(functionID uint64, name string) error
	// WriteFileDef interns a file path under fileID, emitted only the
	// first time that path is seen.
	WriteFileDef(fileID uint64, path string) error
	// WriteCounterDef interns a counter name under counterID, emitted
	// only the first time that name is seen. All counters in this port
	// are accumulating, process-scoped counters.
	WriteCounterDef(counterID uint64, name string) error

	// WriteEnter / WriteLeave record a function span.
	WriteEnter(timestamp int64, functionID, processID uint64) error
	WriteLeave(timestamp int64, functionID, processID uint64) error

	// WriteFileBegin / WriteFileEnd record a file operation.
	WriteFileBegin(timestamp int64, processID, fileID uint64) error
	WriteFileEnd(timestamp int64, processID, fileID uint64, opCode int, length int64) error

	// WriteCounterSample records one value of a counter.
	WriteCounterSample(timestamp int64, processID, counterID uint64, value float64) error

	// Close flushes and releases any backing file or file manager.
	Close() error
}
