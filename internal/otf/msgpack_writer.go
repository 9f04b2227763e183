package otf

import (
	"bufio"
	"io"
	"os"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// msgpackWriter is the concrete Writer backed by a buffered file and a
// msgpack stream encoder. It owns one mutex that serializes writes; this is
// deliberately a separate lock from jtrace's intern-table mutex, per
// DESIGN.md's "intern-table lock scope" note — jtrace looks up or creates an
// id under its own lock, releases it, and only then calls into this writer.
type msgpackWriter struct {
	mu  sync.Mutex
	f   *os.File
	buf *bufio.Writer
	enc *msgpack.Encoder
}

// Open creates (truncating) the binary trace file at path and returns a
// Writer over it.
func Open(path string) (Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(f)
	return &msgpackWriter{f: f, buf: buf, enc: msgpack.NewEncoder(buf)}, nil
}

// NewMsgpackWriter wraps an arbitrary io.Writer, for tests and for sinks
// that do not write to a plain file.
func NewMsgpackWriter(w io.Writer) Writer {
	buf := bufio.NewWriter(w)
	return &msgpackWriter{buf: buf, enc: msgpack.NewEncoder(buf)}
}

func (w *msgpackWriter) write(r record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(&r)
}

func (w *msgpackWriter) WriteCreator(creator, processName string) error {
	return w.write(record{Kind: kindCreator, CreatorName: creator, Name: processName})
}

func (w *msgpackWriter) WriteTimerResolution(oneTick time.Duration) error {
	return w.write(record{Kind: kindTimerResolution, TickMicros: oneTick.Microseconds()})
}

func (w *msgpackWriter) WriteProcessDef(processID uint64, processName string) error {
	return w.write(record{Kind: kindProcessDef, ProcessID: processID, Name: processName})
}

func (w *msgpackWriter) WriteProcessBegin(timestamp int64, processID uint64) error {
	return w.write(record{Kind: kindProcessBegin, Timestamp: timestamp, ProcessID: processID})
}

func (w *msgpackWriter) WriteProcessEnd(timestamp int64, processID uint64) error {
	return w.write(record{Kind: kindProcessEnd, Timestamp: timestamp, ProcessID: processID})
}

func (w *msgpackWriter) WriteFunctionDef(functionID uint64, name string) error {
	return w.write(record{Kind: kindFunctionDef, ID: functionID, Name: name})
}

func (w *msgpackWriter) WriteFileDef(fileID uint64, path string) error {
	return w.write(record{Kind: kindFileDef, ID: fileID, Name: path})
}

func (w *msgpackWriter) WriteCounterDef(counterID uint64, name string) error {
	return w.write(record{Kind: kindCounterDef, ID: counterID, Name: name})
}

func (w *msgpackWriter) WriteEnter(timestamp int64, functionID, processID uint64) error {
	return w.write(record{Kind: kindEnter, Timestamp: timestamp, ID: functionID, ProcessID: processID})
}

func (w *msgpackWriter) WriteLeave(timestamp int64, functionID, processID uint64) error {
	return w.write(record{Kind: kindLeave, Timestamp: timestamp, ID: functionID, ProcessID: processID})
}

func (w *msgpackWriter) WriteFileBegin(timestamp int64, processID, fileID uint64) error {
	return w.write(record{Kind: kindFileBegin, Timestamp: timestamp, ProcessID: processID, ID: fileID})
}

func (w *msgpackWriter) WriteFileEnd(timestamp int64, processID, fileID uint64, opCode int, length int64) error {
	return w.write(record{
		Kind: kindFileEnd, Timestamp: timestamp, ProcessID: processID, ID: fileID,
		OpCode: opCode, Length: length,
	})
}

func (w *msgpackWriter) WriteCounterSample(timestamp int64, processID, counterID uint64, value float64) error {
	return w.write(record{
		Kind: kindCounterSample, Timestamp: timestamp, ProcessID: processID, ID: counterID, Value: value,
	})
}

func (w *msgpackWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.buf.Flush(); err != nil {
		if w.f != nil {
			_ = w.f.Close()
		}
		return err
	}
	if w.f != nil {
		return w.f.Close()
	}
	return nil
}
