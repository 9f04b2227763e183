package jtrace

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/Beyney/julea/internal/otf"
)

func TestInitOffByDefault(t *testing.T) {
	Init("test", WithEnvLookup(envLookup(nil)))
	defer Fini()

	if currentFlags() != FlagOff {
		t.Fatalf("flags = %s, want off", currentFlags())
	}
	if active != nil {
		t.Fatal("active core should stay nil when JULEA_TRACE is unset")
	}
}

func TestInitParsesMultipleFlags(t *testing.T) {
	Init("test", WithEnvLookup(envLookup(map[string]string{
		"JULEA_TRACE": "echo,summary",
	})))
	defer Fini()

	flags := currentFlags()
	if !flags.has(FlagEcho) || !flags.has(FlagSummary) || flags.has(FlagBinary) {
		t.Fatalf("flags = %s, want echo|summary only", flags)
	}
}

func TestInitIgnoresUnknownTokens(t *testing.T) {
	Init("test", WithEnvLookup(envLookup(map[string]string{
		"JULEA_TRACE": "echo,bogus",
	})))
	defer Fini()

	if flags := currentFlags(); flags != FlagEcho {
		t.Fatalf("flags = %s, want echo only", flags)
	}
}

func TestReInitIsIgnored(t *testing.T) {
	var buf bytes.Buffer
	var warned bool
	Init("test", WithEchoWriter(&buf), WithEnvLookup(envLookup(map[string]string{
		"JULEA_TRACE": "echo",
	})))
	defer Fini()

	first := active
	Init("test-again", WithLogger(warnRecorder(&warned)), WithEnvLookup(envLookup(map[string]string{
		"JULEA_TRACE": "summary",
	})))

	if active != first {
		t.Fatal("second Init must not replace the active core")
	}
	if !warned {
		t.Fatal("second Init should have warned through the logger")
	}
	if !currentFlags().has(FlagEcho) || currentFlags().has(FlagSummary) {
		t.Fatal("flags must remain from the first Init")
	}
}

func TestFiniWithoutInitDoesNotPanic(t *testing.T) {
	var warned bool
	// Fini always reads julog.Null() directly when inactive, so this just
	// verifies it does not panic and leaves state untouched.
	if active != nil {
		t.Fatal("test fixture leaked an active core from a prior test")
	}
	Fini()
	_ = warned
}

func TestFiniClosesBinarySink(t *testing.T) {
	fake := &fakeOTFWriter{}
	Init("test", WithEnvLookup(envLookup(map[string]string{
		"JULEA_TRACE": "otf",
	})), withBinaryOpen(func(path string) (otf.Writer, error) {
		return fake, nil
	}))

	Fini()

	if !fake.closed {
		t.Fatal("Fini must close the binary writer")
	}
}

func TestBinaryOpenFailureDisablesBinaryOnly(t *testing.T) {
	var warned bool
	Init("test", WithLogger(warnRecorder(&warned)), WithEnvLookup(envLookup(map[string]string{
		"JULEA_TRACE": "otf,echo",
	})), withBinaryOpen(func(path string) (otf.Writer, error) {
		return nil, errors.New("disk full")
	}))
	defer Fini()

	flags := currentFlags()
	if flags.has(FlagBinary) {
		t.Fatal("binary flag should be cleared when the sink fails to open")
	}
	if !flags.has(FlagEcho) {
		t.Fatal("echo flag should survive a binary-sink open failure")
	}
	if !warned {
		t.Fatal("expected a warning about the failed binary sink")
	}
}

func TestFunctionFilterFromEnv(t *testing.T) {
	var buf bytes.Buffer
	Init("test", WithEchoWriter(&buf), WithEnvLookup(envLookup(map[string]string{
		"JULEA_TRACE":          "echo",
		"JULEA_TRACE_FUNCTION": "foo*,bar",
	})))
	defer Fini()

	if active.filter == nil {
		t.Fatal("expected a non-nil filter from JULEA_TRACE_FUNCTION")
	}
	if !active.filter.Check("foobar") || !active.filter.Check("bar") {
		t.Fatal("filter should accept foo* and bar")
	}
	if active.filter.Check("baz") {
		t.Fatal("filter should reject baz")
	}
}

// warnRecorder returns a Logger whose Warningf sets *hit to true; every
// other method is a no-op.
func warnRecorder(hit *bool) recorderLogger {
	return recorderLogger{hit: hit}
}

type recorderLogger struct{ hit *bool }

func (r recorderLogger) Debugf(string, ...interface{})   {}
func (r recorderLogger) Infof(string, ...interface{})    {}
func (r recorderLogger) Warningf(string, ...interface{}) { *r.hit = true }
func (r recorderLogger) Errorf(string, ...interface{})   {}

type fakeOTFWriter struct {
	closed bool
}

func (f *fakeOTFWriter) WriteCreator(creator, processName string) error        { return nil }
func (f *fakeOTFWriter) WriteTimerResolution(oneTick time.Duration) error      { return nil }
func (f *fakeOTFWriter) WriteProcessDef(processID uint64, name string) error   { return nil }
func (f *fakeOTFWriter) WriteProcessBegin(ts int64, processID uint64) error    { return nil }
func (f *fakeOTFWriter) WriteProcessEnd(ts int64, processID uint64) error      { return nil }
func (f *fakeOTFWriter) WriteFunctionDef(id uint64, name string) error         { return nil }
func (f *fakeOTFWriter) WriteFileDef(id uint64, path string) error            { return nil }
func (f *fakeOTFWriter) WriteCounterDef(id uint64, name string) error         { return nil }
func (f *fakeOTFWriter) WriteEnter(ts int64, functionID, processID uint64) error { return nil }
func (f *fakeOTFWriter) WriteLeave(ts int64, functionID, processID uint64) error { return nil }
func (f *fakeOTFWriter) WriteFileBegin(ts int64, processID, fileID uint64) error { return nil }
func (f *fakeOTFWriter) WriteFileEnd(ts int64, processID, fileID uint64, opCode int, length int64) error {
	return nil
}
func (f *fakeOTFWriter) WriteCounterSample(ts int64, processID, counterID uint64, value float64) error {
	return nil
}
func (f *fakeOTFWriter) Close() error {
	f.closed = true
	return nil
}
