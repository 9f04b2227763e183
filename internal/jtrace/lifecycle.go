package jtrace

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Beyney/julea/internal/julog"
	"github.com/Beyney/julea/internal/otf"
)

const (
	envTrace         = "JULEA_TRACE"
	envTraceFunction = "JULEA_TRACE_FUNCTION"
)

// initConfig collects the knobs Init accepts beyond processName. The
// environment variables remain the only inputs a real deployment uses;
// the rest exist so tests can capture echo output or avoid touching the
// filesystem for the binary sink, without adding a second, dynamic
// configuration path (see spec §2 Non-goals: no dynamic reconfiguration).
type initConfig struct {
	lookupEnv  func(string) (string, bool)
	echoOut    io.Writer
	binaryPath string
	logger     julog.Logger
	binaryOpen func(path string) (otf.Writer, error)
}

// Option customizes Init for tests. Production callers need none of these.
type Option func(*initConfig)

// WithEchoWriter redirects the echo sink, and the summary dump written by
// Fini, to w instead of os.Stderr.
func WithEchoWriter(w io.Writer) Option {
	return func(c *initConfig) { c.echoOut = w }
}

// WithBinaryPath overrides the binary trace file path (default:
// "<processName>.otf" in the current directory).
func WithBinaryPath(path string) Option {
	return func(c *initConfig) { c.binaryPath = path }
}

// WithLogger sets the Logger used for internal warnings.
func WithLogger(l julog.Logger) Option {
	return func(c *initConfig) { c.logger = l }
}

// WithEnvLookup overrides environment-variable resolution, for tests that
// must not mutate process-wide environment state.
func WithEnvLookup(f func(string) (string, bool)) Option {
	return func(c *initConfig) { c.lookupEnv = f }
}

// withBinaryOpen overrides how the binary sink's file is opened, for tests.
func withBinaryOpen(f func(path string) (otf.Writer, error)) Option {
	return func(c *initConfig) { c.binaryOpen = f }
}

// Init parses JULEA_TRACE and JULEA_TRACE_FUNCTION from the environment,
// constructs whichever sinks were requested, and enables the subsystem. It
// is a precondition failure to call Init while tracing is already active;
// that is a configuration misuse (spec §7) reported through the logger,
// not a panic, and Init otherwise returns without changing state.
//
// Init must be called at most once per process before any event.
// Concurrent calls to Init are serialized by an internal mutex; a call that
// finds tracing already active only warns, as described above.
func Init(processName string, opts ...Option) {
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()

	cfg := initConfig{
		lookupEnv:  lookupOSEnv,
		binaryOpen: otf.Open,
		logger:     julog.Null(),
	}
	for _, o := range opts {
		o(&cfg)
	}

	if active != nil {
		cfg.logger.Warningf("jtrace: Init called while tracing is already active; ignoring")
		return
	}

	raw, _ := cfg.lookupEnv(envTrace)
	flags := parseFlags(raw)
	if flags == FlagOff {
		activeFlags.Store(uint32(FlagOff))
		return
	}

	c := &core{
		processName: processName,
		startTime:   time.Now(),
		logger:      cfg.logger,
	}

	if fnRaw, ok := cfg.lookupEnv(envTraceFunction); ok && fnRaw != "" {
		c.filter = newFilter(splitNonEmpty(fnRaw))
	}

	if flags.has(FlagEcho) || flags.has(FlagSummary) {
		if cfg.echoOut != nil {
			c.echoOut = cfg.echoOut
		} else {
			c.echoOut = defaultEchoOutput()
		}
	}

	if flags.has(FlagBinary) {
		path := cfg.binaryPath
		if path == "" {
			path = processName + ".otf"
		}
		w, err := cfg.binaryOpen(path)
		if err != nil {
			cfg.logger.Warningf("jtrace: could not open binary trace file %q: %s; disabling binary sink", path, err)
			flags &^= FlagBinary
		} else {
			c.binaryWriter = w
			c.functionIDs = newInternTable()
			c.fileIDs = newInternTable()
			c.counterIDs = newInternTable()
			if err := c.binaryWriter.WriteCreator("JTrace", processName); err != nil {
				cfg.logger.Warningf("jtrace: binary sink creator record failed: %s", err)
			}
			if err := c.binaryWriter.WriteTimerResolution(time.Microsecond); err != nil {
				cfg.logger.Warningf("jtrace: binary sink timer-resolution record failed: %s", err)
			}
		}
	}

	if flags.has(FlagSummary) {
		c.summaryTable = make(map[string]summaryEntry)
	}

	active = c
	activeFlags.Store(uint32(flags))
}

// Fini is a no-op when tracing is off. Otherwise it flushes the summary
// table, closes the binary writer, frees the filter, and resets flags to
// Off. Calling Fini without a matching Init is a configuration misuse:
// Fini returns without changing state, and its warning goes to
// julog.Null(), so no configured logger receives it.
func Fini() {
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()

	c := active
	if c == nil {
		julog.Null().Warningf("jtrace: Fini called while tracing is not active")
		return
	}

	// Flip the fast-path flag to Off before tearing anything else down, so
	// any Enter/Leave racing this Fini sees tracing as off and takes its
	// early-return path instead of touching sinks being closed. This does
	// not eliminate every race (a call that already read the old flags
	// value an instant earlier can still be mid-dispatch), matching the
	// spec's "best-effort, never perturb the caller" stance rather than
	// adding a lock to the hot path to close that last window.
	activeFlags.Store(uint32(FlagOff))

	if c.binaryWriter != nil {
		if err := c.binaryWriter.Close(); err != nil {
			c.logger.Warningf("jtrace: closing binary sink: %s", err)
		}
	}

	if c.summaryTable != nil {
		dumpSummary(c)
	}

	resetContexts()
	active = nil
}

// dumpSummary writes the "# stack duration[s] count" header followed by one
// line per entry, in unspecified order, to the echo stream: the writer given
// with WithEchoWriter, or stderr. Init sets that stream whenever summary is
// enabled, whether or not echo is, so the dump happens exactly once.
func dumpSummary(c *core) {
	out := c.echoOut
	if out == nil {
		out = defaultEchoOutput()
	}
	fmt.Fprintln(out, "# stack duration[s] count")
	for path, e := range c.summaryTable {
		fmt.Fprintf(out, "%s %g %d\n", path, e.seconds, e.count)
	}
	c.summaryTable = nil
}

func lookupOSEnv(name string) (string, bool) {
	return osLookupEnv(name)
}

// parseFlags splits raw on commas and recognizes echo/otf/summary; unknown
// tokens are silently ignored, matching spec §4.1.
func parseFlags(raw string) Flags {
	var f Flags
	for _, tok := range splitNonEmpty(raw) {
		switch strings.TrimSpace(tok) {
		case "echo":
			f |= FlagEcho
		case "otf":
			f |= FlagBinary
		case "summary":
			f |= FlagSummary
		}
	}
	return f
}

// splitNonEmpty splits raw on commas and drops empty elements, so that a
// trailing comma or an unset/empty variable never produces a spurious
// token.
func splitNonEmpty(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
