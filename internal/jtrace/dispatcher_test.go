package jtrace

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func envLookup(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

// TestEchoEnterLeave covers scenario S1: enter(a); enter(b); leave(b);
// leave(a), with echo-only flags.
func TestEchoEnterLeave(t *testing.T) {
	Convey("Given echo tracing is on", t, func() {
		var buf bytes.Buffer
		Init("test", WithEchoWriter(&buf), WithEnvLookup(envLookup(map[string]string{
			"JULEA_TRACE": "echo",
		})))
		defer Fini()

		Convey("enter(a); enter(b); leave(b); leave(a) produces four ordered lines", func() {
			a := Enter("a", "")
			b := Enter("b", "")
			Leave(b)
			Leave(a)

			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			So(len(lines), ShouldEqual, 4)
			So(lines[0], ShouldContainSubstring, "ENTER a")
			So(strings.HasPrefix(trimAfterColon(lines[0]), "ENTER a"), ShouldBeTrue)
			So(strings.HasPrefix(trimAfterColon(lines[1]), "  ENTER b"), ShouldBeTrue)
			So(strings.HasPrefix(trimAfterColon(lines[2]), "  LEAVE b"), ShouldBeTrue)
			So(strings.HasPrefix(trimAfterColon(lines[3]), "LEAVE a"), ShouldBeTrue)
		})
	})
}

// trimAfterColon strips the "[sec.usec] process thread:" header, leaving
// the indentation and event text, since the header's exact byte content
// (process name, thread name, timestamp) is not what S1 asserts on.
func trimAfterColon(line string) string {
	idx := strings.Index(line, ": ")
	if idx < 0 {
		return line
	}
	return line[idx+2:]
}

// TestSummaryAdditivity covers scenario S2: two balanced (a (b)) traces
// fold into two summary lines with count 2 each.
func TestSummaryAdditivity(t *testing.T) {
	Convey("Given summary tracing is on", t, func() {
		var buf bytes.Buffer
		Init("test", WithEchoWriter(&buf), WithEnvLookup(envLookup(map[string]string{
			"JULEA_TRACE": "summary",
		})))

		Convey("two balanced enter(a)/enter(b) traces fold additively", func() {
			for i := 0; i < 2; i++ {
				a := Enter("a", "")
				b := Enter("b", "")
				Leave(b)
				Leave(a)
			}
			Fini()

			out := buf.String()
			So(out, ShouldContainSubstring, "# stack duration[s] count")
			So(out, ShouldContainSubstring, " 2\n")
			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			// header + exactly two data lines (a, a/b)
			So(len(lines), ShouldEqual, 3)
			var sawA, sawAB bool
			for _, l := range lines[1:] {
				if strings.HasPrefix(l, "a/b ") {
					sawAB = true
				} else if strings.HasPrefix(l, "a ") {
					sawA = true
				}
			}
			So(sawA, ShouldBeTrue)
			So(sawAB, ShouldBeTrue)
		})
	})
}

// TestFilterExclusion covers scenario S3: JULEA_TRACE_FUNCTION=foo* admits
// "foobar" and rejects "bar", and depth is unaffected by a filtered-out,
// balanced enter/leave.
func TestFilterExclusion(t *testing.T) {
	Convey("Given echo tracing is on with a function filter", t, func() {
		var buf bytes.Buffer
		Init("test", WithEchoWriter(&buf), WithEnvLookup(envLookup(map[string]string{
			"JULEA_TRACE":          "echo",
			"JULEA_TRACE_FUNCTION": "foo*",
		})))
		defer Fini()

		Convey("foobar is traced and bar is not", func() {
			span := Enter("foobar", "")
			So(span, ShouldNotBeNil)
			Leave(span)
			So(buf.String(), ShouldContainSubstring, "ENTER foobar")

			buf.Reset()
			before := currentThreadContext(false).depth
			barSpan := Enter("bar", "")
			So(barSpan, ShouldBeNil)
			Leave(barSpan)
			So(buf.String(), ShouldEqual, "")
			So(currentThreadContext(false).depth, ShouldEqual, before)
		})
	})
}

// TestCounterEcho covers scenario S4.
func TestCounterEcho(t *testing.T) {
	Convey("Given echo tracing is on", t, func() {
		var buf bytes.Buffer
		Init("test", WithEchoWriter(&buf), WithEnvLookup(envLookup(map[string]string{
			"JULEA_TRACE": "echo",
		})))
		defer Fini()

		Convey("counter emits one COUNTER line", func() {
			Counter("cache_hits", 42)
			So(strings.TrimRight(buf.String(), "\n"), ShouldEqual, "COUNTER cache_hits 42")
		})
	})
}

// TestFileBeginEnd covers scenario S5.
func TestFileBeginEnd(t *testing.T) {
	Convey("Given echo tracing is on", t, func() {
		var buf bytes.Buffer
		Init("test", WithEchoWriter(&buf), WithEnvLookup(envLookup(map[string]string{
			"JULEA_TRACE": "echo",
		})))
		defer Fini()

		Convey("file_begin/file_end produce the documented lines", func() {
			FileBegin("/p", Read)
			FileEnd("/p", Read, 128, 1024)
			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			So(lines[0], ShouldEqual, "BEGIN read /p")
			So(lines[1], ShouldEqual, "END read /p (length=128, offset=1024)")
		})
	})
}

// TestInertWhenOff covers property 1 in part: with tracing unset, Enter
// always returns nil. The Counter/FileBegin/FileEnd calls run the off path
// but their output is not checked.
func TestInertWhenOff(t *testing.T) {
	Init("test", WithEnvLookup(envLookup(nil)))
	defer Fini()

	for i := 0; i < 1000; i++ {
		if s := Enter("whatever", ""); s != nil {
			t.Fatal("Enter should return nil when tracing is off")
		}
	}
	Counter("ignored", 1)
	FileBegin("/ignored", Read)
	FileEnd("/ignored", Read, 0, 0)
}

// TestBalanceReturnsDepthToZero covers property 2.
func TestBalanceReturnsDepthToZero(t *testing.T) {
	var buf bytes.Buffer
	Init("test", WithEchoWriter(&buf), WithEnvLookup(envLookup(map[string]string{
		"JULEA_TRACE": "echo",
	})))
	defer Fini()

	a := Enter("a", "")
	b := Enter("b", "")
	c := Enter("c", "")
	Leave(c)
	Leave(b)
	Leave(a)

	if got := currentThreadContext(false).depth; got != 0 {
		t.Fatalf("depth after balanced enter/leave = %d, want 0", got)
	}
	enterCount := strings.Count(buf.String(), "ENTER ")
	leaveCount := strings.Count(buf.String(), "LEAVE ")
	if enterCount != leaveCount {
		t.Fatalf("ENTER count %d != LEAVE count %d", enterCount, leaveCount)
	}
}
