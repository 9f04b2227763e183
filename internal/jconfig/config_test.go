package jconfig

import (
	"context"
	"os"
	"testing"

	"github.com/Beyney/julea/internal/julog"
)

func TestInitIsIdempotent(t *testing.T) {
	defer Fini()
	os.Setenv("JULEA_NAMESPACE", "first")
	Init(context.Background())
	os.Setenv("JULEA_NAMESPACE", "second")
	Init(context.Background())

	if got := Get().Namespace; got != "first" {
		t.Fatalf("Namespace = %q after second Init, want %q (singleton must not re-read)", got, "first")
	}
	os.Unsetenv("JULEA_NAMESPACE")
}

func TestDefaultPoolWorkers(t *testing.T) {
	defer Fini()
	os.Unsetenv("JULEA_BACKGROUND_WORKERS")
	Init(context.Background())

	if got := Get().PoolWorkers; got != defaultPoolWorkers {
		t.Fatalf("PoolWorkers = %d, want default %d", got, defaultPoolWorkers)
	}
}

func TestInvalidPoolWorkersFallsBackToDefault(t *testing.T) {
	defer Fini()
	os.Setenv("JULEA_BACKGROUND_WORKERS", "not-a-number")
	Init(context.Background())

	if got := Get().PoolWorkers; got != defaultPoolWorkers {
		t.Fatalf("PoolWorkers = %d, want default %d on invalid input", got, defaultPoolWorkers)
	}
	os.Unsetenv("JULEA_BACKGROUND_WORKERS")
}

// TestInvalidPoolWorkersWarnsThroughContextLogger confirms Init actually
// resolves its logger via julog.Get(ctx) rather than discarding warnings,
// by carrying a recording Logger on the context.
func TestInvalidPoolWorkersWarnsThroughContextLogger(t *testing.T) {
	defer Fini()
	os.Setenv("JULEA_BACKGROUND_WORKERS", "not-a-number")
	defer os.Unsetenv("JULEA_BACKGROUND_WORKERS")

	var warned bool
	ctx := julog.Set(context.Background(), recorderLogger{hit: &warned})
	Init(ctx)

	if !warned {
		t.Fatal("Init should have warned through the context-carried logger")
	}
}

func TestGetBeforeInitPanics(t *testing.T) {
	defer Fini()
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("Get before Init should panic")
		}
	}()
	Get()
}

type recorderLogger struct{ hit *bool }

func (r recorderLogger) Debugf(string, ...interface{})   {}
func (r recorderLogger) Infof(string, ...interface{})    {}
func (r recorderLogger) Warningf(string, ...interface{}) { *r.hit = true }
func (r recorderLogger) Errorf(string, ...interface{})   {}
