// Package jconfig is a minimal stand-in for JULEA's process-wide
// configuration singleton (j_configuration_init/fini): a handful of
// environment-backed settings read once and held for the life of the
// process, lifecycle-gated the same way jtrace itself is.
//
// The tracing core never imports this package; it exists so the demo CLI
// and the other external collaborators have one place to read
// deployment settings from, instead of each calling os.Getenv directly.
package jconfig

import (
	"context"
	"os"
	"strconv"
	"sync"

	"github.com/Beyney/julea/internal/julog"
)

const (
	envStorageURL  = "JULEA_STORAGE_URL"
	envNamespace   = "JULEA_NAMESPACE"
	envPoolWorkers = "JULEA_BACKGROUND_WORKERS"

	defaultPoolWorkers = 4
)

// Config holds the settings read at Init. It is immutable after Init
// returns; there is no dynamic reconfiguration (matching jtrace's own
// stance — see spec §2 Non-goals).
type Config struct {
	StorageURL  string
	Namespace   string
	PoolWorkers int
	ExportURL   string
}

var (
	once   sync.Once
	active *Config
	mu     sync.Mutex
)

// Init reads the environment once and caches the result; subsequent calls
// are no-ops, matching j_configuration_init's singleton contract. It is
// safe to call Init concurrently from multiple goroutines.
//
// The logger used for warnings is pulled off ctx with julog.Get, the same
// context-carried Logger jtrace.WithLogger wires in explicitly — callers
// that want jconfig's warnings to land on the same backend as the tracing
// core's should build ctx with julog.Set(ctx, logger) first.
func Init(ctx context.Context) {
	logger := julog.Get(ctx)
	once.Do(func() {
		cfg := &Config{
			StorageURL:  os.Getenv(envStorageURL),
			Namespace:   os.Getenv(envNamespace),
			PoolWorkers: defaultPoolWorkers,
			ExportURL:   os.Getenv("JULEA_TRACE_EXPORT_URL"),
		}
		if raw := os.Getenv(envPoolWorkers); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				logger.Warningf("jconfig: ignoring invalid %s=%q: %s", envPoolWorkers, raw, err)
			} else {
				cfg.PoolWorkers = n
			}
		}

		mu.Lock()
		active = cfg
		mu.Unlock()
	})
}

// Fini drops the cached configuration and resets the singleton guard so a
// later Init (typically in a subsequent test) starts fresh. Production
// binaries have no need to call this.
func Fini() {
	mu.Lock()
	defer mu.Unlock()
	active = nil
	once = sync.Once{}
}

// Get returns the current configuration. It panics if Init was never
// called, matching the original's "must be initialized before use"
// contract for its configuration singleton.
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()
	if active == nil {
		panic("jconfig: Get called before Init")
	}
	return active
}
