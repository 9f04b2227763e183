// Package fuseadapter is a stand-in for the FUSE bridge between the
// kernel's filesystem calls and the storage client. It implements exactly
// one entry point, Utimens, and intentionally keeps the original
// framework's known gap rather than inventing behavior it never had.
package fuseadapter

import (
	"time"

	"github.com/Beyney/julea/internal/jtrace"
)

// Utimens stands in for jfs_utimens. The framework this is ported from
// returns success here without ever applying the requested timestamps to
// the backing item — a documented incompleteness, not a Go regression.
// TODO: apply atime/mtime to the backing storageclient item once that
// operation exists; see item-status record for where the timestamps
// would need to be persisted.
func Utimens(path string, atime, mtime time.Time) error {
	span := jtrace.Enter("fuseadapter.utimens", "%s", path)
	defer jtrace.Leave(span)
	return nil
}
