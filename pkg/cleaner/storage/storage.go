// Package storage estimates disk capacity and derives the marketed
// storage tier for the filesystem backing a path. Like the memory
// estimator, reads never fail; errors substitute a conservative
// default snapshot.
package storage

import (
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/instafoody/cleaner/pkg/cleaner/logging"
	"github.com/instafoody/cleaner/pkg/cleaner/tier"
)

// Snapshot is one reading of filesystem usage. Value type, recomputed
// on every query.
type Snapshot struct {
	// TotalBytes is the filesystem capacity.
	TotalBytes int64 `json:"total_bytes"`

	// UsedBytes is the space in use.
	UsedBytes int64 `json:"used_bytes"`

	// FreeBytes is the space available to unprivileged callers.
	FreeBytes int64 `json:"free_bytes"`

	// TierGB is the marketed capacity the total rounds to. Real
	// devices report 10-20% under the number on the box.
	TierGB int64 `json:"tier_gb"`
}

// DefaultSnapshot returns the fallback reading used when the
// filesystem cannot be queried.
func DefaultSnapshot() Snapshot {
	return Snapshot{TierGB: tier.DefaultStorageTierGB}
}

// usageFunc matches disk.Usage; swapped in tests.
type usageFunc func(path string) (*disk.UsageStat, error)

// Estimator reads usage for the filesystem containing a fixed path.
type Estimator struct {
	path  string
	usage usageFunc
	log   *logging.Logger
}

// New creates an Estimator for the filesystem containing path.
func New(path string) *Estimator {
	if path == "" {
		path = "/"
	}
	return &Estimator{
		path:  path,
		usage: disk.Usage,
		log:   logging.Get("storage"),
	}
}

// Read returns the current storage snapshot. A query failure or a
// zero-capacity reading yields DefaultSnapshot.
func (e *Estimator) Read() Snapshot {
	stat, err := e.usage(e.path)
	if err != nil || stat.Total == 0 {
		e.log.Warn("storage reading unavailable, using defaults", "path", e.path, "error", err)
		return DefaultSnapshot()
	}

	return Snapshot{
		TotalBytes: int64(stat.Total),
		UsedBytes:  int64(stat.Used),
		FreeBytes:  int64(stat.Free),
		TierGB:     tier.ForStorage(int64(stat.Total)),
	}
}
