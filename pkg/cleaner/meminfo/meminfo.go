// Package meminfo estimates physical memory figures from coarse kernel
// counters. Readings never fail: any parse or access error substitutes
// a documented conservative default, because callers always need a
// renderable number.
package meminfo

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/instafoody/cleaner/pkg/cleaner/logging"
	"github.com/instafoody/cleaner/pkg/cleaner/tier"
)

// Conservative fallback figures, in MB, used whenever the kernel
// counters cannot be read or produce nonsense.
const (
	DefaultTotalMB     int64 = 2048
	DefaultAvailableMB int64 = 512
	DefaultFreeableMB  int64 = 128
)

// freeableFraction is the share of page cache and buffers credited as
// freeable. Over-counting reclaimable cache would be misleading, so
// only a fraction is reported.
const freeableFraction = 0.4

// Default kernel paths.
const (
	DefaultSource     = "/proc/meminfo"
	DefaultDropCaches = "/proc/sys/vm/drop_caches"
	defaultSettle     = 500 * time.Millisecond
)

// Snapshot is one reading of the memory counters. It is a value type:
// recomputed on every query, never mutated after construction.
type Snapshot struct {
	// TotalMB is total physical memory as the kernel reports it.
	TotalMB int64 `json:"total_mb"`

	// AvailableMB is memory available to new allocations. When the
	// kernel does not report it directly it is derived as
	// free + cached + buffers.
	AvailableMB int64 `json:"available_mb"`

	// UsedMB is TotalMB - AvailableMB.
	UsedMB int64 `json:"used_mb"`

	// FreeableMB estimates how much could be reclaimed without data
	// loss; a fraction of page cache and buffers.
	FreeableMB int64 `json:"freeable_mb"`

	// PhysicalTierMB is the marketed RAM size the total rounds to.
	PhysicalTierMB int64 `json:"physical_tier_mb"`

	// SwapMB is total swap.
	SwapMB int64 `json:"swap_mb"`
}

// DefaultSnapshot returns the conservative fallback reading.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		TotalMB:        DefaultTotalMB,
		AvailableMB:    DefaultAvailableMB,
		UsedMB:         DefaultTotalMB - DefaultAvailableMB,
		FreeableMB:     DefaultFreeableMB,
		PhysicalTierMB: tier.ForMemory(DefaultTotalMB, 0),
	}
}

// Config configures an Estimator.
type Config struct {
	// Source is the counters file, in "KEY: VALUE kB" format.
	// Empty uses DefaultSource.
	Source string

	// DropCaches is the kernel control file for requesting a cache
	// drop. Empty uses DefaultDropCaches.
	DropCaches string

	// Settle is how long Optimize waits for the OS to respond before
	// re-reading the counters.
	Settle time.Duration
}

// Estimator reads memory counters and derives display figures.
type Estimator struct {
	source     string
	dropCaches string
	settle     time.Duration
	log        *logging.Logger
}

// New creates an Estimator, applying defaults for empty config fields.
func New(cfg Config) *Estimator {
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	if cfg.DropCaches == "" {
		cfg.DropCaches = DefaultDropCaches
	}
	if cfg.Settle <= 0 {
		cfg.Settle = defaultSettle
	}
	return &Estimator{
		source:     cfg.Source,
		dropCaches: cfg.DropCaches,
		settle:     cfg.Settle,
		log:        logging.Get("meminfo"),
	}
}

// Read returns the current memory snapshot. It never fails: when the
// default kernel counters file cannot be parsed a system-API fallback
// is tried (hosts without a proc filesystem), and when no reading
// yields a sane total the conservative default snapshot is returned.
// An explicitly configured source that cannot be read goes straight to
// the defaults, so tests can force the fallback path.
func (e *Estimator) Read() Snapshot {
	snap, err := e.readCounters()
	if err != nil && e.source == DefaultSource {
		e.log.Debug("counters unreadable, trying system API", "source", e.source, "error", err)
		snap, err = readSystem()
	}
	if err != nil || snap.TotalMB <= 0 || snap.PhysicalTierMB <= 0 {
		e.log.Warn("memory reading unavailable, using defaults", "error", err)
		return DefaultSnapshot()
	}
	return snap
}

// readCounters parses the counters file and derives the snapshot.
func (e *Estimator) readCounters() (Snapshot, error) {
	counters, err := parseCounters(e.source)
	if err != nil {
		return Snapshot{}, err
	}

	totalMB := counters["MemTotal"] / 1024
	if totalMB <= 0 {
		return Snapshot{}, fmt.Errorf("meminfo: MemTotal missing in %s", e.source)
	}

	freeMB := counters["MemFree"] / 1024
	cachedMB := counters["Cached"] / 1024
	buffersMB := counters["Buffers"] / 1024
	swapMB := counters["SwapTotal"] / 1024

	availableMB, ok := counters["MemAvailable"]
	if ok {
		availableMB /= 1024
	} else {
		// Older kernels do not report MemAvailable.
		availableMB = freeMB + cachedMB + buffersMB
	}

	return derive(totalMB, availableMB, cachedMB, buffersMB, swapMB), nil
}

// readSystem reads memory figures through gopsutil, for hosts without
// a proc-style counters file.
func readSystem() (Snapshot, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Snapshot{}, fmt.Errorf("meminfo: virtual memory: %w", err)
	}

	var swapMB int64
	if sw, err := mem.SwapMemory(); err == nil {
		swapMB = int64(sw.Total) / (1024 * 1024)
	}

	const mb = 1024 * 1024
	return derive(
		int64(vm.Total)/mb,
		int64(vm.Available)/mb,
		int64(vm.Cached)/mb,
		int64(vm.Buffers)/mb,
		swapMB,
	), nil
}

// derive computes the dependent figures from the raw MB counters.
func derive(totalMB, availableMB, cachedMB, buffersMB, swapMB int64) Snapshot {
	return Snapshot{
		TotalMB:        totalMB,
		AvailableMB:    availableMB,
		UsedMB:         totalMB - availableMB,
		FreeableMB:     int64(float64(cachedMB+buffersMB) * freeableFraction),
		PhysicalTierMB: tier.ForMemory(totalMB, swapMB),
		SwapMB:         swapMB,
	}
}

// parseCounters reads "KEY: VALUE kB" lines into a map of kB values.
// Malformed lines are skipped.
func parseCounters(path string) (map[string]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meminfo: open %s: %w", path, err)
	}
	defer f.Close()

	counters := make(map[string]int64)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, rest, found := strings.Cut(sc.Text(), ":")
		if !found {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		kb, perr := strconv.ParseInt(fields[0], 10, 64)
		if perr != nil {
			continue
		}
		counters[strings.TrimSpace(key)] = kb
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("meminfo: read %s: %w", path, err)
	}
	if len(counters) == 0 {
		return nil, fmt.Errorf("meminfo: no counters in %s", path)
	}
	return counters, nil
}
