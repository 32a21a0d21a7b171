// Package tier maps raw measured capacities to marketed hardware tiers.
// Real devices report less RAM and disk than the box advertises, so raw
// readings are rounded to the nearest standard capacity for display.
// All functions are deterministic and side-effect free.
package tier

// Standard marketed capacities.
var (
	// RAMTiersMB lists standard physical RAM sizes in MB, ascending.
	RAMTiersMB = []int64{1024, 2048, 3072, 4096, 6144, 8192, 12288, 16384, 24576, 32768, 65536}

	// StorageTiersGB lists standard storage sizes in GB, ascending.
	StorageTiersGB = []int64{8, 16, 32, 64, 128, 256, 512, 1024, 2048}
)

// Safe defaults returned when a measurement is missing or nonsensical.
// Estimation must always produce a renderable number, never zero.
const (
	// DefaultRAMTierMB is the fallback physical RAM tier.
	DefaultRAMTierMB int64 = 2048

	// DefaultStorageTierGB is the fallback storage tier.
	DefaultStorageTierGB int64 = 64

	// swapThresholdMB is the swap size above which the memory variant
	// assumes swap was configured on top of a standard RAM size.
	swapThresholdMB int64 = 100
)

// storageBand maps an inclusive-lower/exclusive-upper GB range directly
// to a marketed tier. Filesystem and system-partition overhead means
// devices report 10-20% under their marketed capacity, so the bands are
// wide toward the low side.
type storageBand struct {
	lo, hi int64 // [lo, hi) in GB
	tier   int64
}

var storageBands = []storageBand{
	{6, 13, 8},
	{13, 27, 16},
	{27, 48, 32},
	{48, 90, 64},
	{90, 180, 128},
	{180, 350, 256},
	{350, 700, 512},
	{700, 1400, 1024},
	{1400, 2800, 2048},
}

// Nearest returns the table value with the smallest absolute distance to
// value, breaking ties toward the smaller tier. A non-positive value or
// an empty table returns fallback.
func Nearest(value float64, table []int64, fallback int64) int64 {
	if value <= 0 || len(table) == 0 {
		return fallback
	}

	best := table[0]
	bestDist := abs(value - float64(table[0]))
	for _, t := range table[1:] {
		d := abs(value - float64(t))
		if d < bestDist {
			best = t
			bestDist = d
		}
	}
	return best
}

// ForStorage maps a total disk size in bytes to a marketed tier in GB.
// Range bands are consulted first; sizes outside every band fall through
// to nearest-tier matching on the raw GB value.
func ForStorage(totalBytes int64) int64 {
	if totalBytes <= 0 {
		return DefaultStorageTierGB
	}

	gb := totalBytes / (1024 * 1024 * 1024)
	for _, b := range storageBands {
		if gb >= b.lo && gb < b.hi {
			return b.tier
		}
	}

	return Nearest(float64(gb), StorageTiersGB, DefaultStorageTierGB)
}

// ForMemory maps total RAM and swap, both in MB, to a marketed physical
// RAM tier in MB. When swap exceeds the threshold the reported total is
// assumed to be physical RAM plus swap, so the tier is picked from the
// [total-swap, total] window: the largest standard size that fits. If no
// tier fits the window, or swap is negligible, the nearest tier to the
// raw total wins.
func ForMemory(totalMB, swapMB int64) int64 {
	if totalMB <= 0 {
		return DefaultRAMTierMB
	}

	if swapMB > swapThresholdMB {
		physical := totalMB - swapMB
		var match int64
		for _, t := range RAMTiersMB {
			if t >= physical && t <= totalMB {
				match = t
			}
		}
		if match > 0 {
			return match
		}
	}

	return Nearest(float64(totalMB), RAMTiersMB, DefaultRAMTierMB)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
