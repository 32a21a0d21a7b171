package tier

import "testing"

// TestNearest verifies nearest-tier selection and tie breaking.
func TestNearest(t *testing.T) {
	tiers := []int64{64, 128, 256}

	tests := []struct {
		name     string
		value    float64
		fallback int64
		want     int64
	}{
		{"exact match", 128, 64, 128},
		{"rounds down", 70, 64, 64},
		{"rounds up", 120, 64, 128},
		{"tie breaks toward smaller", 96, 64, 64},
		{"zero returns fallback", 0, 64, 64},
		{"negative returns fallback", -5, 64, 64},
		{"above all tiers", 10000, 64, 256},
		{"below all tiers", 1, 64, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Nearest(tt.value, tiers, tt.fallback)
			if got != tt.want {
				t.Errorf("Nearest(%v) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

// TestNearestEmptyTable verifies the fallback on an empty tier table.
func TestNearestEmptyTable(t *testing.T) {
	if got := Nearest(100, nil, 64); got != 64 {
		t.Errorf("Nearest with empty table = %d, want 64", got)
	}
}

// TestForStorage verifies the range-band mapping and its fallthrough.
func TestForStorage(t *testing.T) {
	const gb = int64(1024 * 1024 * 1024)

	tests := []struct {
		name  string
		bytes int64
		want  int64
	}{
		{"zero returns default", 0, DefaultStorageTierGB},
		{"negative returns default", -1, DefaultStorageTierGB},
		{"band lower edge 48GB", 48 * gb, 64},
		{"band interior 100GB", 100 * gb, 128},
		{"band upper edge exclusive 180GB", 180 * gb, 256},
		{"band 90GB maps up", 90 * gb, 128},
		{"band 700GB", 700 * gb, 1024},
		{"below all bands falls through", 2 * gb, 8},
		{"above all bands falls through", 4000 * gb, 2048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForStorage(tt.bytes)
			if got != tt.want {
				t.Errorf("ForStorage(%d) = %d, want %d", tt.bytes, got, tt.want)
			}
		})
	}
}

// TestForMemory verifies the swap-aware memory variant.
func TestForMemory(t *testing.T) {
	tests := []struct {
		name    string
		totalMB int64
		swapMB  int64
		want    int64
	}{
		{"zero returns default", 0, 0, DefaultRAMTierMB},
		{"no swap nearest tier", 3900, 0, 4096},
		{"negligible swap ignored", 3900, 50, 4096},
		// 5120 total with 2048 swap: physical window [3072, 5120],
		// largest standard size in the window is 4096.
		{"swap window picks physical size", 5120, 2048, 4096},
		// 2100 total with 200 swap: window [1900, 2100] holds 2048.
		{"swap window exact fit", 2100, 200, 2048},
		// Swap at exactly the threshold does not trigger the window.
		{"threshold swap ignored", 8200, 100, 8192},
		// Window [8800, 9000] holds no standard size; falls back to
		// nearest on the raw total.
		{"no tier in window falls back", 9000, 200, 8192},
		{"tiny total nearest", 900, 0, 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForMemory(tt.totalMB, tt.swapMB)
			if got != tt.want {
				t.Errorf("ForMemory(%d, %d) = %d, want %d", tt.totalMB, tt.swapMB, got, tt.want)
			}
		})
	}
}

// TestForMemoryNeverZero verifies the estimator always produces a
// positive renderable tier.
func TestForMemoryNeverZero(t *testing.T) {
	for _, total := range []int64{-100, 0, 1, 512, 100000} {
		if got := ForMemory(total, 0); got <= 0 {
			t.Errorf("ForMemory(%d, 0) = %d, want > 0", total, got)
		}
	}
}
