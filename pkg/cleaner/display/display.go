// Package display generates cosmetic per-app size estimates for UIs
// that must show a number when the real figure needs privileges the
// process does not have. Estimates are deterministic stand-ins derived
// from the app identifier; they are never junk data and must never be
// merged into a scan inventory.
package display

import (
	"hash/fnv"

	"github.com/instafoody/cleaner/pkg/cleaner/types"
)

// Estimate bounds, chosen to look plausible on an app list.
const (
	minEstimate = 4 * types.MiB
	maxEstimate = 512 * types.MiB
)

// AppSize returns a stable fake size in bytes for the given app
// identifier. The same identifier always yields the same size.
func AppSize(appID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(appID))
	span := maxEstimate - minEstimate
	return minEstimate + int64(h.Sum64()%uint64(span))
}

// DataUsage returns a stable fake data-usage figure in bytes for the
// given app identifier, distinct from AppSize for the same app.
func DataUsage(appID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("data:" + appID))
	span := maxEstimate - minEstimate
	return minEstimate + int64(h.Sum64()%uint64(span))
}
