// Package classify assigns filesystem entries to junk categories.
// Classification is pure string and size inspection: deterministic,
// no filesystem access.
package classify

import (
	"path/filepath"
	"strings"

	"github.com/instafoody/cleaner/pkg/cleaner/types"
)

// BigFileThreshold is the size above which an otherwise unclassified
// file counts as big residue.
const BigFileThreshold = 10 * types.MiB

// Context carries the role of the directory a walk is rooted under.
// A file inside a temp-role root is temp regardless of its name.
type Context struct {
	// TempRoot marks the walk as rooted under a temp-role directory.
	TempRoot bool

	// CacheRoot marks the walk as rooted under a cache-role directory.
	CacheRoot bool
}

// junkExtensions lists file extensions that mark a file as junk for
// generic app-directory scans. Membership here is an eligibility
// filter, not a category.
var junkExtensions = map[string]struct{}{
	".tmp":        {},
	".log":        {},
	".bak":        {},
	".cache":      {},
	".temp":       {},
	".old":        {},
	".dmp":        {},
	".crdownload": {},
	".part":       {},
	".download":   {},
}

// Classify assigns a file to exactly one category. Rules are evaluated
// in order and the first match wins:
//
//  1. temp-role root, or a temp-looking name, yields temp
//  2. cache-role root, or a cache-looking name, yields cache
//  3. size over BigFileThreshold yields big
//  4. everything else defaults to temp
func Classify(path string, size int64, ctx Context) types.Category {
	name := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(name)

	if ctx.TempRoot || strings.Contains(name, "temp") || ext == ".tmp" || ext == ".temp" {
		return types.CategoryTemp
	}
	if ctx.CacheRoot || strings.Contains(name, "cache") || ext == ".cache" {
		return types.CategoryCache
	}
	if size > BigFileThreshold {
		return types.CategoryBig
	}
	return types.CategoryTemp
}

// TempName reports whether the file name alone marks a file as
// temporary. Used by temp-root walks, which inventory only files that
// look temporary and leave everything else in place.
func TempName(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(name)
	return strings.Contains(name, "temp") || ext == ".tmp" || ext == ".temp"
}

// HasJunkExtension reports whether the file's extension marks it as
// junk. Used as the eligibility gate for generic app-directory scans:
// a file with no junk extension is only inventoried when it exceeds
// the big-file threshold.
func HasJunkExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := junkExtensions[ext]
	return ok
}

// Eligible reports whether a file in a generic app directory should be
// inventoried at all: either its extension is a known junk marker or it
// is big enough to count as residue.
func Eligible(path string, size int64) bool {
	return HasJunkExtension(path) || size > BigFileThreshold
}
