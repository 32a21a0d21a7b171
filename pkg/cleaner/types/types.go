// Package types provides core data types for the cleaner junk engine.
// It defines junk categories, inventory entries, scan summaries, and
// utility functions for parsing and formatting byte sizes.
package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Size constants for binary (IEC) units.
const (
	KiB int64 = 1024
	MiB int64 = 1024 * KiB
	GiB int64 = 1024 * MiB
	TiB int64 = 1024 * GiB
)

// Category classifies a junk entry into one of three mutually exclusive
// byte buckets. Every inventoried file belongs to exactly one category;
// the per-category totals always sum to the inventory grand total.
type Category int

// Junk categories.
const (
	// CategoryCache covers thumbnail stores, app caches, and files whose
	// name marks them as cached data.
	CategoryCache Category = iota

	// CategoryTemp covers temp-role directories and files whose name
	// marks them as temporary. Small unclassified residue defaults here.
	CategoryTemp

	// CategoryBig covers large residual files: stale downloads,
	// messaging-app media, and anything over the big-file threshold.
	CategoryBig
)

// String returns the lowercase name of the category.
func (c Category) String() string {
	switch c {
	case CategoryCache:
		return "cache"
	case CategoryTemp:
		return "temp"
	case CategoryBig:
		return "big"
	default:
		return "unknown"
	}
}

// EntryKind distinguishes files from directories in the inventory.
type EntryKind int

// Entry kinds.
const (
	KindFile EntryKind = iota
	KindDir
)

// JunkEntry identifies one filesystem object deemed safe to delete.
// Entries are created during a scan and are immutable until consumed
// by a clean; a fresh scan replaces the whole inventory.
type JunkEntry struct {
	// Path is the absolute path to the file or directory.
	Path string `json:"path"`

	// Kind reports whether the entry is a file or a directory.
	Kind EntryKind `json:"kind"`

	// Size is the file size in bytes. Directories carry 0 at scan time;
	// their real size is measured immediately before deletion.
	Size int64 `json:"size"`

	// Category is the byte bucket the entry was classified into.
	Category Category `json:"category"`

	// Empty marks a directory discovered empty during the scan.
	Empty bool `json:"empty,omitempty"`
}

// IsDir reports whether the entry is a directory.
func (e *JunkEntry) IsDir() bool {
	return e.Kind == KindDir
}

// HumanSize returns the entry size formatted as a human-readable string.
func (e *JunkEntry) HumanSize() string {
	return FormatSize(e.Size)
}

// ScanSummary contains the aggregated results of one scan.
type ScanSummary struct {
	// CacheBytes is the total size of cache-category entries.
	CacheBytes int64 `json:"cache_bytes"`

	// TempBytes is the total size of temp-category entries.
	TempBytes int64 `json:"temp_bytes"`

	// BigBytes is the total size of big-category entries.
	BigBytes int64 `json:"big_bytes"`

	// TotalBytes is the grand total; always equal to the sum of the
	// three category totals after a completed scan.
	TotalBytes int64 `json:"total_bytes"`

	// EntryCount is the number of inventoried entries, including
	// empty directories.
	EntryCount int `json:"entry_count"`

	// Skipped is the number of paths the walker could not read and
	// skipped over.
	Skipped int `json:"skipped"`

	// Elapsed is the wall-clock duration of the scan.
	Elapsed time.Duration `json:"elapsed"`

	// Errors lists the paths that were skipped, with reasons.
	Errors []ScanError `json:"errors,omitempty"`
}

// ScanError pairs a skipped path with the reason it was skipped.
type ScanError struct {
	// Path is the file or directory path where the error occurred.
	Path string `json:"path"`

	// Error is the message describing what went wrong.
	Error string `json:"error"`
}

// sizePattern matches size strings like "100M", "2G", "500K", "1.5GB".
var sizePattern = regexp.MustCompile(`(?i)^\s*([0-9]+(?:\.[0-9]+)?)\s*([KMGT]?(?:i?B)?)\s*$`)

// ErrInvalidSize indicates that the size string could not be parsed.
var ErrInvalidSize = errors.New("invalid size format")

// ErrNegativeSize indicates that a negative size value was provided.
var ErrNegativeSize = errors.New("size cannot be negative")

// ParseSize parses a human-readable size string and returns the size in
// bytes. Plain byte counts, K/M/G/T suffixes, and KB/KiB-style variants
// are accepted; decimal values are truncated to the nearest byte.
//
// Returns ErrInvalidSize if the format is not recognized and
// ErrNegativeSize if the value is negative.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidSize)
	}

	if strings.HasPrefix(s, "-") {
		return 0, ErrNegativeSize
	}

	matches := sizePattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	suffix := strings.ToUpper(matches[2])
	suffix = strings.TrimSuffix(suffix, "IB")
	suffix = strings.TrimSuffix(suffix, "B")

	var multiplier int64
	switch suffix {
	case "":
		multiplier = 1
	case "K":
		multiplier = KiB
	case "M":
		multiplier = MiB
	case "G":
		multiplier = GiB
	case "T":
		multiplier = TiB
	default:
		return 0, fmt.Errorf("%w: unknown suffix %q", ErrInvalidSize, suffix)
	}

	return int64(value * float64(multiplier)), nil
}

// FormatSize converts a size in bytes to a human-readable string using
// binary (IEC) units, consistent with common filesystem tools.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}
