package scanner

import "github.com/instafoody/cleaner/pkg/cleaner/types"

// CacheBytes returns the total size of cache-category entries.
func (s *Scanner) CacheBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cacheB
}

// TempBytes returns the total size of temp-category entries.
func (s *Scanner) TempBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tempB
}

// BigBytes returns the total size of big-category entries.
func (s *Scanner) BigBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bigB
}

// TotalBytes returns the inventory grand total in bytes.
func (s *Scanner) TotalBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalB
}

// CacheGB returns the cache total in gigabytes.
func (s *Scanner) CacheGB() float64 {
	return float64(s.CacheBytes()) / float64(types.GiB)
}

// TempGB returns the temp total in gigabytes.
func (s *Scanner) TempGB() float64 {
	return float64(s.TempBytes()) / float64(types.GiB)
}

// BigGB returns the big total in gigabytes.
func (s *Scanner) BigGB() float64 {
	return float64(s.BigBytes()) / float64(types.GiB)
}

// TotalGB returns the grand total in gigabytes.
func (s *Scanner) TotalGB() float64 {
	return float64(s.TotalBytes()) / float64(types.GiB)
}

// EntryCount returns the number of inventoried entries, empty
// directories included.
func (s *Scanner) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// SkippedCount returns how many paths the last scan skipped over.
func (s *Scanner) SkippedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

// Entries returns a copy of the current inventory in discovery order.
func (s *Scanner) Entries() []types.JunkEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.JunkEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// CategoriesValid reports whether the category totals reconcile with
// the grand total. It holds after every completed scan and is asserted
// in tests.
func (s *Scanner) CategoriesValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cacheB+s.tempB+s.bigB == s.totalB
}

// Summary returns an aggregated view of the last scan.
func (s *Scanner) Summary() types.ScanSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	errs := make([]types.ScanError, len(s.scanErrs))
	copy(errs, s.scanErrs)

	return types.ScanSummary{
		CacheBytes: s.cacheB,
		TempBytes:  s.tempB,
		BigBytes:   s.bigB,
		TotalBytes: s.totalB,
		EntryCount: len(s.entries),
		Skipped:    s.skipped,
		Elapsed:    s.elapsed,
		Errors:     errs,
	}
}
