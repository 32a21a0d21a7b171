package scanner

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/instafoody/cleaner/pkg/cleaner/types"
)

// Clean deletes the inventory produced by the last scan and returns the
// bytes actually reclaimed. Each entry is re-checked for existence and
// re-measured immediately before deletion: files may have changed since
// the scan, and a directory's size is unknown until now. A single
// failed deletion is skipped; it never aborts the batch. When all
// entries have been processed the inventory and every category total
// are reset, regardless of how many deletions succeeded: Clean consumes
// the inventory once, it does not retry until empty.
func (s *Scanner) Clean() (freed int64) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("clean aborted", "panic", r)
			freed = 0
		}
		s.reset()
	}()

	s.mu.Lock()
	batch := make([]types.JunkEntry, len(s.entries))
	copy(batch, s.entries)
	s.mu.Unlock()

	var deleted, failed int
	for _, e := range batch {
		size, ok := s.deleteEntry(e)
		if !ok {
			failed++
			continue
		}
		freed += size
		deleted++
	}

	s.log.Info("clean complete",
		"freed", types.FormatSize(freed),
		"deleted", deleted,
		"failed", failed)
	return freed
}

// deleteEntry removes one inventory entry and returns its pre-deletion
// size. Entries that vanished since the scan, or cannot be removed, are
// reported as not ok.
func (s *Scanner) deleteEntry(e types.JunkEntry) (int64, bool) {
	info, err := os.Lstat(e.Path)
	if err != nil {
		s.log.Debug("entry gone before clean", "path", e.Path, "error", err)
		return 0, false
	}

	var size int64
	if info.IsDir() {
		size = dirSize(e.Path)
	} else {
		size = info.Size()
	}

	if err := os.RemoveAll(e.Path); err != nil {
		s.log.Debug("delete failed", "path", e.Path, "error", err)
		return 0, false
	}
	return size, true
}

// dirSize returns the recursive size of all regular files under root.
// Unreadable subtrees contribute nothing.
func dirSize(root string) int64 {
	var total int64
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if info, ierr := d.Info(); ierr == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total
}
