package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// TestCleanDeletesInventory verifies Clean removes exactly the scanned
// entries and reports the reclaimed bytes.
func TestCleanDeletesInventory(t *testing.T) {
	base := t.TempDir()
	thumbs := filepath.Join(base, "thumbs")
	a := writeFile(t, thumbs, "a.jpg", 1000)
	b := writeFile(t, thumbs, "b.jpg", 2000)
	keepDir := filepath.Join(base, "keep")
	kept := writeFile(t, keepDir, "precious.txt", 500)

	s := newTestScanner(t, Roots{Thumbnails: []string{thumbs}})
	s.Scan(context.Background())

	freed := s.Clean()

	if freed != 3000 {
		t.Errorf("freed = %d, want 3000", freed)
	}
	for _, path := range []string{a, b} {
		if _, err := os.Lstat(path); !os.IsNotExist(err) {
			t.Errorf("%s still exists after clean", path)
		}
	}
	if _, err := os.Lstat(kept); err != nil {
		t.Errorf("file outside the inventory was touched: %v", err)
	}
}

// TestCleanResetLaw verifies the inventory and all totals are zero
// after Clean, regardless of deletion outcomes.
func TestCleanResetLaw(t *testing.T) {
	base := t.TempDir()
	thumbs := filepath.Join(base, "thumbs")
	doomed := writeFile(t, thumbs, "a.jpg", 1000)

	s := newTestScanner(t, Roots{Thumbnails: []string{thumbs}})
	s.Scan(context.Background())

	// Entry vanishes between scan and clean.
	if err := os.Remove(doomed); err != nil {
		t.Fatalf("remove: %v", err)
	}

	freed := s.Clean()

	if freed != 0 {
		t.Errorf("freed = %d, want 0 for a vanished entry", freed)
	}
	if s.EntryCount() != 0 {
		t.Errorf("EntryCount = %d, want 0 after clean", s.EntryCount())
	}
	if s.CacheBytes() != 0 || s.TempBytes() != 0 || s.BigBytes() != 0 || s.TotalBytes() != 0 {
		t.Error("category totals not reset after clean")
	}
}

// TestCleanRemeasuresBeforeDelete verifies the reported figure is the
// size immediately before deletion, not the size at scan time.
func TestCleanRemeasuresBeforeDelete(t *testing.T) {
	base := t.TempDir()
	thumbs := filepath.Join(base, "thumbs")
	grown := writeFile(t, thumbs, "a.jpg", 1000)

	s := newTestScanner(t, Roots{Thumbnails: []string{thumbs}})
	s.Scan(context.Background())

	// File grows between scan and clean.
	if err := os.WriteFile(grown, make([]byte, 4000), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	if freed := s.Clean(); freed != 4000 {
		t.Errorf("freed = %d, want 4000 (pre-deletion size)", freed)
	}
}

// TestCleanEmptyDirectories verifies inventoried empty directories are
// removed and directory sizes are recomputed recursively at clean time.
func TestCleanEmptyDirectories(t *testing.T) {
	base := t.TempDir()
	own := filepath.Join(base, "appdata")
	writeFile(t, own, "old.log", 300)
	emptyDir := filepath.Join(own, "empty")
	if err := os.MkdirAll(emptyDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	s := newTestScanner(t, Roots{Own: []OwnDir{{Path: own, Role: RoleNone}}})
	s.Scan(context.Background())

	// Files appear inside the "empty" directory before clean; their
	// size is measured at deletion time.
	writeFile(t, emptyDir, "late.bin", 700)

	freed := s.Clean()

	if freed != 1000 {
		t.Errorf("freed = %d, want 1000 (log + late file under dir)", freed)
	}
	if _, err := os.Lstat(emptyDir); !os.IsNotExist(err) {
		t.Error("inventoried directory still exists after clean")
	}
}

// TestCleanConsumesOnce verifies a second Clean with no scan in
// between frees nothing.
func TestCleanConsumesOnce(t *testing.T) {
	base := t.TempDir()
	thumbs := filepath.Join(base, "thumbs")
	writeFile(t, thumbs, "a.jpg", 1000)

	s := newTestScanner(t, Roots{Thumbnails: []string{thumbs}})
	s.Scan(context.Background())

	if freed := s.Clean(); freed != 1000 {
		t.Fatalf("first clean freed %d, want 1000", freed)
	}
	if freed := s.Clean(); freed != 0 {
		t.Errorf("second clean freed %d, want 0: inventory is consumed once", freed)
	}
}

// TestCleanSkipsFailedDeletes verifies one failed deletion does not
// abort the rest of the batch.
func TestCleanSkipsFailedDeletes(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root; permission bits are not enforced")
	}

	base := t.TempDir()
	thumbs := filepath.Join(base, "thumbs")
	writeFile(t, thumbs, "ok.jpg", 1000)
	lockedParent := filepath.Join(thumbs, "locked")
	writeFile(t, lockedParent, "stuck.jpg", 2000)

	s := newTestScanner(t, Roots{Thumbnails: []string{thumbs}})
	s.Scan(context.Background())

	// Make the parent read-only so the child cannot be deleted.
	if err := os.Chmod(lockedParent, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(lockedParent, 0o755) })

	freed := s.Clean()

	if freed != 1000 {
		t.Errorf("freed = %d, want 1000: deletable entry still processed", freed)
	}
	if s.EntryCount() != 0 {
		t.Error("inventory not reset after partially failed clean")
	}
}
