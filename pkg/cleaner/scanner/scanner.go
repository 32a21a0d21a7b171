package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/instafoody/cleaner/pkg/cleaner/classify"
	"github.com/instafoody/cleaner/pkg/cleaner/logging"
	"github.com/instafoody/cleaner/pkg/cleaner/types"
)

// Scanner walks the configured junk roots and aggregates a classified
// inventory. One scan wholly replaces the previous inventory; no entry
// survives between cycles. Scan and Clean assume single-flight
// invocation per instance; callers serialize re-entrant calls.
type Scanner struct {
	opts Options
	log  *logging.Logger

	// mu is the single aggregation point: fastwalk callbacks run
	// concurrently and merge results into the inventory under it.
	mu        sync.Mutex
	entries   []types.JunkEntry
	cacheB    int64
	tempB     int64
	bigB      int64
	totalB    int64
	skipped  int
	scanErrs []types.ScanError
	elapsed  time.Duration
}

// New creates a Scanner with the given options. Options are validated
// and defaults applied.
func New(opts Options) *Scanner {
	_ = opts.Validate()
	return &Scanner{
		opts: opts,
		log:  logging.Get("scanner"),
	}
}

// Scan rebuilds the inventory from scratch and returns the grand total
// in bytes. All internal state is reset first, so two scans with no
// filesystem change in between produce identical totals and counts.
// Scan never fails: path errors are skipped one by one, and anything
// escaping the whole walk is converted into a zero result.
func (s *Scanner) Scan(ctx context.Context) (total int64) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("scan aborted", "panic", r)
			s.reset()
			total = 0
		}
	}()

	start := time.Now()
	s.reset()

	s.scanThumbnails(ctx)
	s.scanTemp(ctx)
	s.scanDownloads()
	s.scanSocialMedia(ctx)
	// Residual app folders are deliberately not scanned; see Roots.
	s.scanOwnDirs(ctx)

	s.mu.Lock()
	s.elapsed = time.Since(start)
	total = s.totalB
	count := len(s.entries)
	skipped := s.skipped
	s.mu.Unlock()

	s.log.Info("scan complete",
		"total", types.FormatSize(total),
		"entries", count,
		"skipped", skipped,
		"elapsed", time.Since(start))
	return total
}

// scanThumbnails inventories every regular file under the thumbnail
// roots as cache, unconditionally.
func (s *Scanner) scanThumbnails(ctx context.Context) {
	for _, root := range s.opts.Roots.Thumbnails {
		s.walk(ctx, root, func(path string, info fs.FileInfo) {
			s.add(types.JunkEntry{
				Path:     path,
				Kind:     types.KindFile,
				Size:     info.Size(),
				Category: types.CategoryCache,
			})
		}, nil)
	}
}

// scanTemp inventories files under the temp roots whose name looks
// temporary; everything else is left in place.
func (s *Scanner) scanTemp(ctx context.Context) {
	for _, root := range s.opts.Roots.Temp {
		s.walk(ctx, root, func(path string, info fs.FileInfo) {
			if !classify.TempName(path) {
				return
			}
			s.add(types.JunkEntry{
				Path:     path,
				Kind:     types.KindFile,
				Size:     info.Size(),
				Category: types.CategoryTemp,
			})
		}, nil)
	}
}

// scanDownloads lists the first existing download candidate,
// non-recursively, and inventories files older than the age limit as
// big. Younger downloads are retained, not junk.
func (s *Scanner) scanDownloads() {
	var root string
	for _, candidate := range s.opts.Roots.DownloadCandidates {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			root = candidate
			break
		}
	}
	if root == "" {
		return
	}

	dirents, err := os.ReadDir(root)
	if err != nil {
		s.skip(root, err)
		return
	}

	cutoff := time.Now().Add(-s.opts.DownloadMaxAge)
	for _, d := range dirents {
		if d.IsDir() || !d.Type().IsRegular() {
			continue
		}
		info, err := d.Info()
		if err != nil {
			s.skip(filepath.Join(root, d.Name()), err)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		s.add(types.JunkEntry{
			Path:     filepath.Join(root, d.Name()),
			Kind:     types.KindFile,
			Size:     info.Size(),
			Category: types.CategoryBig,
		})
	}
}

// scanSocialMedia inventories every file under the messaging-app media
// roots as big. These folders routinely hold gigabytes of re-downloadable
// media and are always considered reclaimable.
func (s *Scanner) scanSocialMedia(ctx context.Context) {
	for _, root := range s.opts.Roots.SocialMedia {
		s.walk(ctx, root, func(path string, info fs.FileInfo) {
			s.add(types.JunkEntry{
				Path:     path,
				Kind:     types.KindFile,
				Size:     info.Size(),
				Category: types.CategoryBig,
			})
		}, nil)
	}
}

// scanOwnDirs walks directories owned by this process, applying the
// junk-extension and size-threshold rules with the directory's role as
// a classification hint. Empty subdirectories are inventoried for
// later removal.
func (s *Scanner) scanOwnDirs(ctx context.Context) {
	for _, dir := range s.opts.Roots.Own {
		cctx := classify.Context{
			TempRoot:  dir.Role == RoleTemp,
			CacheRoot: dir.Role == RoleCache,
		}
		s.walk(ctx, dir.Path, func(path string, info fs.FileInfo) {
			if !classify.Eligible(path, info.Size()) {
				return
			}
			s.add(types.JunkEntry{
				Path:     path,
				Kind:     types.KindFile,
				Size:     info.Size(),
				Category: classify.Classify(path, info.Size(), cctx),
			})
		}, func(path string) {
			if path == dir.Path {
				return
			}
			s.add(types.JunkEntry{
				Path:  path,
				Kind:  types.KindDir,
				Empty: true,
			})
		})
	}
}

// walk runs a bounded-parallel recursive walk rooted at root. onFile is
// called for every regular file; onEmptyDir, when non-nil, for every
// directory found empty. Both may be called from multiple goroutines.
// A root that does not exist is silently skipped; any other per-path
// error is recorded and the walk continues.
func (s *Scanner) walk(ctx context.Context, root string, onFile func(string, fs.FileInfo), onEmptyDir func(string)) {
	if _, err := os.Stat(root); err != nil {
		if !os.IsNotExist(err) {
			s.skip(root, err)
		}
		return
	}

	conf := fastwalk.Config{
		Follow:     false,
		NumWorkers: s.opts.Workers,
	}

	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return fastwalk.SkipDir
		default:
		}

		if err != nil {
			s.skip(path, err)
			return nil
		}

		if d.IsDir() {
			if onEmptyDir != nil {
				if dirents, rerr := os.ReadDir(path); rerr == nil && len(dirents) == 0 {
					onEmptyDir(path)
				}
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, ierr := d.Info()
		if ierr != nil {
			s.skip(path, ierr)
			return nil
		}
		onFile(path, info)
		return nil
	})
	if err != nil {
		s.skip(root, err)
	}
}

// add merges one entry into the inventory. This is the only write path
// for totals, so the category sums always reconcile with the grand
// total. Directory entries carry no bytes.
func (s *Scanner) add(e types.JunkEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, e)
	if e.Kind == types.KindDir {
		return
	}
	switch e.Category {
	case types.CategoryCache:
		s.cacheB += e.Size
	case types.CategoryTemp:
		s.tempB += e.Size
	case types.CategoryBig:
		s.bigB += e.Size
	}
	s.totalB += e.Size
}

// skip records a path the walker could not read and moves on. Partial
// failure never aborts a scan.
func (s *Scanner) skip(path string, err error) {
	s.log.Debug("skipping path", "path", path, "error", err)
	s.mu.Lock()
	s.skipped++
	s.scanErrs = append(s.scanErrs, types.ScanError{Path: path, Error: err.Error()})
	s.mu.Unlock()
}

// reset clears the inventory and all totals.
func (s *Scanner) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.cacheB = 0
	s.tempB = 0
	s.bigB = 0
	s.totalB = 0
	s.skipped = 0
	s.scanErrs = nil
	s.elapsed = 0
}
