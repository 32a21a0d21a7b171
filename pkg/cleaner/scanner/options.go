// Package scanner walks a fixed set of junk-prone directories,
// classifies matched entries, and maintains the resulting inventory.
// It is the only owner of the inventory: scanning rebuilds it from
// scratch and cleaning consumes it exactly once.
package scanner

import (
	"path/filepath"
	"time"
)

// Default scan parameters.
const (
	// DefaultDownloadMaxAge is how old a download must be before it
	// counts as reclaimable. Younger files are retained.
	DefaultDownloadMaxAge = 30 * 24 * time.Hour

	// DefaultWorkers is the walk parallelism when none is configured.
	DefaultWorkers = 4
)

// DirRole declares what kind of data a directory holds, so files under
// it inherit a classification hint.
type DirRole int

// Directory roles.
const (
	RoleNone DirRole = iota
	RoleTemp
	RoleCache
)

// OwnDir is a directory owned by this process (temp or support data)
// that gets the full extension/size-rule scan.
type OwnDir struct {
	// Path is the absolute directory path.
	Path string

	// Role is the classification hint for files under Path.
	Role DirRole
}

// Roots is the fixed set of well-known junk locations a scan visits,
// in the order the fields are declared.
type Roots struct {
	// Thumbnails are scanned recursively; every regular file is
	// inventoried as cache, unconditionally.
	Thumbnails []string

	// Temp roots are scanned recursively; only files whose name looks
	// temporary are inventoried.
	Temp []string

	// DownloadCandidates are tried in order; the first existing one is
	// listed non-recursively and files older than the download age
	// limit are inventoried as big.
	DownloadCandidates []string

	// SocialMedia roots (messaging-app media folders) are scanned
	// recursively; every file is inventoried as big, unconditionally.
	SocialMedia []string

	// Residual holds leftover app-data locations. They are never
	// scanned: without elevated privileges there is no safe way to
	// tell an uninstalled app's data from an active one's, so this
	// category is deferred to the OS settings UI.
	Residual []string

	// Own are directories owned by this process, scanned with the
	// junk-extension and size-threshold rules plus role hints. Empty
	// subdirectories found here are inventoried for removal.
	Own []OwnDir
}

// DefaultRoots returns the standard junk locations under the given base
// directory (typically the user's home or external storage root).
func DefaultRoots(base string) Roots {
	return Roots{
		Thumbnails: []string{
			filepath.Join(base, "DCIM", ".thumbnails"),
			filepath.Join(base, "Pictures", ".thumbnails"),
		},
		Temp: []string{
			filepath.Join(base, "tmp"),
			filepath.Join(base, "temp"),
		},
		DownloadCandidates: []string{
			filepath.Join(base, "Download"),
			filepath.Join(base, "Downloads"),
		},
		SocialMedia: []string{
			filepath.Join(base, "WhatsApp", "Media", "WhatsApp Images"),
			filepath.Join(base, "WhatsApp", "Media", "WhatsApp Video"),
			filepath.Join(base, "WhatsApp", "Media", "WhatsApp Audio"),
			filepath.Join(base, "WhatsApp", "Media", "WhatsApp Documents"),
			filepath.Join(base, "Telegram", "Telegram Images"),
			filepath.Join(base, "Telegram", "Telegram Video"),
		},
		Residual: []string{
			filepath.Join(base, "Android", "data"),
		},
		Own: nil,
	}
}

// Options configures the scanner behavior.
type Options struct {
	// Roots are the locations to scan.
	Roots Roots

	// DownloadMaxAge is the minimum age of a download before it is
	// considered junk.
	DownloadMaxAge time.Duration

	// Workers bounds the walk parallelism within one root.
	Workers int
}

// Validate applies defaults for zero or invalid values.
func (o *Options) Validate() error {
	if o.DownloadMaxAge <= 0 {
		o.DownloadMaxAge = DefaultDownloadMaxAge
	}
	if o.Workers < 1 {
		o.Workers = DefaultWorkers
	}
	return nil
}
