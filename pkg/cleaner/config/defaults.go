// Package config provides configuration management for the cleaner.
package config

// Default configuration values.
const (
	// DefaultDownloadMaxAgeDays is how old a download must be before
	// it counts as junk.
	DefaultDownloadMaxAgeDays = 30

	// DefaultWorkers is the default walk parallelism.
	DefaultWorkers = 4

	// DefaultRetentionDays is how long history records are kept.
	DefaultRetentionDays = 90

	// appName is the directory name used under the XDG base dirs.
	appName = "cleaner"
)
