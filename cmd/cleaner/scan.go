package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/instafoody/cleaner/pkg/cleaner/config"
	"github.com/instafoody/cleaner/pkg/cleaner/history"
	"github.com/instafoody/cleaner/pkg/cleaner/logging"
	"github.com/instafoody/cleaner/pkg/cleaner/permission"
	"github.com/instafoody/cleaner/pkg/cleaner/types"
)

// grants answers permission checks for the protected junk roots. The
// CLI runs as the invoking user, so access is implicitly granted; a
// host with a real permission system injects its own Provider here.
var grants permission.Provider = permission.Static{Granted: true}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan junk locations and report totals",
	RunE:  runScanCmd,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logging.Close()

	if !ensurePermission() {
		return fmt.Errorf("storage access not granted")
	}

	s := buildScanner(cfg)
	s.Scan(cmd.Context())
	summary := s.Summary()

	recordRun(cfg, history.Record{
		Op:         history.OpScan,
		CacheBytes: summary.CacheBytes,
		TempBytes:  summary.TempBytes,
		BigBytes:   summary.BigBytes,
		TotalBytes: summary.TotalBytes,
		EntryCount: summary.EntryCount,
	})

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(summary)
	}

	printSummary(summary)
	return nil
}

// ensurePermission checks the grant provider, requesting access once
// when it is missing.
func ensurePermission() bool {
	if grants.HasPermission() {
		return true
	}
	return grants.RequestPermission()
}

// printSummary writes a human-readable scan report to stdout.
func printSummary(s types.ScanSummary) {
	fmt.Printf("cache:  %s\n", types.FormatSize(s.CacheBytes))
	fmt.Printf("temp:   %s\n", types.FormatSize(s.TempBytes))
	fmt.Printf("big:    %s\n", types.FormatSize(s.BigBytes))
	fmt.Printf("total:  %s (%d entries, %d skipped, %s)\n",
		types.FormatSize(s.TotalBytes), s.EntryCount, s.Skipped, s.Elapsed.Round(time.Millisecond))
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// recordRun appends a run record to the history store. History is
// best-effort; failures are logged, never surfaced.
func recordRun(cfg *config.Config, rec history.Record) {
	if !cfg.History.Enabled {
		return
	}
	log := logging.Get("history")

	if err := config.EnsureDataDir(); err != nil {
		log.Warn("cannot create data dir", "error", err)
		return
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		log.Warn("cannot open history store", "error", err)
		return
	}
	defer store.Close()

	if _, err := store.Append(rec); err != nil {
		log.Warn("cannot record run", "error", err)
	}
	if cfg.History.RetentionDays > 0 {
		maxAge := time.Duration(cfg.History.RetentionDays) * 24 * time.Hour
		if _, err := store.Prune(maxAge); err != nil {
			log.Warn("cannot prune history", "error", err)
		}
	}
}
