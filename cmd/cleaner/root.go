package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/instafoody/cleaner/pkg/cleaner/config"
	"github.com/instafoody/cleaner/pkg/cleaner/logging"
	"github.com/instafoody/cleaner/pkg/cleaner/scanner"
)

var rootCmd = &cobra.Command{
	Use:   "cleaner",
	Short: "Estimate and reclaim wasted storage and memory",
	Long: `Cleaner scans well-known junk locations (thumbnails, temp files,
stale downloads, messaging-app media), classifies what it finds, and
can delete the resulting inventory. It also estimates memory and
storage figures from coarse system counters.

Examples:
  cleaner scan               # Scan junk locations and report totals
  cleaner clean              # Scan, then delete the inventory
  cleaner mem                # Show memory figures and RAM tier
  cleaner mem optimize       # Best-effort memory reclaim
  cleaner storage            # Show disk usage and marketed tier
  cleaner history            # Show past scan/clean runs`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("base", "b", "", "base directory for junk locations (default: home)")
	rootCmd.PersistentFlags().IntP("workers", "w", 0, "walk parallelism (0=config default)")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "output JSON format")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	_ = viper.BindPFlag("base_path", rootCmd.PersistentFlags().Lookup("base"))
	_ = viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration and initializes logging. Every subcommand
// calls it first.
func setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if base, _ := cmd.Flags().GetString("base"); base != "" {
		cfg.BasePath = base
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		cfg.Workers = workers
	}

	level := cfg.Logging.Level
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}

	logPath := cfg.Logging.Path
	if logPath == "" {
		if err := config.EnsureStateDir(); err == nil {
			logPath = config.DefaultLogPath()
		}
	}

	err = logging.Init(logging.Config{
		Level:      level,
		Path:       logPath,
		Components: cfg.Logging.Components,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}

	return cfg, nil
}

// buildScanner constructs a scanner from configuration: the default
// junk roots under the base path plus this process's own directories.
func buildScanner(cfg *config.Config) *scanner.Scanner {
	roots := scanner.DefaultRoots(cfg.BasePath)
	roots.Own = append(roots.Own,
		scanner.OwnDir{Path: config.CacheDir(), Role: scanner.RoleCache},
		scanner.OwnDir{Path: os.TempDir(), Role: scanner.RoleTemp},
	)

	return scanner.New(scanner.Options{
		Roots:          roots,
		DownloadMaxAge: time.Duration(cfg.DownloadMaxAgeDays) * 24 * time.Hour,
		Workers:        cfg.Workers,
	})
}
