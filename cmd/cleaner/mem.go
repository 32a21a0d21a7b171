package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/instafoody/cleaner/pkg/cleaner/config"
	"github.com/instafoody/cleaner/pkg/cleaner/logging"
	"github.com/instafoody/cleaner/pkg/cleaner/meminfo"
)

var memCmd = &cobra.Command{
	Use:   "mem",
	Short: "Show memory figures and the physical RAM tier",
	RunE:  runMemCmd,
}

var memOptimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Best-effort cooperative memory reclaim",
	Long: `Optimize asks the kernel to drop clean caches (usually refused
without privilege), releases this process's transient allocations, and
reports the freed amount. When no gain is observable the pre-optimize
freeable estimate is reported instead.`,
	RunE: runMemOptimizeCmd,
}

func init() {
	memCmd.AddCommand(memOptimizeCmd)
	rootCmd.AddCommand(memCmd)
}

// memEstimator builds the estimator from configuration.
func memEstimator(cfg *config.Config) *meminfo.Estimator {
	return meminfo.New(meminfo.Config{
		Source:     cfg.Memory.Source,
		DropCaches: cfg.Memory.DropCaches,
	})
}

func runMemCmd(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logging.Close()

	snap := memEstimator(cfg).Read()

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(snap)
	}

	fmt.Printf("total:     %d MB (tier %d MB)\n", snap.TotalMB, snap.PhysicalTierMB)
	fmt.Printf("available: %d MB\n", snap.AvailableMB)
	fmt.Printf("used:      %d MB\n", snap.UsedMB)
	fmt.Printf("freeable:  %d MB\n", snap.FreeableMB)
	if snap.SwapMB > 0 {
		fmt.Printf("swap:      %d MB\n", snap.SwapMB)
	}
	return nil
}

func runMemOptimizeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logging.Close()

	freed := memEstimator(cfg).Optimize(cmd.Context())
	fmt.Printf("freed: %d MB\n", freed)
	return nil
}
