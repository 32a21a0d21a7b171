package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/instafoody/cleaner/pkg/cleaner/logging"
	"github.com/instafoody/cleaner/pkg/cleaner/storage"
	"github.com/instafoody/cleaner/pkg/cleaner/types"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Show disk usage and the marketed storage tier",
	RunE:  runStorageCmd,
}

func init() {
	rootCmd.AddCommand(storageCmd)
}

func runStorageCmd(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logging.Close()

	snap := storage.New(cfg.StoragePath).Read()

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(snap)
	}

	fmt.Printf("total: %s (tier %d GB)\n", types.FormatSize(snap.TotalBytes), snap.TierGB)
	fmt.Printf("used:  %s\n", types.FormatSize(snap.UsedBytes))
	fmt.Printf("free:  %s\n", types.FormatSize(snap.FreeBytes))
	return nil
}
