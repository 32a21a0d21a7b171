package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/instafoody/cleaner/pkg/cleaner/history"
	"github.com/instafoody/cleaner/pkg/cleaner/logging"
	"github.com/instafoody/cleaner/pkg/cleaner/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past scan and clean runs",
	RunE:  runHistoryCmd,
}

func init() {
	historyCmd.Flags().Int("prune", 0, "delete records older than N days, then list")
	rootCmd.AddCommand(historyCmd)
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logging.Close()

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close()

	if days, _ := cmd.Flags().GetInt("prune"); days > 0 {
		removed, err := store.Prune(time.Duration(days) * 24 * time.Hour)
		if err != nil {
			return fmt.Errorf("pruning history: %w", err)
		}
		fmt.Printf("pruned %d records\n", removed)
	}

	records, err := store.List()
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(records)
	}

	if len(records) == 0 {
		fmt.Println("no history")
		return nil
	}

	for _, rec := range records {
		line := fmt.Sprintf("%s  %-5s  total %s  (%d entries)",
			rec.Time.Local().Format("2006-01-02 15:04"),
			rec.Op,
			types.FormatSize(rec.TotalBytes),
			rec.EntryCount)
		if rec.Op == history.OpClean {
			line += fmt.Sprintf("  freed %s", types.FormatSize(rec.FreedBytes))
		}
		fmt.Println(line)
	}
	return nil
}
