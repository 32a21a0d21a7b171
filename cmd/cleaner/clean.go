package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/instafoody/cleaner/pkg/cleaner/history"
	"github.com/instafoody/cleaner/pkg/cleaner/logging"
	"github.com/instafoody/cleaner/pkg/cleaner/types"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Scan junk locations, then delete the inventory",
	Long: `Clean performs a fresh scan and deletes everything the scan
inventoried. Entries that vanished or cannot be deleted are skipped;
the reported figure is the bytes actually reclaimed.`,
	RunE: runCleanCmd,
}

func init() {
	cleanCmd.Flags().BoolP("yes", "y", false, "delete without confirmation")
	rootCmd.AddCommand(cleanCmd)
}

func runCleanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logging.Close()

	if !ensurePermission() {
		return fmt.Errorf("storage access not granted")
	}

	s := buildScanner(cfg)
	total := s.Scan(cmd.Context())
	summary := s.Summary()

	if total == 0 && summary.EntryCount == 0 {
		fmt.Println("nothing to clean")
		return nil
	}

	printSummary(summary)

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		if !confirm(fmt.Sprintf("delete %d entries (%s)?", summary.EntryCount, types.FormatSize(total))) {
			fmt.Println("aborted")
			return nil
		}
	}

	freed := s.Clean()

	recordRun(cfg, history.Record{
		Op:         history.OpClean,
		CacheBytes: summary.CacheBytes,
		TempBytes:  summary.TempBytes,
		BigBytes:   summary.BigBytes,
		TotalBytes: summary.TotalBytes,
		EntryCount: summary.EntryCount,
		FreedBytes: freed,
	})

	fmt.Printf("freed:  %s\n", types.FormatSize(freed))
	return nil
}

// confirm asks the user a yes/no question on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
