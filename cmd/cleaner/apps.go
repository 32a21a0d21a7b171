package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/instafoody/cleaner/pkg/cleaner/appcache"
	"github.com/instafoody/cleaner/pkg/cleaner/display"
	"github.com/instafoody/cleaner/pkg/cleaner/logging"
	"github.com/instafoody/cleaner/pkg/cleaner/scanner"
	"github.com/instafoody/cleaner/pkg/cleaner/types"
)

// appEstimate is a cosmetic per-app figure for the residual app
// folders the scanner deliberately leaves alone. The sizes are
// deterministic stand-ins, not measured junk.
type appEstimate struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	DataBytes int64  `json:"data_bytes"`
}

// appListTTL bounds how long a derived app list is reused before the
// residual folders are re-read.
const appListTTL = 5 * time.Minute

// appList caches the derived list; the watcher below invalidates it
// when a residual folder changes.
var appList = appcache.New[[]appEstimate](appListTTL)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "Show per-app display estimates for residual folders",
	Long: `Apps lists the leftover app-data folders the scanner refuses to
touch (deleting them needs privileges this process does not have) with
display-only size estimates. The figures are deterministic stand-ins
for UIs, never measured junk, and never enter a scan inventory.`,
	RunE: runAppsCmd,
}

func init() {
	rootCmd.AddCommand(appsCmd)
}

func runAppsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logging.Close()

	roots := scanner.DefaultRoots(cfg.BasePath).Residual

	watcher, err := appcache.Watch(roots, appList.Invalidate)
	if err == nil {
		defer watcher.Close()
	}

	apps, ok := appList.Get()
	if !ok {
		apps = collectApps(roots)
		appList.Put(apps)
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(apps)
	}

	if len(apps) == 0 {
		fmt.Println("no residual app folders found")
		return nil
	}
	for _, app := range apps {
		fmt.Printf("%-40s  ~%s app, ~%s data (estimate)\n",
			app.Name, types.FormatSize(app.SizeBytes), types.FormatSize(app.DataBytes))
	}
	return nil
}

// collectApps lists the residual folders and attaches display
// estimates keyed by folder name.
func collectApps(roots []string) []appEstimate {
	var apps []appEstimate
	for _, root := range roots {
		dirents, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, d := range dirents {
			if !d.IsDir() {
				continue
			}
			name := d.Name()
			apps = append(apps, appEstimate{
				Name:      name,
				SizeBytes: display.AppSize(name),
				DataBytes: display.DataUsage(name),
			})
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })
	return apps
}
