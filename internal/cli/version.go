package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Set via ldflags at build time
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if JSONOutput() {
			info := map[string]string{
				"version":        Version,
				"commit":         Commit,
				"build_date":     BuildDate,
				"go_version":     runtime.Version(),
				"notion_version": cfg.Notion.APIVersion,
				"player":         cfg.Player.Binary,
			}
			data, _ := json.MarshalIndent(info, "", "  ")
			_, _ = fmt.Fprintln(out, string(data))
			return
		}

		_, _ = fmt.Fprintf(out, "play-notion %s\n", Version)
		if Verbose() {
			_, _ = fmt.Fprintf(out, "  commit:         %s\n", Commit)
			_, _ = fmt.Fprintf(out, "  built:          %s\n", BuildDate)
			_, _ = fmt.Fprintf(out, "  go version:     %s\n", runtime.Version())
			_, _ = fmt.Fprintf(out, "  notion version: %s\n", cfg.Notion.APIVersion)
			_, _ = fmt.Fprintf(out, "  player:         %s (yt-dlp: %s)\n", cfg.Player.Binary, cfg.Player.YtdlpPath)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
