package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tessro/play-notion/internal/tracks"
)

var listNumber int

var listCmd = &cobra.Command{
	Use:   "list <tag>...",
	Short: "List the tracks matching tags without playing them",
	Long: `List the records carrying every given tag, most recent first.
Records whose URL is not playable are marked with ○.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVarP(&listNumber, "number", "n", 30, "maximum number of records to show")
	rootCmd.AddCommand(listCmd)
}

type listEntry struct {
	ID       string    `json:"id"`
	Created  time.Time `json:"created"`
	Tags     []string  `json:"tags"`
	URL      string    `json:"url"`
	Playable bool      `json:"playable"`
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	p, err := newPipeline()
	if err != nil {
		return err
	}

	records, err := p.Query(ctx, args)
	if err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}

	limit := listNumber
	if !cmd.Flags().Changed("number") {
		limit = cfg.Defaults.Number
	}

	entries := make([]listEntry, 0, len(records))
	for _, r := range records {
		if len(entries) >= limit {
			break
		}
		e := listEntry{ID: r.ID, Created: r.CreatedTime, Tags: r.Tags}
		if r.URL != nil {
			e.URL = *r.URL
			e.Playable = tracks.IsPlayable(e.URL, cfg.Player.Hosts)
		}
		entries = append(entries, e)
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return json.NewEncoder(out).Encode(entries)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "No matching tracks")
		return nil
	}

	table := NewTableWriter(out, "", "ADDED", "TAGS", "URL")
	for _, e := range entries {
		added := "-"
		if !e.Created.IsZero() {
			added = humanize.Time(e.Created)
		}
		url := e.URL
		if url == "" {
			url = "(none)"
		}
		table.Row(StatusIcon(e.Playable), added, TruncateString(strings.Join(e.Tags, ", "), 40), url)
	}
	table.Flush()
	return nil
}
