package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tags defined in the database",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	p, err := newPipeline()
	if err != nil {
		return err
	}

	tags, err := p.Tags(ctx)
	if err != nil {
		return fmt.Errorf("failed to get tags: %w", err)
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		if tags == nil {
			tags = []string{}
		}
		return json.NewEncoder(out).Encode(tags)
	}

	if len(tags) == 0 {
		_, _ = fmt.Fprintln(out, "No tags defined")
		return nil
	}
	for _, t := range tags {
		_, _ = fmt.Fprintln(out, t)
	}
	return nil
}
