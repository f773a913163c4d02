package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose tags interactively, then play",
	Long: `Shows a picker with the tags defined in the database. The selected
tags are combined exactly as if they had been given on the command line.`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	addPlayFlags(pickCmd)
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("pick needs an interactive terminal; pass tags as arguments instead")
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	p, err := newPipeline()
	if err != nil {
		return err
	}

	available, err := p.Tags(ctx)
	if err != nil {
		return fmt.Errorf("failed to get tags: %w", err)
	}
	if len(available) == 0 {
		return fmt.Errorf("no tags defined in the database")
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select tags").
				Description("Tracks must carry every selected tag").
				Options(huh.NewOptions(available...)...).
				Value(&selected).
				Validate(func(tags []string) error {
					if len(tags) == 0 {
						return errors.New("select at least one tag")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("selection cancelled: %w", err)
	}

	return play(ctx, cmd, p, playRequest(cmd, selected))
}
