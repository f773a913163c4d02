package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/tessro/play-notion/internal/pipeline"
)

var (
	playNumber int
	playRandom bool
	playWindow bool
	playDryRun bool
	playCopy   bool
)

// addPlayFlags registers the selection and playback flags on cmd.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&playNumber, "number", "n", 30, "number of tracks to retrieve and play")
	cmd.Flags().BoolVarP(&playRandom, "random", "r", false, "play in random order instead of most recent first")
	cmd.Flags().BoolVarP(&playWindow, "window", "w", false, "open a video window instead of playing audio only")
	cmd.Flags().BoolVar(&playDryRun, "dry-run", false, "print the player command without running it")
	cmd.Flags().BoolVar(&playCopy, "copy", false, "copy the player command to the clipboard")
}

// playRequest builds a request from the flags, falling back to the
// configured defaults for flags that were not given.
func playRequest(cmd *cobra.Command, tags []string) pipeline.Request {
	req := pipeline.Request{
		Tags:   tags,
		Limit:  playNumber,
		Random: playRandom,
		Window: playWindow,
		DryRun: playDryRun,
	}
	if !cmd.Flags().Changed("number") {
		req.Limit = cfg.Defaults.Number
	}
	if !cmd.Flags().Changed("random") {
		req.Random = cfg.Defaults.Random
	}
	if !cmd.Flags().Changed("window") {
		req.Window = cfg.Defaults.Window
	}
	return req
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func newPipeline() (*pipeline.Pipeline, error) {
	return pipeline.FromConfig(cfg, pipeline.WithLogger(logger()))
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	p, err := newPipeline()
	if err != nil {
		return err
	}
	return play(ctx, cmd, p, playRequest(cmd, args))
}

func play(ctx context.Context, cmd *cobra.Command, p *pipeline.Pipeline, req pipeline.Request) error {
	res, err := p.Run(ctx, req)
	if err != nil {
		return err
	}

	if playCopy {
		if err := clipboard.WriteAll(res.Command.String()); err != nil {
			logger().Warnf("could not copy command to clipboard: %v", err)
		} else {
			logger().Infof("Copied player command to clipboard.")
		}
	}

	if req.DryRun {
		outputDryRun(cmd.OutOrStdout(), res)
	}
	return nil
}

func outputDryRun(out io.Writer, res *pipeline.Result) {
	if JSONOutput() {
		_ = json.NewEncoder(out).Encode(map[string]interface{}{
			"gathered": res.Gathered,
			"urls":     res.URLs,
			"command":  res.Command.String(),
			"argv":     res.Command.Tokens(),
		})
		return
	}
	_, _ = fmt.Fprintln(out, res.Command.String())
}
