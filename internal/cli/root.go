package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tessro/play-notion/internal/config"
	"github.com/tessro/play-notion/internal/console"
	perrors "github.com/tessro/play-notion/internal/errors"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "play-notion <tag>...",
	Short: "Play music from a tagged Notion database",
	Long: `Plays music from a tagged Notion database via yt-dlp and mpv.

Tracks carrying every given tag are retrieved most recent first, unless
--random is set. Tracks tagged "set" are skipped unless "set" is one of
the tags. Requires yt-dlp and mpv to be installed.

Examples:
  play-notion chill              # Play the 30 newest "chill" tracks
  play-notion -n 10 -r jazz live # 10 random tracks tagged both "jazz" and "live"
  play-notion -w set             # Include DJ sets, with a video window
  play-notion --dry-run chill    # Print the mpv command without running it`,
	Args: cobra.MinimumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE:          runPlay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Positional arguments are tags; keep "completion" available as one.
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.play-notionrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	addPlayFlags(rootCmd)
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("%w: failed to load config: %w", perrors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger().Errorf("%s", perrors.Format(err))
		os.Exit(perrors.ExitCode(err))
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}

// logger returns the progress logger for the loaded configuration.
func logger() *console.Logger {
	level, color := console.LevelInfo, "auto"
	if cfg != nil {
		level = console.ParseLevel(cfg.Log.Level)
		color = cfg.Log.Color
	}
	if verbose {
		level = console.LevelDebug
	}
	return console.New(os.Stderr, console.WithLevel(level), console.WithColor(color))
}
