package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/tessro/play-notion/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing play-notion configuration.`,
}

// skipConfigLoad replaces the root hook for commands that work on the file
// itself, which may be missing or invalid.
func skipConfigLoad(cmd *cobra.Command, args []string) error { return nil }

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values. The token is masked.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	PersistentPreRunE: skipConfigLoad,
	RunE:              runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:               "edit",
	Short:             "Edit configuration file",
	Long:              `Open the configuration file in $EDITOR or $VISUAL.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipConfigLoad,
	RunE:              runConfigEdit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Keys use the form section.field. List values (player.hosts,
player.extra_args) are comma-separated. The file is only written if the
result is a valid configuration.

Examples:
  play-notion config set defaults.number 20
  play-notion config set notion.database_id 0f1b2c3d4e5f6789abcdef0123456789
  play-notion config set player.ytdlp_path /opt/homebrew/bin/yt-dlp
  play-notion config set player.hosts youtube,bandcamp`,
	Args:              cobra.ExactArgs(2),
	PersistentPreRunE: skipConfigLoad,
	RunE:              runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// maskToken hides all but the first characters of a secret.
func maskToken(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "********"
	}
	return s[:7] + "********"
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	shown := *cfg
	shown.Notion.Token = maskToken(cfg.Notion.Token)

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return json.NewEncoder(out).Encode(shown)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(out)
	encoder.Indent = "  "
	return encoder.Encode(shown)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(configPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Write header comment
	_, _ = fmt.Fprintln(f, "# play-notion configuration")
	_, _ = fmt.Fprintln(f, "")

	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(config.Default()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		_ = json.NewEncoder(out).Encode(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	} else {
		_, _ = fmt.Fprintf(out, "Created config file: %s\n", configPath)
		_, _ = fmt.Fprintln(out, "\nNext steps:")
		_, _ = fmt.Fprintln(out, "  1. Set notion.token (or PLAY_NOTION_TOKEN) to your integration secret")
		_, _ = fmt.Fprintln(out, "  2. Set notion.database_id (or PLAY_NOTION_DATABASE_ID) and share the database with the integration")
		_, _ = fmt.Fprintln(out, "  3. Run 'play-notion tags' to check the connection")
	}

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.FindConfigFile()
	}
	out := cmd.OutOrStdout()
	if path == "" {
		_, _ = fmt.Fprintf(out, "%s (not created)\n", config.DefaultPath())
		return nil
	}
	_, _ = fmt.Fprintln(out, path)
	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if path := config.FindConfigFile(); path != "" {
		return path
	}
	return config.DefaultPath()
}

func requireConfigFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config file not found at %s. Run 'play-notion config init' first", path)
	}
	return nil
}

// findEditor returns the editor command line from $EDITOR or $VISUAL,
// falling back to the first common editor on PATH.
func findEditor() []string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}
	for _, e := range []string{"nano", "vim", "vi", "notepad"} {
		if _, err := exec.LookPath(e); err == nil {
			return []string{e}
		}
	}
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()
	if err := requireConfigFile(configPath); err != nil {
		return err
	}

	editor := findEditor()
	if editor == nil {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.CommandContext(cmd.Context(), editor[0], append(editor[1:], configPath)...)
	editorCmd.Stdin = cmd.InOrStdin()
	editorCmd.Stdout = cmd.OutOrStdout()
	editorCmd.Stderr = cmd.ErrOrStderr()
	return editorCmd.Run()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	configPath := getConfigPath()
	if err := requireConfigFile(configPath); err != nil {
		return err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	rawConfig := map[string]interface{}{}
	if _, err := toml.Decode(string(data), &rawConfig); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Set(rawConfig, key, value); err != nil {
		return err
	}

	var buf bytes.Buffer
	_, _ = fmt.Fprintln(&buf, "# play-notion configuration")
	_, _ = fmt.Fprintln(&buf, "")
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = "  "
	if err := encoder.Encode(rawConfig); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	updated, err := config.Parse(buf.String())
	if err != nil {
		return err
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	shown := value
	if key == "notion.token" {
		shown = maskToken(value)
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return json.NewEncoder(out).Encode(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  shown,
		})
	}
	_, _ = fmt.Fprintf(out, "Set %s = %s\n", key, shown)
	return nil
}
