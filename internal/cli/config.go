package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/gnosia/internal/model"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the gnosia configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Show prints the configuration gnosia would run with: built-in defaults,
overridden by the config file, overridden by GNOSIA_* environment
variables. API keys are never read from or written to config files.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file to ~/.gnosia/config.yaml",
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	fmt.Print(string(data))
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Precedence: flags > GNOSIA_* env > config file > defaults")
	fmt.Fprintln(os.Stderr, "API keys: OPENAI_API_KEY, ANTHROPIC_API_KEY, OLLAMA_BASE_URL")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("find home directory: %w", err)
	}

	dir := filepath.Join(home, ".gnosia")
	path := filepath.Join(dir, "config.yaml")

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	header := "# gnosia configuration. Every key can also be set via GNOSIA_* environment\n" +
		"# variables (GNOSIA_EMBEDDING_PROVIDER, GNOSIA_CACHE_DIR, ...). API keys are\n" +
		"# read from OPENAI_API_KEY / ANTHROPIC_API_KEY, never from this file.\n\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Created %s\n", path)
	return nil
}
