// Package cli defines the command-line surface. The root command runs
// the interactive menu; subcommands cover the scripting entry points.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modeterm/modeterm/internal/app"
	"github.com/modeterm/modeterm/internal/config"
)

var (
	flagConfig      string
	flagProvider    string
	flagModel       string
	flagVerbose     bool
	flagNoAssistant bool
	flagWidth       int
	flagHeight      int
)

// exitCode carries the interactive session's exit status out of cobra;
// the directory-change path exits non-zero on purpose.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   "modeterm",
	Short: "modeterm is an interactive terminal control center",
	Long: "modeterm runs a keyboard-driven menu over projects, dev tools,\n" +
		"aliases, and system information, with an assistant chat one Tab\n" +
		"away. Install the shell wrapper with: eval \"$(modeterm shell-init)\"",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		code, err := app.Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		exitCode = code
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.modeterm/config.yaml)")
	rootCmd.Flags().StringVar(&flagProvider, "provider", "", "assistant provider: ollama, openai, anthropic, off")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "assistant model name")
	rootCmd.Flags().BoolVar(&flagNoAssistant, "no-assistant", false, "disable the assistant chat")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().IntVar(&flagWidth, "width", 0, "fixed frame width (default: terminal width)")
	rootCmd.Flags().IntVar(&flagHeight, "height", 0, "fixed frame height (default: terminal height)")
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return exitCode
}

// loadConfig resolves file, environment, and flags, in that order of
// increasing precedence.
func loadConfig() (config.Config, error) {
	path := flagConfig
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	home, _ := os.UserHomeDir()
	cfg, err := config.LoadArgs(path, os.Environ(), home)
	if err != nil {
		return config.Config{}, err
	}

	if flagProvider != "" {
		cfg.Assistant.Provider = flagProvider
	}
	if flagNoAssistant {
		cfg.Assistant.Provider = "off"
	}
	if flagModel != "" {
		cfg.Assistant.Model = flagModel
	}
	if flagVerbose {
		cfg.Logging.Level = "debug"
	}
	if flagWidth > 0 {
		cfg.UI.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.UI.Height = flagHeight
	}

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
