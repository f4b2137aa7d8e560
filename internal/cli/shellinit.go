package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modeterm/modeterm/internal/shell"
)

func init() {
	rootCmd.AddCommand(shellInitCmd)
}

var shellInitCmd = &cobra.Command{
	Use:   "shell-init",
	Short: "Print the shell wrapper that applies directory changes",
	Long: "shell-init emits a wrapper function that runs modeterm, follows\n" +
		"the directory marker written by the project switcher, and sources\n" +
		"the managed alias file. Add to your shell rc:\n\n" +
		"  eval \"$(modeterm shell-init)\"",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), shell.InitScript(cfg.CDMarker(), cfg.AliasFile()))
		return nil
	},
}
