package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modeterm/modeterm/internal/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the modeterm version",
	Run: func(cmd *cobra.Command, args []string) {
		// keep output simple for scripting
		fmt.Fprintln(cmd.OutOrStdout(), version.AppVersion)
	},
}
