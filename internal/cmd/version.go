package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set from main via SetVersion.
var version = "dev"

// SetVersion records the build version for the version command.
func SetVersion(v string) {
	version = v
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the shell-ls version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shell-ls %s\n", version)
	},
}
