package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/lineator"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lineator",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lineator version %s\n", strings.TrimSpace(lineator.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
