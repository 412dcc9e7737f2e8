package main

import (
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show the frontiers and determined states of a flattening",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunInspect(cmd.Context(), inputArg(args))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
