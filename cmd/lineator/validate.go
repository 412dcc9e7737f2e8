package main

import (
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a machine description without flattening it",
	Long: `Parses the description, reports skipped lines, and checks the alphabet,
the tape arity of every transition and the configured limits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunValidate(cmd.Context(), inputArg(args))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
