package main

import (
	"github.com/aretw0/lineator/internal/cli"
	"github.com/spf13/cobra"
)

var lineateCmd = &cobra.Command{
	Use:   "lineate [file]",
	Short: "Flatten a K-tape machine description",
	Long: `Reads a K-tape machine description (from file or stdin) and prints the
flattened single-tape machine. Use --format yaml|json for a structured report
of the frontiers instead, or --output to write the machine to a file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("format") {
			app.Config.Format, _ = cmd.Flags().GetString("format")
		}
		output, _ := cmd.Flags().GetString("output")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return app.RunLineate(ctx, inputArg(args), output)
	},
}

func init() {
	rootCmd.AddCommand(lineateCmd)
	lineateCmd.Flags().StringP("output", "o", "", "Write the flattened machine to this file")
	lineateCmd.Flags().StringP("format", "f", "text", "Output format (text, yaml, json)")
}
