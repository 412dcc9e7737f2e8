package main

import (
	"github.com/aretw0/lineator/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves POST /lineate, POST /validate, GET /results/{key}, GET /healthz and
GET /metrics. Results are cached in memory, or in Redis when redis.addr is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			app.Config.HTTP.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("redis") {
			app.Config.Redis.Addr, _ = cmd.Flags().GetString("redis")
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return app.RunServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the shared result cache")
}
