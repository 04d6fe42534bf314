package cmd

import (
	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/internal/ghclient"
	"github.com/huangsam/devscope/internal/observability"
	"github.com/huangsam/devscope/internal/web"
	"github.com/spf13/cobra"
)

// serveCmd starts the browser explorer.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browser explorer.",
	Long: `Serve a web page for exploring GitHub profiles, together with a JSON API.

Routes:
  GET /                        search form, with results for ?handle=
  GET /api/profiles/{handle}   lookup result as JSON
  GET /chart/{handle}          language pie chart
  GET /metrics                 Prometheus metrics (unless --metrics=false)
  GET /healthz                 liveness check

The server shuts down gracefully on SIGINT or SIGTERM.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		var metrics *observability.Metrics
		var recorder contract.Recorder
		if cfg.MetricsEnabled {
			metrics = observability.NewMetrics(true)
			recorder = metrics
		}
		client := ghclient.NewFromConfig(cfg, recorder)
		if err := web.NewServer(cfg, client, metrics).Run(rootCtx); err != nil {
			contract.LogFatal("Cannot run web server", err)
		}
	},
}
