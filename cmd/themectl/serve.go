package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/salihkiraz/lumen-theme/app"
	"github.com/salihkiraz/lumen-theme/toolkit/windowsservice"
)

const (
	serviceName        = "lumen-theme"
	serviceDisplayName = "Lumen Theme Service"
	serviceDescription = "Theme registry and view-path admin service."
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the theme admin service",
		Long: `Serve starts the HTTP admin service: theme API, health, version,
Prometheus metrics, and the optional live-reload hub. It shuts down
gracefully on SIGINT/SIGTERM.

On Windows the command detects when it was started by the Service
Control Manager and runs as a service.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if !windowsservice.Interactive() {
		return windowsservice.Run(serviceName, serviceDisplayName, serviceDescription)
	}
	return app.Run(ctx)
}
