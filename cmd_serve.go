package main

import (
	"edusync/internal/web"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the study form in the browser",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	server, err := web.NewServer(app.config.ServerConfig, app.processor, app.checkpoints, app.config.AgentConfig.Model,
		web.WithTools(app.tools...),
		web.WithHealthCheck(app.healthCheck),
	)
	if err != nil {
		return err
	}
	return server.ListenAndServe(ctx)
}
