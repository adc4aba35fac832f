package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-ai/internal/config"
	"github.com/jonathan/portfolio-ai/internal/contact"
	"github.com/jonathan/portfolio-ai/internal/server"
	"github.com/jonathan/portfolio-ai/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that answers questions about the profile owner and records contact messages.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	a, err := newApp(cmd.Context(), cfg, appOptions{})
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		ChatPath:    cfg.ChatPath,
		Assistant:   a.service,
		Contacts:    contact.NewSink(cfg.ContactCSVPath),
		RateLimiter: ratelimit.NewEndpointLimiter(a.store, ratelimit.ExampleEndpointConfigs(cfg.ExampleRateLimit, cfg.ExampleRateWindow)),
		Logger:      a.logger,
		Cleanup:     a.Close,
	})
	if err != nil {
		a.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(cmd.Context())
}
