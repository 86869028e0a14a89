package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"centrum/internal/compose"
	"centrum/internal/config"
	"centrum/internal/content"
	"centrum/internal/logging"
	"centrum/internal/meta"
	"centrum/internal/render"
	"centrum/internal/server"
)

var (
	servePort int
	serveHost string
	serveDev  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the rendering server",
	Long: `Start the HTTP server that renders pages server-side. Static asset
prefixes are served directly from the public directory; every other GET is
classified and either rendered with injected metadata or passed through to
the client application.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (overrides config)")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "Reload the template on change")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if serveDev {
		cfg.Render.Dev = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})

	table, err := meta.LoadTable(cfg.Render.MetaTablePath)
	if err != nil {
		return err
	}
	if err := table.Validate(); err != nil {
		return err
	}

	source, closeSource, err := templateSource(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	fetcher := content.NewClient(cfg.Backend, logger)
	synth := meta.NewSynthesizer(cfg.Site, table)
	dispatcher := render.NewDispatcher(fetcher, synth, source, render.NewAppRenderer(), cfg.Render.PublicDir, logger)
	srv := server.NewServer(cfg.Addr(), dispatcher, cfg.Render.PublicDir, logger)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		fmt.Printf("centrum listening on http://%s\n", cfg.Addr())
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}
	case sig := <-shutdown:
		logger.Info("Received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}

		logger.Info("Server stopped gracefully", nil)
	}

	return nil
}

// templateSource picks the static or watched template source per config
func templateSource(cfg *config.Config, logger *logging.Logger) (compose.Source, func(), error) {
	if cfg.Render.Dev {
		watched, err := compose.NewWatchedSource(cfg.Render.TemplatePath, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Dev mode: template reloads on change", map[string]interface{}{
			"path": cfg.Render.TemplatePath,
		})
		return watched, func() { _ = watched.Close() }, nil
	}

	tpl, err := compose.Load(cfg.Render.TemplatePath)
	if err != nil {
		return nil, nil, err
	}
	return compose.NewStaticSource(tpl), func() {}, nil
}
