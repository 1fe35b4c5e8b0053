package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	otelapi "go.opentelemetry.io/otel"

	"timetrack-mcp/config"
	"timetrack-mcp/mcpserver"
	trackotel "timetrack-mcp/otel"
	"timetrack-mcp/trackapi"
)

// NewServeCmd creates the "serve" subcommand.
func NewServeCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the TimeTrack tools over MCP stdio",
		Long: "Speaks the Model Context Protocol on stdin/stdout and maps every tool " +
			"invocation to one TimeTrack API call. All diagnostics go to stderr.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, version)
		},
	}

	cmd.Flags().String("config", "", "Path to timetrack-mcp.yaml")
	cmd.Flags().String("otlp-endpoint", "", "OTLP/HTTP endpoint for trace export (disabled when empty)")

	return cmd
}

func runServe(cmd *cobra.Command, version string) error {
	configPath, _ := cmd.Flags().GetString("config")
	otlpEndpoint, _ := cmd.Flags().GetString("otlp-endpoint")
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")

	// stdout carries the protocol; everything else goes to stderr.
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return exitError(exitConfig, "%v", err)
	}

	client, err := trackapi.New(trackapi.Config{
		Account:     cfg.Account,
		AppPassword: cfg.AppPassword,
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout,
		Logger:      logger,
	})
	if err != nil {
		return exitError(exitConfig, "%v", err)
	}

	shutdownTracing, err := trackotel.SetupTracing(cmd.Context(), otlpEndpoint, version)
	if err != nil {
		return exitError(exitRuntime, "%v", err)
	}
	defer func() {
		_ = shutdownTracing(context.Background())
	}()

	observer, err := trackotel.NewInvokeObserver(
		otelapi.GetMeterProvider().Meter("timetrack-mcp/tool"),
		otelapi.GetTracerProvider().Tracer("timetrack-mcp/tool"),
	)
	if err != nil {
		return exitError(exitRuntime, "initializing tool observability: %v", err)
	}

	srv := mcpserver.New(mcpserver.Options{
		Client:   client,
		Version:  version,
		Logger:   logger,
		Observer: observer,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving TimeTrack tools over stdio", "account", cfg.Account, "version", version)
	if err := srv.ServeStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return exitError(exitRuntime, "server error: %v", err)
	}
	return nil
}
