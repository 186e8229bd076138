package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/session"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing the interview session and document export endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfig)
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	gateway, err := llm.NewGeminiGateway(context.Background(), cfg.APIKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to create completion gateway: %w", err)
	}
	defer gateway.Close()

	sessions := session.NewManager(session.Config{
		Gateway:      gateway,
		SystemPrompt: prompts.MustGet("system"),
		FinalPrompt:  prompts.MustGet("final_resume"),
		ReadyMarkers: cfg.ReadyMarkers,
		TTL:          cfg.SessionTTL,
	})

	srv := server.New(server.Config{Port: cfg.Port, Sessions: sessions})
	return srv.Start()
}
