// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hkrish/concept-engine/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the explanation API over HTTP",
	Long: `Serve starts the HTTP API: POST /recommend answers explanation
requests and GET /health reports liveness. The index connection is opened
once and shared read-only across requests.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	engine, closeIndex, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer closeIndex()

	log.Info().
		Str("addr", cfg.Server.Addr).
		Str("backend", string(cfg.Index.Backend)).
		Msg("starting concept-engine API")

	return server.New(engine, cfg.Server).Run(cfg.Server.Addr)
}
