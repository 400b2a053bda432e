package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/api"
)

var (
	serveAddr      string
	serveStaticDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP JSON API used by the web frontend. When a
frontend build directory is given it is served as a single-page app.

Examples:
  scoop-easy serve                          # Listen on 127.0.0.1:8000
  scoop-easy serve --addr :9000             # Custom address
  scoop-easy serve --static frontend/dist   # Serve the web UI too`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8000", "listen address")
	serveCmd.Flags().StringVar(&serveStaticDir, "static", "", "frontend build directory to serve")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	server := api.NewServer(svc, api.Config{StaticDir: serveStaticDir}, logger)
	return server.Start(serveAddr)
}
