package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/22331a1268-rgb/read-sum-magic/internal/extraction"
	"github.com/22331a1268-rgb/read-sum-magic/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var provider string
	var model string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the extraction web server",
		Long: `Starts the score sheet extraction server on the specified port.

The server exposes the JSON extraction endpoint used by the web UI along
with multipart upload and stored-result APIs.`,
		Example: `  # Start server on default port 8888
  read-sum-magic serve

  # Start server on custom port with a specific provider
  read-sum-magic serve --port 3000 --provider gemini`,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := extraction.NewService(provider, model)
			if err != nil {
				return err
			}
			handler := handlers.New(service)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/extract", handler.HandleExtract)
			mux.HandleFunc("/api/upload", handler.HandleUpload)
			mux.HandleFunc("/api/results", handler.HandleResults)
			mux.HandleFunc("/api/results/", handler.HandleResultDetail)
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Extraction server available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&provider, "provider", "", "Vision provider: openai, ollama, or gemini (default from EXTRACTION_PROVIDER)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (default per provider)")

	return cmd
}
