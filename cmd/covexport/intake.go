package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/nicktill/covexport/pkg/config"
	"github.com/nicktill/covexport/pkg/ingest"
	"github.com/nicktill/covexport/pkg/storage/memory"
)

func newIntakeCmd() *cobra.Command {
	var (
		addr    string
		apiKeys []string
	)

	cmd := &cobra.Command{
		Use:   "intake",
		Short: "Run a local series intake for testing pipelines",
		Long: `intake serves the same /api/v1/series contract as Datadog and keeps accepted
submissions in memory. Point covexport at it with --datadog-site http://localhost:8126.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", addr, err)
			}
			return serveIntake(cmd.Context(), ln, apiKeys)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultIntakeAddr, "address to listen on")
	cmd.Flags().StringSliceVar(&apiKeys, "api-key", nil, "accepted API key (repeatable, default: any)")
	return cmd
}

// serveIntake serves the intake on ln until ctx is cancelled
func serveIntake(ctx context.Context, ln net.Listener, apiKeys []string) error {
	store := memory.New()
	defer store.Close()

	handler := ingest.NewHandler(store, apiKeys...)
	server := &http.Server{
		Handler:      ingest.NewRouter(handler),
		ReadTimeout:  config.IntakeReadTimeout,
		WriteTimeout: config.IntakeWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🌐 Intake listening on http://%s", ln.Addr())
		log.Println("📡 API endpoints:")
		log.Println("   POST /api/v1/series     - Submit series")
		log.Println("   GET  /api/v1/validate   - Check API key")
		log.Println("   GET  /v1/submissions    - List submissions")
		log.Println("   GET  /v1/series         - Query series")
		log.Println("   GET  /v1/stats          - Storage statistics")
		if len(apiKeys) == 0 {
			log.Println("⚠️  No --api-key given, any non-empty key is accepted")
		}
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("intake failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("🛑 Shutdown signal received...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.IntakeShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Intake shutdown warning: %v", err)
	}
	log.Println("👋 Intake exited cleanly")
	return nil
}
