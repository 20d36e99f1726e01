package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type questionStats interface {
	LastLoaded() int
}

type Server struct {
	logger       *slog.Logger
	assetsDir    string
	assetsPrefix string
	stats        questionStats
}

func New(logger *slog.Logger, assetsDir, assetsPrefix string, stats questionStats) *Server {
	if !strings.HasSuffix(assetsPrefix, "/") {
		assetsPrefix += "/"
	}

	return &Server{
		logger:       logger.With("component", "rest"),
		assetsDir:    assetsDir,
		assetsPrefix: assetsPrefix,
		stats:        stats,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("GET /questions/stats", that.statsHandler)
	mux.Handle("GET "+that.assetsPrefix, http.StripPrefix(that.assetsPrefix, http.FileServer(http.Dir(that.assetsDir))))

	return mux
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
