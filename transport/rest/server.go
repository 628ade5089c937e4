package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - wires the game endpoints, the push channel and, if the directory
// exists, the static viewer pages.
func NewRouter(handlers *Handlers, pushChannel http.Handler, staticDir string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", handlers.Ping)
	mux.HandleFunc("POST /echo", handlers.Echo)
	mux.HandleFunc("GET /newgame", handlers.NewGame)
	mux.HandleFunc("POST /startgame", handlers.StartGame)
	mux.HandleFunc("GET /joingame", handlers.JoinGame)
	mux.HandleFunc("POST /move/{playerId}", handlers.Move)
	mux.HandleFunc("GET /board", handlers.Board)
	mux.Handle("GET /gameboard", pushChannel)

	if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
		mux.Handle("GET /", http.FileServer(http.Dir(staticDir)))
	}

	return mux
}

// Start - serves until ctx is done, then shuts down gracefully.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	return nil
}
