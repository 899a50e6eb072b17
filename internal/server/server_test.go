package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/BloggingApp/web-client/internal/config"
)

func TestShutdownBeforeRun(t *testing.T) {
	srv := New(config.ServerConfig{Port: "0", Handler: http.NotFoundHandler()})

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected ErrServerClosed, got %v", err)
	}
}

func TestShutdownStopsRunningServer(t *testing.T) {
	srv := New(config.ServerConfig{Port: "0", Handler: http.NotFoundHandler()})

	done := make(chan error, 1)
	go func() {
		done <- srv.Run()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("expected ErrServerClosed, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
