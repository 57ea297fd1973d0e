package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

const shutdownTimeout = 15 * time.Second

// Run serves HTTP until SIGINT or SIGTERM and returns the process exit code.
func (app *application) Run(ctx context.Context) int {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * app.config.LLM.Timeout(),
		IdleTimeout:       2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	wait := gfshutdown.GracefulShutdown(ctx, shutdownTimeout, map[string]gfshutdown.Operation{
		// The pool is closed only after in-flight requests have drained.
		"http-server": func(ctx context.Context) error {
			app.logger.Info("shutting down server")
			shutdownErr := server.Shutdown(ctx)
			return errors.Join(shutdownErr, app.cleanup(ctx))
		},
	})

	select {
	case err, ok := <-serveErr:
		if ok {
			app.logger.Error("server failed", "error", err)
			_ = app.cleanup(ctx)
			return 1
		}
		return <-wait
	case code := <-wait:
		app.logger.Info("server shutdown completed", "exit_code", code)
		return code
	}
}
