// Command cleanser demonstrates the preprocessing pipeline on a small
// literal table: fill missing values, remove duplicate rows, encode
// categorical columns, standardize numerical columns, print the result.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/MikuMikuMe/data-cleanser/internal/app"
)

func main() {
	os.Exit(run())
}

// run is separated from main so deferred shutdown still executes on a
// failed pipeline.
func run() int {
	application, err := app.New()
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := application.Shutdown(shutdownCtx); err != nil {
			application.Logger.Error("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	ctx := context.Background()
	application.ServeMetrics(ctx)

	if err := application.Run(ctx); err != nil {
		application.Logger.ErrorContext(ctx, "pipeline failed", slog.String("error", err.Error()))
		return 1
	}
	return 0
}
