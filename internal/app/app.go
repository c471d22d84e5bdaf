// Package app wires configuration, logging, and telemetry into a runnable
// application and drives the demonstration pipeline.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/MikuMikuMe/data-cleanser/internal/config"
	"github.com/MikuMikuMe/data-cleanser/internal/errors"
	"github.com/MikuMikuMe/data-cleanser/internal/exporter"
	"github.com/MikuMikuMe/data-cleanser/internal/infrastructure"
	"github.com/MikuMikuMe/data-cleanser/internal/preprocess"
	"github.com/MikuMikuMe/data-cleanser/pkg/contracts/domain"
)

const AppName = "data-cleanser"

// Application is the dependency container: configuration, the single slog
// instance, and telemetry providers.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Providers *infrastructure.Providers
	Out       io.Writer
}

// New loads configuration and initializes the logger and telemetry
// providers.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(logger)

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("log_level", cfg.Logging.Level))

	providers, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Providers: providers,
		Out:       os.Stdout,
	}, nil
}

// ServeMetrics exposes the Prometheus scrape endpoint when the metric
// exporter is enabled. It returns immediately; the listener runs until the
// process exits.
func (a *Application) ServeMetrics(ctx context.Context) {
	if a.Providers.PrometheusHTTP == nil {
		return
	}
	addr := ":" + a.Config.Telemetry.PrometheusPort
	a.Logger.InfoContext(ctx, "serving metrics", slog.String("addr", addr))
	go func() {
		if err := http.ListenAndServe(addr, a.Providers.PrometheusHTTP); err != nil {
			a.Logger.Error("metrics endpoint failed", slog.String("error", err.Error()))
		}
	}()
}

// Run executes the cleaning pipeline on the sample table and writes the
// before and after states as CSV.
func (a *Application) Run(ctx context.Context) error {
	table, err := sampleTable()
	if err != nil {
		return err
	}

	opts := []preprocess.Option{preprocess.WithLogger(a.Logger)}
	if a.Providers.Tracer != nil {
		opts = append(opts, preprocess.WithTracer(a.Providers.Tracer))
	}
	if a.Providers.Meter != nil {
		metrics, err := infrastructure.NewPipelineMetrics(a.Providers.Meter)
		if err != nil {
			return err
		}
		opts = append(opts, preprocess.WithMetrics(metrics))
	}

	pre, err := preprocess.New(table, opts...)
	if err != nil {
		return err
	}

	csvOut := exporter.NewCSVWriter(a.Out, exporter.WriteOptions{
		MissingToken: "NA",
		Precision:    -1,
	})

	fmt.Fprintln(a.Out, "before cleaning:")
	if err := csvOut.WriteTable(pre.CleanData()); err != nil {
		return err
	}

	stats, err := pre.FillMissingWithStats(ctx, preprocess.FillOptions{Strategy: preprocess.StrategyMean})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "\nfill_missing(mean): %d cells filled, skipped columns: %v\n",
		stats.CellsFilled, stats.ColumnsSkipped)

	removed := pre.RemoveDuplicates(ctx)
	fmt.Fprintf(a.Out, "remove_duplicates: %d rows removed\n", removed)

	a.printReport("encode_categorical", pre.EncodeCategorical(ctx))
	a.printReport("normalize_numerical", pre.NormalizeNumerical(ctx))

	fmt.Fprintln(a.Out, "\nafter cleaning:")
	return csvOut.WriteTable(pre.CleanData())
}

// Shutdown flushes and stops the telemetry providers.
func (a *Application) Shutdown(ctx context.Context) error {
	return a.Providers.Shutdown(ctx)
}

func (a *Application) printReport(operation string, report errors.ColumnReport) {
	if !report.HasErrors() {
		fmt.Fprintf(a.Out, "%s: ok\n", operation)
		return
	}
	fmt.Fprintf(a.Out, "%s: %d column(s) failed\n", operation, len(report))
	for _, e := range report {
		fmt.Fprintf(a.Out, "  %s\n", e.Error())
	}
}

// sampleTable builds the demographic table the pipeline demonstrates on.
func sampleTable() (*domain.Table, error) {
	f := func(v float64) *float64 { return &v }
	s := func(v string) *string { return &v }

	return domain.NewTable([]domain.Column{
		domain.NumberColumn("age", []*float64{f(25), f(30), nil, f(29), nil}),
		domain.NumberColumn("salary", []*float64{f(50000), nil, f(60000), f(58000), f(54000)}),
		domain.TextColumn("gender", []*string{s("Male"), s("Female"), s("Female"), nil, s("Male")}),
	})
}
