package preprocess

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/MikuMikuMe/data-cleanser/internal/errors"
	"github.com/MikuMikuMe/data-cleanser/internal/infrastructure"
	"github.com/MikuMikuMe/data-cleanser/pkg/contracts/domain"
)

// Preprocessor wraps one mutable table and applies transformation passes to
// it in place. It borrows the caller's table; it never copies at
// construction time.
type Preprocessor struct {
	table    *domain.Table
	logger   *slog.Logger
	runID    string
	tracer   trace.Tracer
	metrics  *infrastructure.PipelineMetrics
	validate *validator.Validate
}

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Preprocessor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTracer enables span creation around each operation.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Preprocessor) {
		if tracer != nil {
			p.tracer = tracer
		}
	}
}

// WithMetrics enables pipeline metric recording.
func WithMetrics(metrics *infrastructure.PipelineMetrics) Option {
	return func(p *Preprocessor) {
		p.metrics = metrics
	}
}

// New creates a Preprocessor over the given table. It fails with a
// TABLE_CONSTRAINT error when the input is nil or violates the structural
// contract (live column handles let callers break alignment between calls,
// so the contract is re-checked here rather than trusted from NewTable).
// No transformation is performed at construction time.
func New(table *domain.Table, opts ...Option) (*Preprocessor, error) {
	if table == nil {
		return nil, errors.NewTableConstraintError("input is not a table", nil)
	}
	if err := table.Validate(); err != nil {
		return nil, errors.NewTableConstraintError("input does not satisfy the table contract", err)
	}

	p := &Preprocessor{
		table:    table,
		logger:   slog.Default(),
		runID:    uuid.New().String(),
		tracer:   noop.NewTracerProvider().Tracer(""),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(slog.String("run_id", p.runID))

	return p, nil
}

// RunID returns the identifier attached to this preprocessor's log records
// and spans.
func (p *Preprocessor) RunID() string {
	return p.runID
}

// CleanData returns an independent deep copy of the current table state.
// Subsequent mutation on either side does not affect the other.
func (p *Preprocessor) CleanData() *domain.Table {
	return p.table.Clone()
}

// startOperation opens a span for one transformation pass.
func (p *Preprocessor) startOperation(ctx context.Context, name string) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, name)
}
