package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics holds preprocessing-specific metrics
type PipelineMetrics struct {
	OperationsTotal    metric.Int64Counter
	OperationDuration  metric.Float64Histogram
	CellsFilledTotal   metric.Int64Counter
	DuplicatesRemoved  metric.Int64Counter
	ColumnsEncoded     metric.Int64Counter
	ColumnsNormalized  metric.Int64Counter
	ColumnErrorsTotal  metric.Int64Counter
}

// NewPipelineMetrics creates the preprocessing metric instruments
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	operationsTotal, err := meter.Int64Counter(
		"preprocess_operations_total",
		metric.WithDescription("Total number of preprocessing operations executed"),
	)
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram(
		"preprocess_operation_duration_seconds",
		metric.WithDescription("Preprocessing operation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	cellsFilledTotal, err := meter.Int64Counter(
		"preprocess_cells_filled_total",
		metric.WithDescription("Total number of missing cells resolved by imputation"),
	)
	if err != nil {
		return nil, err
	}

	duplicatesRemoved, err := meter.Int64Counter(
		"preprocess_duplicate_rows_removed_total",
		metric.WithDescription("Total number of duplicate rows removed"),
	)
	if err != nil {
		return nil, err
	}

	columnsEncoded, err := meter.Int64Counter(
		"preprocess_columns_encoded_total",
		metric.WithDescription("Total number of categorical columns label-encoded"),
	)
	if err != nil {
		return nil, err
	}

	columnsNormalized, err := meter.Int64Counter(
		"preprocess_columns_normalized_total",
		metric.WithDescription("Total number of numerical columns standardized"),
	)
	if err != nil {
		return nil, err
	}

	columnErrorsTotal, err := meter.Int64Counter(
		"preprocess_column_errors_total",
		metric.WithDescription("Total number of column-local operation failures"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		OperationsTotal:   operationsTotal,
		OperationDuration: operationDuration,
		CellsFilledTotal:  cellsFilledTotal,
		DuplicatesRemoved: duplicatesRemoved,
		ColumnsEncoded:    columnsEncoded,
		ColumnsNormalized: columnsNormalized,
		ColumnErrorsTotal: columnErrorsTotal,
	}, nil
}

// RecordOperation records execution and duration for one preprocessing
// operation. Attributes carry the operation name and outcome.
func (m *PipelineMetrics) RecordOperation(ctx context.Context, operation string, duration time.Duration, success bool) {
	if m == nil {
		return
	}

	status := "success"
	if !success {
		status = "failure"
	}
	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.String("status", status),
	}

	m.OperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.OperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordColumnErrors records column-local failures for one operation.
func (m *PipelineMetrics) RecordColumnErrors(ctx context.Context, operation string, count int) {
	if m == nil || count == 0 {
		return
	}

	m.ColumnErrorsTotal.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}
