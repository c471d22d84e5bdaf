package preprocess

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/MikuMikuMe/data-cleanser/internal/errors"
	"github.com/MikuMikuMe/data-cleanser/pkg/contracts/domain"
)

// NormalizeNumerical applies z-score standardization to every numerical
// column: each present value becomes (value - mean) / stddev, with the
// population standard deviation computed over present values. A column with
// zero variance is left unchanged and reported as a column-local error;
// sibling columns still normalize. Missing cells are tolerated and pass
// through untouched.
//
// The operation is deliberately not idempotent: a second call
// re-standardizes already-standardized data.
func (p *Preprocessor) NormalizeNumerical(ctx context.Context) errors.ColumnReport {
	ctx, span := p.startOperation(ctx, "preprocess.normalize_numerical")
	defer span.End()
	start := time.Now()

	var report errors.ColumnReport
	normalized := 0

	for i := 0; i < p.table.NumColumns(); i++ {
		col := p.table.ColumnAt(i)
		if classify(col) != classNumerical {
			continue
		}
		if err := normalizeColumn(col); err != nil {
			columnErr := errors.NewColumnError(col.Name, err.Error())
			report = append(report, columnErr)
			p.logger.WarnContext(ctx, "column normalization failed",
				slog.String("column", col.Name),
				slog.String("error", err.Error()))
			continue
		}
		normalized++
	}

	p.logger.InfoContext(ctx, "normalized numerical columns",
		slog.Int("columns_normalized", normalized),
		slog.Int("columns_failed", len(report)))
	p.metrics.RecordOperation(ctx, "normalize_numerical", time.Since(start), true)
	p.metrics.RecordColumnErrors(ctx, "normalize_numerical", len(report))
	if p.metrics != nil && normalized > 0 {
		p.metrics.ColumnsNormalized.Add(ctx, int64(normalized))
	}

	return report
}

// normalizeColumn rewrites present cells as z-scores.
func normalizeColumn(col *domain.Column) error {
	vals := presentFloats(col.Cells)
	m := mean(vals)
	std := stddev(vals, m)
	if std == 0 {
		return fmt.Errorf("zero variance: column is constant")
	}

	for i, v := range col.Cells {
		if f, ok := v.Float(); ok {
			col.Cells[i] = domain.Number((f - m) / std)
		}
	}
	return nil
}

// stddev computes the population standard deviation.
func stddev(vals []float64, mean float64) float64 {
	var sum float64
	for _, v := range vals {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)))
}
