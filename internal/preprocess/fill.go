package preprocess

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/MikuMikuMe/data-cleanser/internal/errors"
	"github.com/MikuMikuMe/data-cleanser/pkg/contracts/domain"
)

// FillStrategy selects how missing cells are resolved.
type FillStrategy string

const (
	StrategyMean         FillStrategy = "mean"
	StrategyMedian       FillStrategy = "median"
	StrategyMostFrequent FillStrategy = "most_frequent"
	StrategyConstant     FillStrategy = "constant"
)

// FillOptions holds the arguments of a FillMissing call. FillValue is
// required only for the constant strategy and ignored otherwise.
type FillOptions struct {
	Strategy  FillStrategy  `validate:"required,oneof=mean median most_frequent constant"`
	FillValue *domain.Value `validate:"required_if=Strategy constant"`
}

// FillStats summarizes one imputation pass. ColumnsSkipped lists columns
// that still hold missing cells afterwards: non-numeric columns under
// mean/median, and columns with no present values to derive a fill from.
type FillStats struct {
	CellsFilled    int
	ColumnsSkipped []string
}

// FillMissing resolves missing cells per column according to the strategy.
// Mean and median apply to numerical columns only; categorical columns are
// skipped under those strategies. Invalid arguments fail with an
// INVALID_ARGUMENT error before any mutation.
func (p *Preprocessor) FillMissing(ctx context.Context, opts FillOptions) error {
	_, err := p.FillMissingWithStats(ctx, opts)
	return err
}

// FillMissingWithStats performs FillMissing and returns pass statistics.
func (p *Preprocessor) FillMissingWithStats(ctx context.Context, opts FillOptions) (FillStats, error) {
	ctx, span := p.startOperation(ctx, "preprocess.fill_missing")
	defer span.End()
	start := time.Now()

	if err := p.validate.Struct(opts); err != nil {
		appErr := errors.NewInvalidArgumentError("invalid fill options", err).
			WithContext("strategy", string(opts.Strategy))
		p.logger.ErrorContext(ctx, "fill missing rejected",
			slog.String("strategy", string(opts.Strategy)),
			slog.String("error", appErr.Error()))
		p.metrics.RecordOperation(ctx, "fill_missing", time.Since(start), false)
		return FillStats{}, appErr
	}
	if opts.Strategy == StrategyConstant && opts.FillValue.IsMissing() {
		appErr := errors.NewInvalidArgumentError("constant fill value must not be the missing marker", nil)
		p.logger.ErrorContext(ctx, "fill missing rejected",
			slog.String("strategy", string(opts.Strategy)),
			slog.String("error", appErr.Error()))
		p.metrics.RecordOperation(ctx, "fill_missing", time.Since(start), false)
		return FillStats{}, appErr
	}

	var stats FillStats
	for i := 0; i < p.table.NumColumns(); i++ {
		col := p.table.ColumnAt(i)
		filled := fillColumn(col, opts)
		stats.CellsFilled += filled
		if hasMissing(col) {
			stats.ColumnsSkipped = append(stats.ColumnsSkipped, col.Name)
		}
	}

	p.logger.InfoContext(ctx, "filled missing cells",
		slog.String("strategy", string(opts.Strategy)),
		slog.Int("cells_filled", stats.CellsFilled),
		slog.Int("columns_skipped", len(stats.ColumnsSkipped)))
	p.metrics.RecordOperation(ctx, "fill_missing", time.Since(start), true)
	if p.metrics != nil && stats.CellsFilled > 0 {
		p.metrics.CellsFilledTotal.Add(ctx, int64(stats.CellsFilled))
	}

	return stats, nil
}

// fillColumn applies one strategy to one column and returns the number of
// cells resolved.
func fillColumn(col *domain.Column, opts FillOptions) int {
	switch opts.Strategy {
	case StrategyConstant:
		return replaceMissing(col, *opts.FillValue)
	case StrategyMostFrequent:
		mode, ok := mostFrequent(col.Cells)
		if !ok {
			return 0
		}
		return replaceMissing(col, mode)
	case StrategyMean:
		if classify(col) != classNumerical {
			return 0
		}
		return replaceMissing(col, domain.Number(mean(presentFloats(col.Cells))))
	case StrategyMedian:
		if classify(col) != classNumerical {
			return 0
		}
		return replaceMissing(col, domain.Number(median(presentFloats(col.Cells))))
	default:
		return 0
	}
}

// replaceMissing writes fill into every missing cell of the column.
func replaceMissing(col *domain.Column, fill domain.Value) int {
	filled := 0
	for i, v := range col.Cells {
		if v.IsMissing() {
			col.Cells[i] = fill
			filled++
		}
	}
	return filled
}

func hasMissing(col *domain.Column) bool {
	for _, v := range col.Cells {
		if v.IsMissing() {
			return true
		}
	}
	return false
}

func presentFloats(cells []domain.Value) []float64 {
	vals := make([]float64, 0, len(cells))
	for _, v := range cells {
		if f, ok := v.Float(); ok {
			vals = append(vals, f)
		}
	}
	return vals
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// mostFrequent returns the most frequent present value; ties break by first
// occurrence order in the column. ok is false when no value is present.
func mostFrequent(cells []domain.Value) (domain.Value, bool) {
	counts := make(map[domain.Value]int)
	firstSeen := make(map[domain.Value]int)
	for i, v := range cells {
		if v.IsMissing() {
			continue
		}
		if _, seen := counts[v]; !seen {
			firstSeen[v] = i
		}
		counts[v]++
	}
	if len(counts) == 0 {
		return domain.Missing(), false
	}

	var best domain.Value
	bestCount := -1
	for v, n := range counts {
		if n > bestCount || (n == bestCount && firstSeen[v] < firstSeen[best]) {
			best = v
			bestCount = n
		}
	}
	return best, true
}
