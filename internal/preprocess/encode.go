package preprocess

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/MikuMikuMe/data-cleanser/internal/errors"
	"github.com/MikuMikuMe/data-cleanser/pkg/contracts/domain"
)

// EncodeCategorical label-encodes every categorical column: each distinct
// present value receives a unique integer code assigned in the
// deterministic total order of domain.Less, independent of row order.
// Missing markers pass through unencoded; imputation stays the only
// operation that resolves them. Failures are column-local: a failed column
// is reported and its siblings are still encoded. Once encoded, a column
// classifies as numerical and is skipped by later calls.
func (p *Preprocessor) EncodeCategorical(ctx context.Context) errors.ColumnReport {
	ctx, span := p.startOperation(ctx, "preprocess.encode_categorical")
	defer span.End()
	start := time.Now()

	var report errors.ColumnReport
	encoded := 0

	for i := 0; i < p.table.NumColumns(); i++ {
		col := p.table.ColumnAt(i)
		if classify(col) != classCategorical {
			continue
		}
		if err := encodeColumn(col); err != nil {
			columnErr := errors.NewColumnError(col.Name, err.Error())
			report = append(report, columnErr)
			p.logger.WarnContext(ctx, "column encoding failed",
				slog.String("column", col.Name),
				slog.String("error", err.Error()))
			continue
		}
		encoded++
	}

	p.logger.InfoContext(ctx, "encoded categorical columns",
		slog.Int("columns_encoded", encoded),
		slog.Int("columns_failed", len(report)))
	p.metrics.RecordOperation(ctx, "encode_categorical", time.Since(start), true)
	p.metrics.RecordColumnErrors(ctx, "encode_categorical", len(report))
	if p.metrics != nil && encoded > 0 {
		p.metrics.ColumnsEncoded.Add(ctx, int64(encoded))
	}

	return report
}

// encodeColumn replaces each present cell with its value's integer code.
func encodeColumn(col *domain.Column) error {
	distinct := make([]domain.Value, 0)
	seen := make(map[domain.Value]struct{})
	for _, v := range col.Cells {
		if v.IsMissing() {
			continue
		}
		if v.Kind() != domain.KindNumber && v.Kind() != domain.KindString {
			return fmt.Errorf("values of kind %s are not orderable", v.Kind())
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		distinct = append(distinct, v)
	}

	sort.Slice(distinct, func(i, j int) bool {
		return domain.Less(distinct[i], distinct[j])
	})

	codes := make(map[domain.Value]int, len(distinct))
	for code, v := range distinct {
		codes[v] = code
	}

	for i, v := range col.Cells {
		if v.IsMissing() {
			continue
		}
		col.Cells[i] = domain.Int(int64(codes[v]))
	}
	return nil
}
