package preprocess

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// RemoveDuplicates removes rows that are exact value-for-value duplicates
// of an earlier row, comparing all columns. The first occurrence of each
// duplicate group is kept and relative row order is preserved. Returns the
// number of rows removed; a second call is always a no-op.
func (p *Preprocessor) RemoveDuplicates(ctx context.Context) int {
	ctx, span := p.startOperation(ctx, "preprocess.remove_duplicates")
	defer span.End()
	start := time.Now()

	rows := p.table.NumRows()
	cols := p.table.NumColumns()

	seen := make(map[string]struct{}, rows)
	keep := make([]int, 0, rows)
	var sb strings.Builder

	for r := 0; r < rows; r++ {
		sb.Reset()
		for c := 0; c < cols; c++ {
			// Length-prefixed cell keys keep the row key injective even
			// when string cells contain the separator.
			k := p.table.ColumnAt(c).Cells[r].Key()
			sb.WriteString(strconv.Itoa(len(k)))
			sb.WriteByte(':')
			sb.WriteString(k)
		}
		key := sb.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, r)
	}

	removed := rows - len(keep)
	if removed > 0 {
		p.table.RetainRows(keep)
	}

	p.logger.InfoContext(ctx, "removed duplicate rows",
		slog.Int("rows_before", rows),
		slog.Int("rows_removed", removed))
	p.metrics.RecordOperation(ctx, "remove_duplicates", time.Since(start), true)
	if p.metrics != nil && removed > 0 {
		p.metrics.DuplicatesRemoved.Add(ctx, int64(removed))
	}

	return removed
}
