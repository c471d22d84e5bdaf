// Package exporter renders tables as CSV for display and downstream
// consumption. It writes to an io.Writer supplied by the caller and never
// touches the filesystem itself.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/MikuMikuMe/data-cleanser/pkg/contracts/domain"
)

// WriteOptions configures CSV rendering behavior.
type WriteOptions struct {
	MissingToken string // written for missing cells; empty by default
	Precision    int    // decimal places for numbers; negative means shortest form
	BOMPrefix    bool   // add UTF-8 BOM for Excel compatibility
}

// CSVWriter renders tables to a single destination writer.
type CSVWriter struct {
	w    io.Writer
	opts WriteOptions
}

// NewCSVWriter creates a CSV writer over w.
func NewCSVWriter(w io.Writer, opts WriteOptions) *CSVWriter {
	return &CSVWriter{w: w, opts: opts}
}

// WriteTable writes the header row followed by every data row.
func (c *CSVWriter) WriteTable(t *domain.Table) error {
	if c.opts.BOMPrefix {
		if _, err := c.w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(c.w)
	if err := writer.Write(t.Names()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, t.NumColumns())
	for r := 0; r < t.NumRows(); r++ {
		for i, v := range t.Row(r) {
			record[i] = c.formatValue(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", r, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatValue renders one cell.
func (c *CSVWriter) formatValue(v domain.Value) string {
	switch v.Kind() {
	case domain.KindMissing:
		return c.opts.MissingToken
	case domain.KindNumber:
		f, _ := v.Float()
		return formatFloat(f, c.opts.Precision)
	default:
		s, _ := v.Text()
		return s
	}
}

// formatFloat formats a float64 for CSV output. A fixed precision keeps
// column values aligned across rows, so 13.4 renders as 13.40 when
// precision is 2.
func formatFloat(f float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', precision, 64)
}
