package domain

import (
	"fmt"
)

// Column is a named, ordered sequence of cell values. Cells across sibling
// columns are aligned by row index.
type Column struct {
	Name  string
	Cells []Value
}

// NumberColumn builds a column from float64 values. A nil pointer marks a
// missing cell.
func NumberColumn(name string, values []*float64) Column {
	cells := make([]Value, len(values))
	for i, v := range values {
		if v == nil {
			cells[i] = Missing()
		} else {
			cells[i] = Number(*v)
		}
	}
	return Column{Name: name, Cells: cells}
}

// TextColumn builds a column from string values. A nil pointer marks a
// missing cell.
func TextColumn(name string, values []*string) Column {
	cells := make([]Value, len(values))
	for i, v := range values {
		if v == nil {
			cells[i] = Missing()
		} else {
			cells[i] = Text(*v)
		}
	}
	return Column{Name: name, Cells: cells}
}

// Table is an in-memory table of named columns with aligned row indices.
// Construct it with NewTable; column handles obtained from a table are live
// references into its storage, which is the mutation model the preprocessor
// relies on.
type Table struct {
	columns []Column
}

// NewTable validates the structural contract (unique non-empty column
// names, equal column lengths) and wraps the columns. The column slices are
// adopted, not copied: the table borrows the caller's storage.
func NewTable(columns []Column) (*Table, error) {
	seen := make(map[string]struct{}, len(columns))
	for i, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := seen[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		seen[col.Name] = struct{}{}
		if len(col.Cells) != len(columns[0].Cells) {
			return nil, fmt.Errorf("column %q has %d rows, want %d", col.Name, len(col.Cells), len(columns[0].Cells))
		}
	}
	return &Table{columns: columns}, nil
}

// Validate re-checks the structural contract. Live column handles let
// callers grow or shrink individual columns, so consumers that require
// alignment verify it before operating.
func (t *Table) Validate() error {
	seen := make(map[string]struct{}, len(t.columns))
	for i, col := range t.columns {
		if col.Name == "" {
			return fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := seen[col.Name]; dup {
			return fmt.Errorf("duplicate column name %q", col.Name)
		}
		seen[col.Name] = struct{}{}
		if len(col.Cells) != len(t.columns[0].Cells) {
			return fmt.Errorf("column %q has %d rows, want %d", col.Name, len(col.Cells), len(t.columns[0].Cells))
		}
	}
	return nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns[0].Cells)
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Column returns a live handle to the named column.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.columns {
		if t.columns[i].Name == name {
			return &t.columns[i], true
		}
	}
	return nil, false
}

// ColumnAt returns a live handle to the column at index i.
func (t *Table) ColumnAt(i int) *Column {
	return &t.columns[i]
}

// Row returns a copy of the cells of row i in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.columns))
	for c := range t.columns {
		row[c] = t.columns[c].Cells[i]
	}
	return row
}

// RetainRows keeps only the rows whose indices appear in keep, in the given
// order, uniformly across all columns. Indices must be valid and ascending
// for order-preserving retention.
func (t *Table) RetainRows(keep []int) {
	for c := range t.columns {
		cells := make([]Value, len(keep))
		for i, r := range keep {
			cells[i] = t.columns[c].Cells[r]
		}
		t.columns[c].Cells = cells
	}
}

// Clone returns a deep, independent copy of the table. Mutating either
// table afterwards does not affect the other.
func (t *Table) Clone() *Table {
	columns := make([]Column, len(t.columns))
	for i, col := range t.columns {
		cells := make([]Value, len(col.Cells))
		copy(cells, col.Cells)
		columns[i] = Column{Name: col.Name, Cells: cells}
	}
	return &Table{columns: columns}
}
