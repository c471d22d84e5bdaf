package preprocess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikuMikuMe/data-cleanser/internal/errors"
	"github.com/MikuMikuMe/data-cleanser/internal/shared/testutil"
	"github.com/MikuMikuMe/data-cleanser/pkg/contracts/domain"
)

func TestNew_RejectsNilTable(t *testing.T) {
	p, err := New(nil)

	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, errors.IsType(err, errors.ErrTypeTableConstraint))
}

func TestNew_RejectsMisalignedColumns(t *testing.T) {
	table := testutil.NewSurveyTable(t)

	// Live column handles let the caller break row alignment after
	// construction; New re-checks the contract instead of trusting it.
	col, ok := table.Column("age")
	require.True(t, ok)
	col.Cells = append(col.Cells, domain.Number(31))

	p, err := New(table)

	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, errors.IsType(err, errors.ErrTypeTableConstraint))
}

func TestNew_AssignsDistinctRunIDs(t *testing.T) {
	first := newPreprocessor(t, testutil.NewSurveyTable(t))
	second := newPreprocessor(t, testutil.NewSurveyTable(t))

	assert.NotEmpty(t, first.RunID())
	assert.NotEmpty(t, second.RunID())
	assert.NotEqual(t, first.RunID(), second.RunID())
}

func TestCleanData_ReturnsIsolatedSnapshot(t *testing.T) {
	table := testutil.NewSurveyTable(t)
	p := newPreprocessor(t, table)

	snapshot := p.CleanData()

	// Mutating the snapshot must not reach the live table, and further
	// passes on the live table must not reach the snapshot.
	snapCol, ok := snapshot.Column("age")
	require.True(t, ok)
	snapCol.Cells[0] = domain.Number(99)
	assert.Equal(t, domain.Number(25), columnCells(t, table, "age")[0])

	require.NoError(t, p.FillMissing(context.Background(), FillOptions{Strategy: StrategyMean}))
	assert.True(t, snapCol.Cells[2].IsMissing())
}

func TestPipeline_EndToEnd(t *testing.T) {
	table := testutil.NewSurveyTable(t)
	p := newPreprocessor(t, table)
	ctx := context.Background()

	// Imputation: age and salary fill from their means, gender holds a
	// non-numeric value and is skipped.
	stats, err := p.FillMissingWithStats(ctx, FillOptions{Strategy: StrategyMean})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.CellsFilled)
	assert.Equal(t, []string{"gender"}, stats.ColumnsSkipped)

	age := columnCells(t, table, "age")
	assert.Equal(t, domain.Number(28), age[2])
	assert.Equal(t, domain.Number(28), age[4])
	assert.Equal(t, domain.Number(55500), columnCells(t, table, "salary")[1])

	// No two rows coincide in this fixture.
	assert.Equal(t, 0, p.RemoveDuplicates(ctx))
	assert.Equal(t, 5, table.NumRows())

	// Encoding: labels map to codes in lexical order, the missing marker
	// passes through.
	report := p.EncodeCategorical(ctx)
	require.False(t, report.HasErrors())
	gender := columnCells(t, table, "gender")
	assert.Equal(t, domain.Int(1), gender[0])
	assert.Equal(t, domain.Int(0), gender[1])
	assert.Equal(t, domain.Int(0), gender[2])
	assert.True(t, gender[3].IsMissing())
	assert.Equal(t, domain.Int(1), gender[4])

	// Normalization: every column is numerical by now, including the
	// freshly encoded one.
	report = p.NormalizeNumerical(ctx)
	require.False(t, report.HasErrors())
	for _, name := range []string{"age", "salary", "gender"} {
		m, std := columnMoments(t, table, name)
		assert.InDelta(t, 0.0, m, 1e-9, "column %q mean", name)
		assert.InDelta(t, 1.0, std, 1e-9, "column %q stddev", name)
	}
	assert.True(t, columnCells(t, table, "gender")[3].IsMissing())
	assert.InDelta(t, 0.0, mustFloat(t, columnCells(t, table, "age")[2]), 1e-9)

	// The snapshot matches the mutated live table but shares no storage.
	clean := p.CleanData()
	require.Equal(t, table.Names(), clean.Names())
	cleanAge, ok := clean.Column("age")
	require.True(t, ok)
	assert.Equal(t, columnCells(t, table, "age"), cleanAge.Cells)
	cleanAge.Cells[0] = domain.Number(7)
	assert.NotEqual(t, domain.Number(7), columnCells(t, table, "age")[0])
}

func TestPipeline_MutationsVisibleOnCallerTable(t *testing.T) {
	table := testutil.NewSurveyTable(t)
	p := newPreprocessor(t, table)

	require.NoError(t, p.FillMissing(context.Background(), FillOptions{
		Strategy:  StrategyConstant,
		FillValue: vptr(domain.Text("unknown")),
	}))

	// The preprocessor borrows the caller's table; no copy is taken at
	// construction time.
	assert.Equal(t, domain.Text("unknown"), columnCells(t, table, "gender")[3])
}

func mustFloat(t *testing.T, v domain.Value) float64 {
	t.Helper()
	f, ok := v.Float()
	require.True(t, ok)
	return f
}
