package testutil

import (
	"testing"

	"github.com/MikuMikuMe/data-cleanser/pkg/contracts/domain"
)

// F wraps a float64 literal for column fixtures.
func F(v float64) *float64 { return &v }

// S wraps a string literal for column fixtures.
func S(v string) *string { return &v }

// NewSurveyTable builds the canonical demographic fixture:
//
//	age    = [25, 30, ∅, 29, ∅]
//	salary = [50000, ∅, 60000, 58000, 54000]
//	gender = [Male, Female, Female, ∅, Male]
func NewSurveyTable(t *testing.T) *domain.Table {
	t.Helper()

	table, err := domain.NewTable([]domain.Column{
		domain.NumberColumn("age", []*float64{F(25), F(30), nil, F(29), nil}),
		domain.NumberColumn("salary", []*float64{F(50000), nil, F(60000), F(58000), F(54000)}),
		domain.TextColumn("gender", []*string{S("Male"), S("Female"), S("Female"), nil, S("Male")}),
	})
	if err != nil {
		t.Fatalf("building survey table: %v", err)
	}
	return table
}

// NewTable builds a table from columns, failing the test on a contract
// violation.
func NewTable(t *testing.T, columns ...domain.Column) *domain.Table {
	t.Helper()

	table, err := domain.NewTable(columns)
	if err != nil {
		t.Fatalf("building table: %v", err)
	}
	return table
}
