package preprocess

import (
	"github.com/MikuMikuMe/data-cleanser/pkg/contracts/domain"
)

// columnClass partitions columns by the primitive type tags of their
// present values.
type columnClass int

const (
	// classEmpty: no present values at all. Skipped by encode, normalize,
	// and every fill strategy that derives its substitute from the data.
	classEmpty columnClass = iota
	// classNumerical: every present value is numeric.
	classNumerical
	// classCategorical: at least one present value is non-numeric.
	classCategorical
)

func (c columnClass) String() string {
	switch c {
	case classNumerical:
		return "numerical"
	case classCategorical:
		return "categorical"
	default:
		return "empty"
	}
}

// classify inspects a column's present values. It runs fresh on every
// operation call and is never cached: encoding changes a column's class
// between calls.
func classify(col *domain.Column) columnClass {
	present := false
	for _, v := range col.Cells {
		switch v.Kind() {
		case domain.KindMissing:
		case domain.KindNumber:
			present = true
		default:
			return classCategorical
		}
	}
	if !present {
		return classEmpty
	}
	return classNumerical
}
