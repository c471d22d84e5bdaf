package domain

import (
	"fmt"
	"strconv"
)

// Kind identifies the primitive type tag carried by a cell value.
type Kind uint8

const (
	// KindMissing marks an absent cell. It is distinct from every valid
	// value; only imputation resolves it.
	KindMissing Kind = iota
	KindNumber
	KindString
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a single immutable table cell. The zero value is the missing
// marker. Value is comparable, so it can be used directly as a map key.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Missing returns the missing-value marker.
func Missing() Value {
	return Value{}
}

// Number returns a numeric cell value.
func Number(v float64) Value {
	return Value{kind: KindNumber, num: v}
}

// Int returns a numeric cell value from an integer. Integers and floats
// share the numeric kind; the table has no separate integer storage.
func Int(v int64) Value {
	return Value{kind: KindNumber, num: float64(v)}
}

// Text returns a string cell value.
func Text(s string) Value {
	return Value{kind: KindString, str: s}
}

// Kind returns the value's type tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether the value is the missing marker.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Float returns the numeric payload. The second return is false for
// non-numeric values.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Text returns the string payload. The second return is false for
// non-string values.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// String renders the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	default:
		return "<missing>"
	}
}

// Key returns a canonical encoding of the value, injective across kinds.
// Row identity during deduplication is built from cell keys.
func (v Value) Key() string {
	switch v.kind {
	case KindNumber:
		return "n:" + strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return "s:" + v.str
	default:
		return "_"
	}
}

// Less imposes a deterministic total order over present values: numbers
// sort before strings, numbers by magnitude, strings lexicographically.
// The missing marker sorts before everything. The order is independent of
// row order, so repeated runs over the same values always agree.
func Less(a, b Value) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	switch a.kind {
	case KindNumber:
		return a.num < b.num
	case KindString:
		return a.str < b.str
	default:
		return false
	}
}
