package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_Kinds(t *testing.T) {
	tests := []struct {
		name        string
		value       Value
		wantKind    Kind
		wantMissing bool
	}{
		{name: "missing", value: Missing(), wantKind: KindMissing, wantMissing: true},
		{name: "zero value is missing", value: Value{}, wantKind: KindMissing, wantMissing: true},
		{name: "number", value: Number(1.5), wantKind: KindNumber},
		{name: "int stored as number", value: Int(3), wantKind: KindNumber},
		{name: "text", value: Text("x"), wantKind: KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, tt.value.Kind())
			assert.Equal(t, tt.wantMissing, tt.value.IsMissing())
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	f, ok := Number(2.5).Float()
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = Text("x").Float()
	assert.False(t, ok)

	s, ok := Text("hello").Text()
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	_, ok = Number(1).Text()
	assert.False(t, ok)

	_, ok = Missing().Float()
	assert.False(t, ok)
}

func TestValue_Comparable(t *testing.T) {
	assert.Equal(t, Number(1), Int(1))
	assert.NotEqual(t, Number(0), Missing())
	assert.NotEqual(t, Text("1"), Number(1))

	// Values are usable as map keys.
	counts := map[Value]int{}
	counts[Text("a")]++
	counts[Text("a")]++
	assert.Equal(t, 2, counts[Text("a")])
}

func TestValue_KeyInjective(t *testing.T) {
	values := []Value{Missing(), Number(1), Number(-1), Text("1"), Text("n:1"), Text("")}
	seen := map[string]Value{}
	for _, v := range values {
		prev, dup := seen[v.Key()]
		assert.False(t, dup, "key %q produced by both %v and %v", v.Key(), prev, v)
		seen[v.Key()] = v
	}
}

func TestLess_DeterministicTotalOrder(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{name: "numbers by magnitude", a: Number(1), b: Number(2), want: true},
		{name: "equal numbers", a: Number(2), b: Number(2), want: false},
		{name: "strings lexicographic", a: Text("Female"), b: Text("Male"), want: true},
		{name: "numbers before strings", a: Number(99), b: Text("a"), want: true},
		{name: "strings not before numbers", a: Text("a"), b: Number(99), want: false},
		{name: "missing before present", a: Missing(), b: Number(-1000), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Less(tt.a, tt.b))
		})
	}
}
