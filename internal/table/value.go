package table

import "strconv"

// Kind discriminates the three cell value states.
type Kind int

const (
	KindMissing Kind = iota
	KindString
	KindNumber
)

// Value is a tagged cell value: string, number, or missing. Intermediate
// pipeline stages routinely hold mixed kinds in one column; the tag makes
// that explicit instead of relying on implicit coercion.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// Missing is the explicit missing-value marker.
var Missing = Value{}

// String wraps a string cell. An empty string is still a string value;
// the normalize_null rule converts empties to Missing.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number wraps a numeric cell.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Kind reports which state the value is in.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is the missing marker.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Str returns the string payload and whether the value is a string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Num returns the numeric payload and whether the value is a number.
func (v Value) Num() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Render formats the value for serialization. Numbers use the shortest
// representation that round-trips; missing renders as the given token.
func (v Value) Render(missingToken string) string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return missingToken
	}
}

// Equal reports deep equality of two values.
func (v Value) Equal(other Value) bool {
	return v == other
}
