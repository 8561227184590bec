package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the dynamic type of a Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	}
	return "undefined"
}

// Value is the result of evaluating an expression. The zero Value is undefined.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
}

func Undefined() Value            { return Value{} }
func Null() Value                 { return Value{kind: KindNull} }
func Bool(b bool) Value           { return Value{kind: KindBool, b: b} }
func Number(n float64) Value      { return Value{kind: KindNumber, n: n} }
func String(s string) Value       { return Value{kind: KindString, s: s} }
func (v Value) Kind() Kind        { return v.kind }
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

// FromAny converts a story variable into a Value.
// Unsupported Go types become undefined.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int8:
		return Number(float64(t))
	case int16:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint:
		return Number(float64(t))
	case uint8:
		return Number(float64(t))
	case uint16:
		return Number(float64(t))
	case uint32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	}
	return Undefined()
}

// Interface returns the Go representation of v: nil, bool, float64 or string.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	}
	return nil
}

// Truthy applies JavaScript truthiness.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0 && !math.IsNaN(v.n)
	case KindString:
		return v.s != ""
	}
	return false
}

// Number coerces v to a number (NaN when it has no numeric reading).
func (v Value) Number() float64 {
	switch v.kind {
	case KindNull:
		return 0
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindNumber:
		return v.n
	case KindString:
		return stringToNumber(v.s)
	}
	return math.NaN()
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	// ParseFloat accepts spellings ("inf", "nan", hex floats, underscores)
	// that have no numeric reading here.
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(isDigit(c) || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-') {
			return math.NaN()
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// String renders v the way string concatenation sees it.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.n)
	case KindString:
		return v.s
	}
	return "undefined"
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}
	abs := math.Abs(n)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(n, 'e', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// GoString makes Values readable in test failure output.
func (v Value) GoString() string {
	if v.kind == KindString {
		return fmt.Sprintf("String(%q)", v.s)
	}
	return fmt.Sprintf("%s(%s)", v.kind, v.String())
}

// StrictEquals implements ===.
func StrictEquals(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	}
	return true
}

// LooseEquals implements == with JavaScript coercion between primitives.
func LooseEquals(a, b Value) bool {
	if a.kind == b.kind {
		return StrictEquals(a, b)
	}
	aNullish := a.kind == KindNull || a.kind == KindUndefined
	bNullish := b.kind == KindNull || b.kind == KindUndefined
	if aNullish || bNullish {
		return aNullish && bNullish
	}
	if a.kind == KindBool {
		return LooseEquals(Number(a.Number()), b)
	}
	if b.kind == KindBool {
		return LooseEquals(a, Number(b.Number()))
	}
	// Only number/string mixes remain.
	return a.Number() == b.Number()
}
