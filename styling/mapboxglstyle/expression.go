package mapboxglstyle

import (
	"fmt"
)

// Expression is a style expression, e.g. ["==", ["get", "class"], "motorway"]
type Expression []interface{}

func Get(property string) Expression {
	return Expression{"get", property}
}

func Has(property string) Expression {
	return Expression{"has", property}
}

func Zoom() Expression {
	return Expression{"zoom"}
}

// GetOrZero reads a numeric property that tiles leave out when it is 0
func GetOrZero(property string) Expression {
	return Expression{"coalesce", Get(property), 0}
}

func Literal(values ...interface{}) Expression {
	return Expression{"literal", values}
}

func Eq(a, b interface{}) Expression {
	return Expression{"==", a, b}
}

func Neq(a, b interface{}) Expression {
	return Expression{"!=", a, b}
}

func Not(expr Expression) Expression {
	return Expression{"!", expr}
}

// In checks whether needle is one of values
func In(needle interface{}, values ...interface{}) Expression {
	return Expression{"in", needle, Literal(values...)}
}

func All(exprs ...interface{}) Expression {
	return append(Expression{"all"}, exprs...)
}

func Any(exprs ...interface{}) Expression {
	return append(Expression{"any"}, exprs...)
}

// Match takes label/output pairs followed by the fallback output.
// A label may be a []string, matching any of its values.
func Match(input interface{}, labelsAndOutputs ...interface{}) Expression {
	return append(Expression{"match", input}, labelsAndOutputs...)
}

func Step(input interface{}, defaultOutput interface{}, stops ...interface{}) Expression {
	return append(Expression{"step", input, defaultOutput}, stops...)
}

// Interpolate interpolates exponentially between zoom stops
func Interpolate(base float64, stops ...interface{}) Expression {
	return append(Expression{"interpolate", Expression{"exponential", base}, Zoom()}, stops...)
}

func Concat(parts ...interface{}) Expression {
	return append(Expression{"concat"}, parts...)
}

func Coalesce(exprs ...interface{}) Expression {
	return append(Expression{"coalesce"}, exprs...)
}

func Sum(exprs ...interface{}) Expression {
	return append(Expression{"+"}, exprs...)
}

func Product(exprs ...interface{}) Expression {
	return append(Expression{"*"}, exprs...)
}

// HSL formats a CSS hsl() colour, as style documents take them
func HSL(hue, saturation, lightness float64) string {
	return fmt.Sprintf("hsl(%g, %g%%, %g%%)", hue, saturation, lightness)
}

// CombineConstraints ands two filters together. Either may be nil.
func CombineConstraints(a, b Expression) Expression {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return All(a, b)
}
