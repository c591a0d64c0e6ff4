package mapboxglstyle

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
)

const (
	FilterOperatorEquals   = "=="
	FilterOperatorNotEqual = "!="
	FilterOperatorNot      = "!"
	FilterOperatorAny      = "any"
	FilterOperatorAll      = "all"
	FilterOperatorIn       = "in"
	FilterOperatorMatch    = "match"
	FilterOperatorGet      = "get"
	FilterOperatorHas      = "has"
	FilterOperatorCoalesce = "coalesce"
	FilterOperatorLiteral  = "literal"
	FilterOperatorConcat   = "concat"
)

// https://openmaptiles.org/schema/#transportation
const (
	SourceLayerTransportation     string = "transportation"
	SourceLayerTransportationName string = "transportation_name"
)

type Filter interface{}

// Properties are the attributes of one vector tile feature
type Properties map[string]interface{}

// IsFeatureShown evaluates a layer filter against a feature's properties.
// Only the operators used by filters are understood; zoom dependent expressions are an error.
func IsFeatureShown(filter Filter, properties Properties) (bool, errorsx.Error) {
	if filter == nil {
		return true, nil
	}

	value, err := evaluate(filter, properties)
	if err != nil {
		return false, err
	}

	shown, ok := value.(bool)
	if !ok {
		return false, errorsx.Errorf("filter evaluated to %#v, not a bool", value)
	}

	return shown, nil
}

// Evaluate works out the value of a feature-dependent expression, such as an icon-image
func Evaluate(expr interface{}, properties Properties) (interface{}, errorsx.Error) {
	return evaluate(expr, properties)
}

func evaluate(expr interface{}, properties Properties) (interface{}, errorsx.Error) {
	base, ok := toSlice(expr)
	if !ok {
		return normalise(expr), nil
	}

	if len(base) == 0 {
		return nil, errorsx.Errorf("empty expression")
	}

	operator, ok := base[0].(string)
	if !ok {
		return nil, errorsx.Errorf("expression operator is not a string: %#v", base[0])
	}

	switch operator {
	case FilterOperatorLiteral:
		if len(base) != 2 {
			return nil, errorsx.Errorf("literal takes one argument")
		}
		list, ok := toSlice(base[1])
		if ok {
			return normaliseSlice(list), nil
		}
		return normalise(base[1]), nil
	case FilterOperatorGet:
		if len(base) != 2 {
			return nil, errorsx.Errorf("get takes one argument")
		}
		name, ok := base[1].(string)
		if !ok {
			return nil, errorsx.Errorf("get needs a property name, got %#v", base[1])
		}
		return normalise(properties[name]), nil
	case FilterOperatorHas:
		if len(base) != 2 {
			return nil, errorsx.Errorf("has takes one argument")
		}
		name, ok := base[1].(string)
		if !ok {
			return nil, errorsx.Errorf("has needs a property name, got %#v", base[1])
		}
		_, ok = properties[name]
		return ok, nil
	case FilterOperatorCoalesce:
		for _, arg := range base[1:] {
			value, err := evaluate(arg, properties)
			if err != nil {
				return nil, err
			}
			if value != nil {
				return value, nil
			}
		}
		return nil, nil
	case FilterOperatorEquals, FilterOperatorNotEqual:
		if len(base) != 3 {
			return nil, errorsx.Errorf("%q takes two arguments", operator)
		}
		a, err := evaluate(base[1], properties)
		if err != nil {
			return nil, err
		}
		b, err := evaluate(base[2], properties)
		if err != nil {
			return nil, err
		}
		equal := reflect.DeepEqual(a, b)
		if operator == FilterOperatorNotEqual {
			return !equal, nil
		}
		return equal, nil
	case FilterOperatorNot:
		if len(base) != 2 {
			return nil, errorsx.Errorf("! takes one argument")
		}
		value, err := evaluateBool(base[1], properties)
		if err != nil {
			return nil, err
		}
		return !value, nil
	case FilterOperatorAll:
		for _, subFilter := range base[1:] {
			shown, err := evaluateBool(subFilter, properties)
			if err != nil {
				return nil, err
			}
			if !shown {
				return false, nil
			}
		}
		return true, nil
	case FilterOperatorAny:
		for _, subFilter := range base[1:] {
			shown, err := evaluateBool(subFilter, properties)
			if err != nil {
				return nil, err
			}
			if shown {
				return true, nil
			}
		}
		return false, nil
	case FilterOperatorIn:
		if len(base) != 3 {
			return nil, errorsx.Errorf("in takes two arguments")
		}
		needle, err := evaluate(base[1], properties)
		if err != nil {
			return nil, err
		}
		haystack, err := evaluate(base[2], properties)
		if err != nil {
			return nil, err
		}
		list, ok := haystack.([]interface{})
		if !ok {
			return nil, errorsx.Errorf("in needs a list, got %#v", haystack)
		}
		return contains(list, needle), nil
	case FilterOperatorMatch:
		return evaluateMatch(base, properties)
	case FilterOperatorConcat:
		var sb strings.Builder
		for _, arg := range base[1:] {
			value, err := evaluate(arg, properties)
			if err != nil {
				return nil, err
			}
			if value != nil {
				sb.WriteString(fmt.Sprint(value))
			}
		}
		return sb.String(), nil
	default:
		return nil, errorsx.Errorf("operator not supported in filters: %q", operator)
	}
}

func evaluateMatch(base []interface{}, properties Properties) (interface{}, errorsx.Error) {
	// ["match", input, label, output, ..., fallback]
	if len(base) < 3 || len(base)%2 != 1 {
		return nil, errorsx.Errorf("match has the wrong number of arguments: %d", len(base))
	}

	input, err := evaluate(base[1], properties)
	if err != nil {
		return nil, err
	}

	for i := 2; i < len(base)-1; i += 2 {
		var matched bool
		labels, ok := toSlice(base[i])
		if ok {
			matched = contains(normaliseSlice(labels), input)
		} else {
			matched = reflect.DeepEqual(normalise(base[i]), input)
		}

		if matched {
			return evaluate(base[i+1], properties)
		}
	}

	return evaluate(base[len(base)-1], properties)
}

func evaluateBool(expr interface{}, properties Properties) (bool, errorsx.Error) {
	value, err := evaluate(expr, properties)
	if err != nil {
		return false, err
	}

	b, ok := value.(bool)
	if !ok {
		return false, errorsx.Errorf("expected a bool, got %#v", value)
	}
	return b, nil
}

func contains(list []interface{}, needle interface{}) bool {
	for _, item := range list {
		if reflect.DeepEqual(item, needle) {
			return true
		}
	}
	return false
}

func toSlice(expr interface{}) ([]interface{}, bool) {
	switch v := expr.(type) {
	case Expression:
		return v, true
	case []interface{}:
		return v, true
	case []string:
		list := make([]interface{}, len(v))
		for i, s := range v {
			list[i] = s
		}
		return list, true
	default:
		return nil, false
	}
}

func normaliseSlice(list []interface{}) []interface{} {
	normalised := make([]interface{}, len(list))
	for i, item := range list {
		normalised[i] = normalise(item)
	}
	return normalised
}

// normalise makes numbers comparable, whichever Go type they were given as
func normalise(value interface{}) interface{} {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	default:
		return v
	}
}
