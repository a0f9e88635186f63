package tool

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParamType is the declared primitive type of a tool parameter.
type ParamType string

const (
	TypeBool   ParamType = "bool"
	TypeInt    ParamType = "int"
	TypeFloat  ParamType = "float"
	TypeString ParamType = "string"
	TypeDate   ParamType = "date"
)

// DateLayout is the preferred textual form of TypeDate values.
const DateLayout = "2006-01-02"

// Normalize resolves aliases ("str") to their canonical type.
func (p ParamType) Normalize() ParamType {
	if p == "str" {
		return TypeString
	}
	return p
}

// Known reports whether p names a supported primitive type.
func (p ParamType) Known() bool {
	switch p.Normalize() {
	case TypeBool, TypeInt, TypeFloat, TypeString, TypeDate:
		return true
	}
	return false
}

// Coerce converts v to the Go representation of t: bool, int, float64,
// string or time.Time. Values of an unknown type, and values that already
// have the target representation, are returned unchanged.
func Coerce(v any, t ParamType) (any, error) {
	switch t.Normalize() {
	case TypeBool:
		return toBool(v)
	case TypeInt:
		return toInt(v)
	case TypeFloat:
		return toFloat(v)
	case TypeString:
		return toString(v), nil
	case TypeDate:
		return toDate(v)
	default:
		return v, nil
	}
}

func toBool(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to bool", x)
		}
		return b, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot convert %s to bool", x)
		}
		return f != 0, nil
	case int:
		return x != 0, nil
	case float64:
		return x != 0, nil
	default:
		return nil, fmt.Errorf("cannot convert %v (%T) to bool", v, v)
	}
}

func toInt(v any) (any, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case int32:
		return int(x), nil
	case float64:
		return floatToInt(x)
	case float32:
		return floatToInt(float64(x))
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot convert %s to int", x)
		}
		return floatToInt(f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to int", x)
		}
		return i, nil
	default:
		return nil, fmt.Errorf("cannot convert %v (%T) to int", v, v)
	}
}

func floatToInt(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt || f < math.MinInt {
		return nil, fmt.Errorf("cannot convert %v to int", f)
	}
	return int(f), nil
}

func toFloat(v any) (any, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case bool:
		if x {
			return 1.0, nil
		}
		return 0.0, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot convert %s to float", x)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to float", x)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("cannot convert %v (%T) to float", v, v)
	}
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case map[string]any, []any:
		if out, err := json.Marshal(x); err == nil {
			return string(out)
		}
	}
	return fmt.Sprint(v)
}

func toDate(v any) (any, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range []string{DateLayout, time.RFC3339} {
			if d, err := time.Parse(layout, s); err == nil {
				return d, nil
			}
		}
		return nil, fmt.Errorf("cannot convert %q to date (expected %s)", x, DateLayout)
	default:
		return nil, fmt.Errorf("cannot convert %v (%T) to date", v, v)
	}
}
