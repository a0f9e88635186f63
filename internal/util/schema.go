package util

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// ValidationError represents parameter validation errors with detailed information.
type ValidationError struct {
	Field   string `json:"field"`   // Field that failed validation
	Value   any    `json:"value"`   // Value that was provided
	Message string `json:"message"` // Human-readable error message
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

var timeType = reflect.TypeOf(time.Time{})

// CreateSignature derives a parameter-name to primitive-type-name mapping
// from a struct using reflection. Field names follow the json tag. Only
// bool, integer, float, string and time.Time fields are supported.
func CreateSignature(structType any) (map[string]string, error) {
	t := reflect.TypeOf(structType)
	if t == nil {
		return nil, fmt.Errorf("signature source must be a struct, got nil")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("signature source must be a struct, got %s", t.Kind())
	}

	sig := make(map[string]string, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				fieldName = parts[0]
			}
		}

		typ, ok := primitiveType(field.Type)
		if !ok {
			return nil, &ValidationError{Field: fieldName, Message: fmt.Sprintf("unsupported parameter type %s", field.Type)}
		}

		sig[fieldName] = typ
	}

	return sig, nil
}

func primitiveType(t reflect.Type) (string, bool) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == timeType {
		return "date", true
	}
	switch t.Kind() {
	case reflect.String:
		return "string", true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int", true
	case reflect.Float32, reflect.Float64:
		return "float", true
	case reflect.Bool:
		return "bool", true
	default:
		return "", false
	}
}
