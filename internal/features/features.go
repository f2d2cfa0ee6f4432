// Package features maps a raw survey payload onto the fixed-order numeric
// vector the classifier was trained on.
package features

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FieldOrder is the canonical 9-field survey schema, in training order.
var FieldOrder = []string{
	"sleep_hours",
	"study_hours",
	"GPA",
	"Academic_Pressure",
	"Financial_Stress",
	"Stress_Level",
	"Extracurricular_Hours_Per_Day",
	"Social_Hours_Per_Day",
	"Physical_Activity_Hours_Per_Day",
}

var (
	ErrNoData        = errors.New("no survey data provided")
	ErrInvalidFormat = errors.New("survey field is not numeric")
	ErrInvalidValue  = errors.New("survey values must be non-negative")
)

// Extract reads the named fields from payload in FieldOrder. Missing fields
// default to 0; a present field that cannot be coerced to a float is
// ErrInvalidFormat, and any negative value is ErrInvalidValue.
func Extract(payload map[string]any) ([]float64, error) {
	if len(payload) == 0 {
		return nil, ErrNoData
	}

	vec := make([]float64, len(FieldOrder))
	for i, name := range FieldOrder {
		raw, ok := payload[name]
		if !ok || raw == nil {
			continue
		}
		f, err := coerceFloat(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, name)
		}
		if f < 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidValue, name)
		}
		vec[i] = f
	}
	return vec, nil
}

func coerceFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, err
		}
		return f, nil
	case bool:
		return 0, fmt.Errorf("boolean is not numeric")
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
