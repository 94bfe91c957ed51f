package util

import (
	"fmt"
	"strconv"
)

func DefaultValue[T any]() T {
	var ret T
	return ret
}

// AnyToFloat64 normalizes the dynamically typed values produced by
// database/sql drivers into float64.
func AnyToFloat64(value any) (float64, error) {
	switch typedValue := value.(type) {
	case float64:
		return typedValue, nil
	case float32:
		return float64(typedValue), nil
	case uint:
		return float64(typedValue), nil
	case int64:
		return float64(typedValue), nil
	case uint64:
		return float64(typedValue), nil
	case int:
		return float64(typedValue), nil
	case uint16:
		return float64(typedValue), nil
	case int16:
		return float64(typedValue), nil
	case uint32:
		return float64(typedValue), nil
	case int32:
		return float64(typedValue), nil
	case uint8:
		return float64(typedValue), nil
	case int8:
		return float64(typedValue), nil
	case string:
		return strconv.ParseFloat(typedValue, 64)
	case []byte:
		return strconv.ParseFloat(string(typedValue), 64)
	default:
		return 0, fmt.Errorf("value %v of type %T cannot be converted to float64", value, typedValue)
	}
}
