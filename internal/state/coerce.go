package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxQuantity bounds material counts and the rupee balance. Every write and
// every read is checked against it, so a stored record always reads back.
const MaxQuantity = math.MaxInt32

var (
	errNotNumber   = errors.New("expected a number")
	errNotInteger  = errors.New("expected an integer")
	errOutOfBounds = errors.New("number is out of range")
)

// coerceInt converts a decoded JSON value into an int.
// Integral floats and numeric strings are accepted; booleans, null,
// empty strings and nested values are not.
func coerceInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case int:
		return fromInt64(int64(t))
	case int32:
		return int(t), nil
	case int64:
		return fromInt64(t)
	case float64:
		return fromFloat(t)
	case float32:
		return fromFloat(float64(t))
	case json.Number:
		return fromNumberString(string(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, fmt.Errorf("%w, got an empty string", errNotNumber)
		}
		return fromNumberString(s)
	case nil:
		return 0, fmt.Errorf("%w, got null", errNotNumber)
	case bool:
		return 0, fmt.Errorf("%w, got a boolean", errNotNumber)
	default:
		return 0, fmt.Errorf("%w, got %T", errNotNumber, v)
	}
}

func fromNumberString(s string) (int, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fromInt64(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w, got %q", errNotNumber, s)
	}
	return fromFloat(f)
}

func fromFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumber
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w, got %v", errNotInteger, f)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, errOutOfBounds
	}
	return int(f), nil
}

func fromInt64(n int64) (int, error) {
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, errOutOfBounds
	}
	return int(n), nil
}
