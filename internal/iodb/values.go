package iodb

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gnames/occdb/pkg/schema"
)

// typedValue converts a string value into the Go value matching the
// column's storage type. Empty strings become NULLs in typed columns
// and stay empty strings in text columns, so a fetch returns the same
// shape that was written.
func typedValue(v string, ct schema.ColumnType) (any, error) {
	switch ct {
	case schema.Integer:
		if v == "" {
			return nil, nil
		}
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not an integer: %w", v, err)
		}
		return i, nil
	case schema.Real:
		if v == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a number: %w", v, err)
		}
		return f, nil
	}
	return v, nil
}

// stringValue renders a fetched store value back into the string form
// tables use in memory.
func stringValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	}
	return fmt.Sprintf("%v", v)
}
