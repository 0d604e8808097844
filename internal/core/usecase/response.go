package usecase

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/greenloop/ecoai-commerce/internal/core/domain"
)

// decodeObject narrows the untrusted provider text into a JSON object tree.
// Anything else (non-JSON, non-object top level, trailing garbage) is an
// invalid response format.
func decodeObject(raw string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidResponseFormat, "decode provider response", err)
	}
	if dec.More() {
		return nil, domain.WrapError(domain.ErrInvalidResponseFormat, "decode provider response",
			fmt.Errorf("trailing data after JSON object"))
	}
	return payload, nil
}

// missingKeys returns absent required keys in sorted order so error details
// are deterministic.
func missingKeys(payload map[string]any, keys ...string) []string {
	var missing []string
	for _, key := range keys {
		if _, ok := payload[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

func stringOf(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// toMoney coerces an untyped JSON scalar to a 2-decimal money value.
// json.Number is parsed exactly; numeric strings are tolerated because
// providers occasionally quote numbers despite the schema.
func toMoney(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("not a number: %q", v.String())
		}
		return d.Round(2), nil
	case float64:
		return decimal.NewFromFloat(v).Round(2), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("not a number: %q", v)
		}
		return d.Round(2), nil
	default:
		return decimal.Zero, fmt.Errorf("not a number: %T", value)
	}
}

// toQuantity coerces an untyped JSON scalar to an integral count.
// Non-integral numbers are rejected rather than truncated.
func toQuantity(value any) (int64, error) {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v.String())
		}
		return integralQuantity(f)
	case float64:
		return integralQuantity(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("not an integer: %T", value)
	}
}

func integralQuantity(f float64) (int64, error) {
	rounded := math.Round(f)
	if math.Abs(f-rounded) > 1e-9 {
		return 0, fmt.Errorf("not an integer: %v", f)
	}
	return int64(rounded), nil
}

// cleanStringList trims every element and drops empties, preserving order.
func cleanStringList(values []any) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if s := strings.TrimSpace(stringOf(v)); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}
