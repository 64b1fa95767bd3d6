// Package convert translates between native values and their wire
// representations, keyed by declared column type. The gateway binds
// positional parameters through ToWire; FromWire interprets values read back
// from a row cursor.
package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/relmap/relmap/internal/schema"
)

// DateTimeLayout is the wire format for DATETIME values.
const DateTimeLayout = "2006-01-02 15:04:05"

// Converter is a bidirectional value converter. The zero value is ready to use.
type Converter struct{}

// NewConverter creates a converter
func NewConverter() *Converter {
	return &Converter{}
}

// ToWire converts a native value to its wire representation for the given
// column type. Unknown combinations pass through unchanged.
func (c *Converter) ToWire(t schema.SQLType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch t {
	case schema.TypeDateTime:
		tv, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("expected time.Time for %s, got %T", t, v)
		}
		return tv.Format(DateTimeLayout), nil

	case schema.TypeBool:
		bv, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool for %s, got %T", t, v)
		}
		if bv {
			return int64(1), nil
		}
		return int64(0), nil

	case schema.TypeSet:
		sv, ok := v.([]string)
		if !ok {
			return nil, fmt.Errorf("expected []string for %s, got %T", t, v)
		}
		return strings.Join(sv, ","), nil
	}

	return v, nil
}

// FromWire converts a wire value back to its native representation for the
// given column type. Unknown combinations pass through unchanged.
func (c *Converter) FromWire(t schema.SQLType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch t {
	case schema.TypeDateTime:
		s, err := wireString(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t, err)
		}
		tv, err := time.Parse(DateTimeLayout, s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t, err)
		}
		return tv, nil

	case schema.TypeBool:
		switch bv := v.(type) {
		case bool:
			return bv, nil
		case int64:
			return bv != 0, nil
		default:
			s, err := wireString(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", t, err)
			}
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", t, err)
			}
			return n != 0, nil
		}

	case schema.TypeSet:
		s, err := wireString(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t, err)
		}
		if s == "" {
			return []string{}, nil
		}
		return strings.Split(s, ","), nil
	}

	return v, nil
}

// wireString normalizes the driver's textual representations
func wireString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", fmt.Errorf("expected textual value, got %T", v)
	}
}
