package order

import (
	"encoding/json"
	"strconv"
	"strings"

	"prodtrack/internal/pkg/errs"
)

// Measurement field names, used as keys in prepared updates and audit metadata.
const (
	FieldHeight = "height"
	FieldWidth  = "width"
	FieldLength = "length"
	FieldWeight = "weight"
)

// Normalize coerces untyped numeric-like input into a canonical numeric or null
// value. nil and the empty string normalize to nil; numeric strings and numbers
// normalize to their value; anything else fails with InvalidMeasurementError,
// and the caller decides whether to reject the request or fall back to the
// previously stored value.
//
// Every measurement write path goes through this one function, single-item and
// bulk alike.
func Normalize(fieldName string, raw any) (*float64, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, errs.NewInvalidMeasurementError(fieldName, raw)
		}
		return &parsed, nil
	case float64:
		return &v, nil
	case float32:
		f := float64(v)
		return &f, nil
	case int:
		f := float64(v)
		return &f, nil
	case int64:
		f := float64(v)
		return &f, nil
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil, errs.NewInvalidMeasurementError(fieldName, raw)
		}
		return &parsed, nil
	default:
		return nil, errs.NewInvalidMeasurementError(fieldName, raw)
	}
}

// Field is a three-state measurement value: absent, explicit null, or numeric.
// The distinction between absent and null is a hard invariant: an omitted field
// leaves the stored value untouched, an explicit null clears it.
type Field struct {
	present bool
	value   *float64
}

// OmittedField returns the absent state: the stored value stays untouched.
func OmittedField() Field {
	return Field{}
}

// NullField returns the explicit-null state: the stored value is cleared.
func NullField() Field {
	return Field{present: true}
}

// NumericField returns the value state.
func NumericField(v float64) Field {
	return Field{present: true, value: &v}
}

// NormalizeField normalizes raw input into a present Field.
// It is used for fields the caller explicitly supplied; omitted fields are
// represented by OmittedField and never pass through here.
func NormalizeField(fieldName string, raw any) (Field, error) {
	value, err := Normalize(fieldName, raw)
	if err != nil {
		return Field{}, err
	}
	return Field{present: true, value: value}, nil
}

// Present reports whether the caller explicitly supplied this field.
func (f Field) Present() bool {
	return f.present
}

// Value returns the normalized numeric value, nil for the null state.
// Only meaningful when Present is true.
func (f Field) Value() *float64 {
	return f.value
}

// MeasurementPatch is a partial update of an item's measurement fields.
// Each numeric field is three-state; unit tags are plain optional strings.
type MeasurementPatch struct {
	Height Field
	Width  Field
	Length Field
	Weight Field

	MeasurementUnit *string
	WeightUnit      *string
}

// PrepareMeasurementUpdate converts a patch into the set of numeric fields to
// write, keyed by field name. Only fields the caller explicitly supplied are
// included; a null entry clears the stored value.
func PrepareMeasurementUpdate(patch MeasurementPatch) map[string]*float64 {
	fields := make(map[string]*float64)

	include := func(name string, f Field) {
		if f.Present() {
			fields[name] = f.Value()
		}
	}

	include(FieldHeight, patch.Height)
	include(FieldWidth, patch.Width)
	include(FieldLength, patch.Length)
	include(FieldWeight, patch.Weight)

	return fields
}
