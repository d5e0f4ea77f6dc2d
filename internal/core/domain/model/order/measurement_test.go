package order_test

import (
	"encoding/json"
	"testing"

	"prodtrack/internal/core/domain/model/order"
	"prodtrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("nil_and_empty_string_normalize_to_null", func(t *testing.T) {
		for name, raw := range map[string]any{
			"nil":        nil,
			"empty":      "",
			"whitespace": "   ",
		} {
			t.Run(name, func(t *testing.T) {
				value, err := order.Normalize(order.FieldHeight, raw)
				require.NoError(t, err)
				assert.Nil(t, value)
			})
		}
	})

	t.Run("numeric_strings_parse", func(t *testing.T) {
		value, err := order.Normalize(order.FieldHeight, "12.5")

		require.NoError(t, err)
		require.NotNil(t, value)
		assert.InEpsilon(t, 12.5, *value, 1e-9)
	})

	t.Run("numbers_pass_through", func(t *testing.T) {
		for name, raw := range map[string]any{
			"float64":     42.25,
			"float32":     float32(42.25),
			"int":         42,
			"int64":       int64(42),
			"json_number": json.Number("42.25"),
		} {
			t.Run(name, func(t *testing.T) {
				value, err := order.Normalize(order.FieldWeight, raw)
				require.NoError(t, err)
				require.NotNil(t, value)
			})
		}
	})

	t.Run("non_numeric_input_fails", func(t *testing.T) {
		for name, raw := range map[string]any{
			"letters":   "abc",
			"mixed":     "12abc",
			"bool":      true,
			"slice":     []int{1},
			"bad_jsonn": json.Number("abc"),
		} {
			t.Run(name, func(t *testing.T) {
				_, err := order.Normalize(order.FieldLength, raw)
				require.ErrorIs(t, err, errs.ErrInvalidMeasurement)
			})
		}
	})
}

func TestNormalizeField(t *testing.T) {
	t.Run("null_input_yields_present_null_field", func(t *testing.T) {
		f, err := order.NormalizeField(order.FieldHeight, nil)

		require.NoError(t, err)
		assert.True(t, f.Present())
		assert.Nil(t, f.Value())
	})

	t.Run("numeric_input_yields_value_field", func(t *testing.T) {
		f, err := order.NormalizeField(order.FieldHeight, "10")

		require.NoError(t, err)
		assert.True(t, f.Present())
		require.NotNil(t, f.Value())
		assert.InEpsilon(t, 10.0, *f.Value(), 1e-9)
	})

	t.Run("invalid_input_propagates", func(t *testing.T) {
		_, err := order.NormalizeField(order.FieldHeight, "tall")
		require.ErrorIs(t, err, errs.ErrInvalidMeasurement)
	})
}

func TestPrepareMeasurementUpdate(t *testing.T) {
	t.Run("omitted_field_is_excluded", func(t *testing.T) {
		fields := order.PrepareMeasurementUpdate(order.MeasurementPatch{
			Height: order.OmittedField(),
		})

		_, ok := fields[order.FieldHeight]
		assert.False(t, ok)
		assert.Empty(t, fields)
	})

	t.Run("explicit_null_clears_the_field", func(t *testing.T) {
		fields := order.PrepareMeasurementUpdate(order.MeasurementPatch{
			Height: order.NullField(),
		})

		value, ok := fields[order.FieldHeight]
		require.True(t, ok)
		assert.Nil(t, value)
	})

	t.Run("value_field_sets_the_field", func(t *testing.T) {
		fields := order.PrepareMeasurementUpdate(order.MeasurementPatch{
			Height: order.NumericField(10),
		})

		value, ok := fields[order.FieldHeight]
		require.True(t, ok)
		require.NotNil(t, value)
		assert.InEpsilon(t, 10.0, *value, 1e-9)
	})

	t.Run("all_four_fields_are_independent", func(t *testing.T) {
		fields := order.PrepareMeasurementUpdate(order.MeasurementPatch{
			Height: order.NumericField(1),
			Width:  order.NullField(),
			Length: order.NumericField(3),
			// Weight omitted.
		})

		assert.Len(t, fields, 3)
		assert.NotNil(t, fields[order.FieldHeight])
		assert.Nil(t, fields[order.FieldWidth])
		assert.NotNil(t, fields[order.FieldLength])
		_, hasWeight := fields[order.FieldWeight]
		assert.False(t, hasWeight)
	})
}
