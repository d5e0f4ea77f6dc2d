package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", formatMoney(0))
	assert.Equal(t, "$7.50", formatMoney(7.5))
	assert.Equal(t, "$999.99", formatMoney(999.99))
	assert.Equal(t, "$1,000.00", formatMoney(1000))
	assert.Equal(t, "$1,234,567.50", formatMoney(1234567.5))
	assert.Equal(t, "-$250.25", formatMoney(-250.25))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0.0%", formatPercent(0))
	assert.Equal(t, "50.0%", formatPercent(0.5))
	assert.Equal(t, "87.5%", formatPercent(0.875))
	assert.Equal(t, "100.0%", formatPercent(1))
}
