package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "R$ 12.345,50", FormatCurrency(12345.5))
	assert.Equal(t, "R$ 0,00", FormatCurrency(0))
	assert.Equal(t, "-R$ 3,50", FormatCurrency(-3.5))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "3,50", FormatQuantity("3.5"))
	assert.Equal(t, "1.234,00", FormatQuantity("1234"))
	assert.Equal(t, "0,00", FormatQuantity(""))
	assert.Equal(t, "0,00", FormatQuantity("abc"))
}
