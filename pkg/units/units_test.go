package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertSameUnit(t *testing.T) {
	for _, u := range []string{"g", "kg", "count", "tbsp", ""} {
		assert.Equal(t, 42.5, Convert(42.5, u, u), u)
	}
}

func TestConvertTable(t *testing.T) {
	assert.Equal(t, 1.0, Convert(1000, "g", "kg"))
	assert.Equal(t, 1000.0, Convert(1, "kg", "g"))
	assert.Equal(t, 0.25, Convert(250, "ml", "l"))
	assert.Equal(t, 2000.0, Convert(2, "l", "ml"))
}

func TestConvertIgnoresCase(t *testing.T) {
	assert.Equal(t, 1000.0, Convert(1, "L", "ml"))
	assert.Equal(t, 3.0, Convert(3, "KG", "kg"))
}

func TestConvertUnsupportedIsNoOp(t *testing.T) {
	assert.Equal(t, 5.0, Convert(5, "g", "count"))
	assert.Equal(t, 5.0, Convert(5, "kg", "l"))
	assert.False(t, Supported("g", "count"))
	assert.True(t, Supported("G", "kg"))
	assert.True(t, Supported("cup", "cup"))
}
