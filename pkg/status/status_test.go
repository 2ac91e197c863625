package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestKnownStatuses verifies the fixed lookup tables.
func TestKnownStatuses(t *testing.T) {
	tag := OrderStatus("CREATED")
	assert.Equal(t, "Created", tag.Label)
	assert.Equal(t, "#E6F7D9", tag.Bg)
	assert.Equal(t, "#389E0D", tag.Fg)

	tag = ImportStatus("FAILED")
	assert.Equal(t, "Failed", tag.Label)
	assert.Equal(t, "#F5222D", tag.Fg)

	tag = DealerStatus("Suspended")
	assert.Equal(t, "Suspended", tag.Label)

	tag = ProductType("Aftermarket")
	assert.Equal(t, "Aftermarket", tag.Label)
}

// TestUnknownValueFallsBack verifies unknown enum values render the neutral
// style with the raw value as label instead of erroring.
func TestUnknownValueFallsBack(t *testing.T) {
	tag := OrderStatus("SHIPPED_TO_MOON")
	assert.Equal(t, "SHIPPED_TO_MOON", tag.Label)
	assert.Equal(t, neutral.Bg, tag.Bg)
	assert.Equal(t, neutral.Fg, tag.Fg)

	tag = ImportStatus("")
	assert.Equal(t, "—", tag.Label)

	tag = ImportType("FIRMWARE")
	assert.Equal(t, "FIRMWARE", tag.Label)
	assert.Equal(t, neutral.Fg, tag.Fg)
}

// TestActiveBool verifies the boolean tag helper.
func TestActiveBool(t *testing.T) {
	assert.Equal(t, "Active", Active(true).Label)
	assert.Equal(t, "Inactive", Active(false).Label)
}

// TestRenderContainsLabel verifies rendering never loses the label text.
func TestRenderContainsLabel(t *testing.T) {
	out := OrderStatus("PROCESSING").Render()
	assert.Contains(t, out, "Processing")
}
