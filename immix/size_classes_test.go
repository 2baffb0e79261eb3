package immix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joshuapare/immixkit/internal/format"
)

func TestSizeClassConfig_ClassFor(t *testing.T) {
	tests := []struct {
		cfg  SizeClassConfig
		size uintptr
		want SizeClass
	}{
		{ConfigLine, 1, Small},
		{ConfigLine, ls, Small},
		{ConfigLine, ls + 1, Medium},
		{ConfigLine, format.CursorStartOffset, Medium},
		{ConfigLine, format.CursorStartOffset + 1, Large},
		{ConfigQuarterBlock, format.BlockSize / 4, Medium},
		{ConfigQuarterBlock, format.BlockSize/4 + 1, Large},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cfg.ClassFor(tt.size), "%s: size %d", tt.cfg, tt.size)
	}
}

func TestSizeClassConfig_Valid(t *testing.T) {
	assert.True(t, ConfigLine.valid())
	assert.True(t, ConfigQuarterBlock.valid())
	assert.False(t, SizeClassConfig{SmallMax: 0, MediumMax: 100}.valid())
	assert.False(t, SizeClassConfig{SmallMax: 200, MediumMax: 100}.valid())
	assert.False(t, SizeClassConfig{SmallMax: 8, MediumMax: format.BlockSize}.valid())
}

func TestSizeClass_String(t *testing.T) {
	assert.Equal(t, "small", Small.String())
	assert.Equal(t, "medium", Medium.String())
	assert.Equal(t, "large", Large.String())
	assert.Equal(t, "SizeClass(7)", SizeClass(7).String())
}
