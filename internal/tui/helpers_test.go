package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adithyanak/fuelbook/internal/daterange"
)

func TestCycleValueWrapsThroughEmpty(t *testing.T) {
	opts := []string{"PETROL", "DIESEL"}

	assert.Equal(t, "PETROL", cycleValue("", opts, 1))
	assert.Equal(t, "DIESEL", cycleValue("PETROL", opts, 1))
	assert.Equal(t, "", cycleValue("DIESEL", opts, 1))
	assert.Equal(t, "DIESEL", cycleValue("", opts, -1))
}

func TestCycleValueMatchesCaseInsensitively(t *testing.T) {
	opts := []string{"PETROL", "DIESEL"}
	assert.Equal(t, "DIESEL", cycleValue("petrol", opts, 1))
}

func TestScrollOffsetKeepsCursorVisible(t *testing.T) {
	assert.Equal(t, 0, scrollOffset(0, 0, 5))
	assert.Equal(t, 0, scrollOffset(4, 0, 5))
	assert.Equal(t, 1, scrollOffset(5, 0, 5))
	assert.Equal(t, 3, scrollOffset(3, 7, 5))
}

func TestInitialsFor(t *testing.T) {
	assert.Equal(t, "SA", initialsFor("Sunny Anand"))
	assert.Equal(t, "S", initialsFor("Sunny"))
	assert.Equal(t, "SK", initialsFor("Sunny Kumar Anand Krish"))
	assert.Equal(t, "?", initialsFor("   "))
}

func TestAvatarColorForIsStable(t *testing.T) {
	first := avatarColorFor("user-123")
	second := avatarColorFor("user-123")
	assert.Equal(t, first, second)
}

func TestBarForScalesAgainstMax(t *testing.T) {
	assert.Equal(t, "", barFor(0, 100, 10))
	assert.Equal(t, "", barFor(50, 0, 10))
	assert.Len(t, []rune(barFor(100, 100, 10)), 10)
	assert.Len(t, []rune(barFor(50, 100, 10)), 5)
	// Non-zero values always render at least one cell.
	assert.Len(t, []rune(barFor(1, 1000, 10)), 1)
}

func TestRangeSettingRoundTrip(t *testing.T) {
	r := daterange.NewRange(
		daterange.Date{Year: 2025, Month: 3, Day: 1},
		daterange.Date{Year: 2025, Month: 5, Day: 31},
	)
	parsed, err := parseRangeSetting(formatRangeSetting(r))
	require.NoError(t, err)
	assert.Equal(t, r, parsed)
}

func TestParseRangeSettingRejectsGarbage(t *testing.T) {
	_, err := parseRangeSetting("2025-03-01")
	assert.Error(t, err)

	_, err = parseRangeSetting("2025-03-01..notadate")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactlyten", truncate("exactlyten", 10))
	assert.Equal(t, "toolongfo…", truncate("toolongforthis", 10))
}

func TestTruncateCountsRunesNotBytes(t *testing.T) {
	// 10 runes, more than 10 bytes; must not be cut.
	assert.Equal(t, "ñandú car…", truncate("ñandú carrier", 10))
	assert.Equal(t, "日本車", truncate("日本車", 5))
	assert.Equal(t, "日本車両セ…", truncate("日本車両セダン", 6))
}
