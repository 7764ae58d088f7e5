package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) Date {
	return Date{Year: y, Month: m, Day: d}
}

func TestParseRoundTrip(t *testing.T) {
	d, err := Parse("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.February, 29), d)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = Parse("2024-13-01")
	assert.Error(t, err)
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2025, time.January))
	assert.Equal(t, 28, DaysIn(2025, time.February))
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 30, DaysIn(2025, time.April))
	assert.Equal(t, 31, DaysIn(2025, time.December))
}

func TestMonthGridLeadingBlanks(t *testing.T) {
	// 2025-06-01 is a Sunday: no leading blanks.
	grid := MonthGrid(2025, time.June)
	require.Len(t, grid, 30)
	assert.NotNil(t, grid[0])
	assert.Equal(t, 1, grid[0].Day)

	// 2025-05-01 is a Thursday: four leading blanks.
	grid = MonthGrid(2025, time.May)
	require.Len(t, grid, 4+31)
	for i := 0; i < 4; i++ {
		assert.Nil(t, grid[i])
	}
	assert.Equal(t, 1, grid[4].Day)
	assert.Equal(t, 31, grid[len(grid)-1].Day)
}

func TestYearWindow(t *testing.T) {
	years := YearWindow(2026)
	require.Len(t, years, 21)
	assert.Equal(t, 2016, years[0])
	assert.Equal(t, 2026, years[10])
	assert.Equal(t, 2036, years[20])
}

func TestNewRangeOrdersEndpoints(t *testing.T) {
	a := day(2026, time.March, 10)
	b := day(2026, time.March, 2)
	r := NewRange(a, b)
	assert.Equal(t, b, r.Start)
	assert.Equal(t, a, r.End)
	assert.False(t, r.End.Before(r.Start))
}

func TestAddMonthsRollover(t *testing.T) {
	assert.Equal(t, day(2026, time.January, 15), day(2025, time.December, 15).AddMonths(1))
	assert.Equal(t, day(2025, time.December, 15), day(2026, time.January, 15).AddMonths(-1))
	// Clamps instead of skipping into March.
	assert.Equal(t, day(2025, time.February, 28), day(2025, time.January, 31).AddMonths(1))
}

func TestClickChronologicalOrderCommitsOnSecondClick(t *testing.T) {
	m := New(Range{})
	d1 := day(2026, time.April, 3)
	d2 := day(2026, time.April, 9)

	m, committed := m.click(d1)
	require.Nil(t, committed)
	assert.Equal(t, d1, m.draftStart)
	assert.Equal(t, d1, m.draftEnd)
	assert.True(t, m.selectingEnd)

	m, committed = m.click(d2)
	require.NotNil(t, committed)
	assert.Equal(t, Range{Start: d1, End: d2}, *committed)
	assert.False(t, m.selectingEnd)
}

func TestClickReverseOrderSwapsInsteadOfInverting(t *testing.T) {
	m := New(Range{})
	earlier := day(2026, time.April, 3)
	later := day(2026, time.April, 9)

	m, committed := m.click(later)
	require.Nil(t, committed)

	// Second click before the draft start swaps and keeps selecting.
	m, committed = m.click(earlier)
	require.Nil(t, committed)
	assert.Equal(t, earlier, m.draftStart)
	assert.Equal(t, later, m.draftEnd)
	assert.True(t, m.selectingEnd)

	// Apply commits the swapped draft; the emitted range is never inverted.
	m, committed = m.apply()
	require.NotNil(t, committed)
	assert.Equal(t, Range{Start: earlier, End: later}, *committed)
	assert.False(t, committed.End.Before(committed.Start))
}

func TestEmittedRangeNeverInverted(t *testing.T) {
	dates := []Date{
		day(2026, time.January, 1),
		day(2026, time.January, 31),
		day(2026, time.February, 14),
		day(2025, time.December, 25),
	}
	for _, a := range dates {
		for _, b := range dates {
			m := New(Range{})
			m, committed := m.click(a)
			require.Nil(t, committed)
			m, committed = m.click(b)
			if committed == nil {
				m, committed = m.apply()
			}
			require.NotNil(t, committed, "pair %s/%s never committed", a, b)
			assert.False(t, committed.End.Before(committed.Start),
				"inverted range from clicks %s then %s", a, b)
		}
	}
}

func TestApplyRequiresBothDrafts(t *testing.T) {
	m := New(Range{})
	_, committed := m.apply()
	assert.Nil(t, committed)

	seeded := New(NewRange(day(2026, time.May, 1), day(2026, time.May, 7)))
	_, committed = seeded.apply()
	require.NotNil(t, committed)
	assert.Equal(t, "2026-05-01", committed.Start.String())
	assert.Equal(t, "2026-05-07", committed.End.String())
}

func TestRangeContains(t *testing.T) {
	r := NewRange(day(2026, time.March, 5), day(2026, time.March, 10))
	assert.True(t, r.Contains(day(2026, time.March, 5)))
	assert.True(t, r.Contains(day(2026, time.March, 10)))
	assert.True(t, r.Contains(day(2026, time.March, 7)))
	assert.False(t, r.Contains(day(2026, time.March, 4)))
	assert.False(t, r.Contains(day(2026, time.March, 11)))
}
