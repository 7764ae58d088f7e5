package daterange

import "time"

// DaysIn returns the day count of a month via day-zero normalisation of the
// following month; leap years fall out of the rollover for free.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// MonthGrid lays out a month as calendar cells: leading nils equal to the
// weekday index of day 1 (Sunday = 0), then one cell per day.
func MonthGrid(year int, month time.Month) []*Date {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	cells := make([]*Date, 0, 42)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, nil)
	}
	for day := 1; day <= DaysIn(year, month); day++ {
		d := Date{Year: year, Month: month, Day: day}
		cells = append(cells, &d)
	}
	return cells
}

// YearWindow is the quick-picker's year list: ten years either side of the
// displayed year.
func YearWindow(year int) []int {
	years := make([]int, 0, 21)
	for y := year - 10; y <= year+10; y++ {
		years = append(years, y)
	}
	return years
}
