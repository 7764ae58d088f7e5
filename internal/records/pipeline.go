// Package records implements the records screen's client-side pipeline:
// enrich fetched fuel records against reference data, filter, paginate and
// total them. All stages are pure so arrival order of the underlying fetches
// does not matter; enrichment simply re-runs when either input changes.
package records

import (
	"sort"
	"strings"

	"github.com/adithyanak/fuelbook/internal/fuelapi"
)

// Row is a fuel record joined with display-ready reference names. Missing
// lookups resolve to empty strings, never an error.
type Row struct {
	fuelapi.FuelRecord
	VehicleName         string
	VehicleCategoryID   string
	VehicleCategoryName string
}

// Enrich left-joins records against vehicle and category lookups keyed by id.
func Enrich(recs []fuelapi.FuelRecord, vehicles []fuelapi.Vehicle, categories []fuelapi.Category) []Row {
	vehiclesByID := make(map[string]fuelapi.Vehicle, len(vehicles))
	for _, v := range vehicles {
		if v.ID != "" {
			vehiclesByID[v.ID] = v
		}
	}
	categoriesByID := make(map[string]fuelapi.Category, len(categories))
	for _, c := range categories {
		if c.ID != "" {
			categoriesByID[c.ID] = c
		}
	}

	rows := make([]Row, 0, len(recs))
	for _, rec := range recs {
		row := Row{FuelRecord: rec}
		if v, ok := vehiclesByID[rec.VehicleID]; ok {
			row.VehicleName = v.Name
			row.VehicleCategoryID = v.CategoryID
			if c, ok := categoriesByID[v.CategoryID]; ok {
				row.VehicleCategoryName = c.Name
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Filter is a conjunction of equality predicates. Empty values are
// unconstrained dimensions. Fuel and payment types match case-insensitively.
type Filter struct {
	VehicleID   string
	CategoryID  string
	FuelType    string
	PaymentType string
}

func (f Filter) IsZero() bool {
	return f == Filter{}
}

func (f Filter) matches(row Row) bool {
	if f.VehicleID != "" && row.VehicleID != f.VehicleID {
		return false
	}
	if f.CategoryID != "" && row.VehicleCategoryID != f.CategoryID {
		return false
	}
	if f.FuelType != "" && !strings.EqualFold(row.FuelType, f.FuelType) {
		return false
	}
	if f.PaymentType != "" && !strings.EqualFold(row.PaymentType, f.PaymentType) {
		return false
	}
	return true
}

// Apply returns the subset of rows satisfying every set predicate. A zero
// filter returns the input unchanged.
func Apply(rows []Row, f Filter) []Row {
	if f.IsZero() {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if f.matches(row) {
			out = append(out, row)
		}
	}
	return out
}

// Options derives the filterable fuel and payment types as the distinct,
// case-normalised values actually present in the unfiltered set, so the
// filter UI always reflects real data rather than a static enum.
func Options(rows []Row) (fuelTypes, paymentTypes []string) {
	return distinctUpper(rows, func(r Row) string { return r.FuelType }),
		distinctUpper(rows, func(r Row) string { return r.PaymentType })
}

func distinctUpper(rows []Row, field func(Row) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 4)
	for _, row := range rows {
		v := strings.ToUpper(strings.TrimSpace(field(row)))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// PageSizes are the selectable page sizes.
var PageSizes = []int{10, 25, 50, 100}

// PageCount is ceil(n/size), never below 1 so an empty result still has a
// current page.
func PageCount(n, size int) int {
	if size <= 0 {
		return 1
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage keeps a 1-indexed page within the valid window for n rows.
func ClampPage(page, n, size int) int {
	if page < 1 {
		return 1
	}
	if last := PageCount(n, size); page > last {
		return last
	}
	return page
}

// Paginate slices out the 1-indexed page. Pages out of range return an empty
// slice rather than panicking.
func Paginate(rows []Row, page, size int) []Row {
	if size <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(rows) {
		return nil
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// Totals are the running aggregates shown under the table. They are computed
// over the filtered set, never the current page.
type Totals struct {
	Amount float64
	Litres float64
}

func Sum(rows []Row) Totals {
	var t Totals
	for _, row := range rows {
		t.Amount += row.Amount
		t.Litres += row.Litres
	}
	return t
}

// SeqGuard tags fetches with a monotonically increasing sequence number so a
// slow response dispatched earlier cannot overwrite a later one; responses
// that are not the most recent are discarded by the caller.
type SeqGuard struct {
	latest int
}

func (g *SeqGuard) Next() int {
	g.latest++
	return g.latest
}

func (g *SeqGuard) IsLatest(seq int) bool {
	return seq == g.latest
}
