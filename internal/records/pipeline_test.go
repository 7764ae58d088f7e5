package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adithyanak/fuelbook/internal/fuelapi"
)

func sampleData() ([]fuelapi.FuelRecord, []fuelapi.Vehicle, []fuelapi.Category) {
	recs := []fuelapi.FuelRecord{
		{ID: "f1", VehicleID: "v1", Amount: 1000, Litres: 40, FuelType: "PETROL", PaymentType: "UPI"},
		{ID: "f2", VehicleID: "v1", Amount: 500, Litres: 20, FuelType: "petrol", PaymentType: "CASH"},
		{ID: "f3", VehicleID: "v2", Amount: 2000, Litres: 50, FuelType: "DIESEL", PaymentType: "UPI"},
		{ID: "f4", VehicleID: "v9", Amount: 300, Litres: 10, FuelType: "CNG", PaymentType: "CREDIT_CARD"},
	}
	vehicles := []fuelapi.Vehicle{
		{ID: "v1", Name: "Car", CategoryID: "c1"},
		{ID: "v2", Name: "Truck", CategoryID: "c2"},
	}
	categories := []fuelapi.Category{
		{ID: "c1", Name: "Personal"},
		{ID: "c2", Name: "Fleet"},
	}
	return recs, vehicles, categories
}

func TestEnrichJoinsNamesAndDefaultsToEmpty(t *testing.T) {
	recs, vehicles, categories := sampleData()
	rows := Enrich(recs, vehicles, categories)
	require.Len(t, rows, 4)

	assert.Equal(t, "Car", rows[0].VehicleName)
	assert.Equal(t, "Personal", rows[0].VehicleCategoryName)
	assert.Equal(t, "Truck", rows[2].VehicleName)
	assert.Equal(t, "Fleet", rows[2].VehicleCategoryName)

	// No matching vehicle: empty display strings, never an error.
	assert.Equal(t, "", rows[3].VehicleName)
	assert.Equal(t, "", rows[3].VehicleCategoryName)
}

func TestEnrichOrderIndependent(t *testing.T) {
	recs, vehicles, categories := sampleData()
	// Reference data arriving later is just a re-run with the same output.
	early := Enrich(recs, nil, nil)
	assert.Equal(t, "", early[0].VehicleName)
	late := Enrich(recs, vehicles, categories)
	assert.Equal(t, "Car", late[0].VehicleName)
}

func TestFilterConjunction(t *testing.T) {
	recs, vehicles, categories := sampleData()
	rows := Enrich(recs, vehicles, categories)

	byVehicle := Apply(rows, Filter{VehicleID: "v1"})
	require.Len(t, byVehicle, 2)

	byCategory := Apply(rows, Filter{CategoryID: "c2"})
	require.Len(t, byCategory, 1)
	assert.Equal(t, "f3", byCategory[0].ID)

	// Case-insensitive fuel type, combined with vehicle.
	combined := Apply(rows, Filter{VehicleID: "v1", FuelType: "PETROL"})
	require.Len(t, combined, 2)

	narrow := Apply(rows, Filter{VehicleID: "v1", FuelType: "petrol", PaymentType: "upi"})
	require.Len(t, narrow, 1)
	assert.Equal(t, "f1", narrow[0].ID)

	none := Apply(rows, Filter{VehicleID: "v2", FuelType: "CNG"})
	assert.Empty(t, none)
}

func TestFilterResetReturnsFullSet(t *testing.T) {
	recs, vehicles, categories := sampleData()
	rows := Enrich(recs, vehicles, categories)
	filtered := Apply(rows, Filter{FuelType: "DIESEL"})
	require.Len(t, filtered, 1)
	reset := Apply(rows, Filter{})
	assert.Equal(t, rows, reset)
}

func TestOptionsDeriveFromData(t *testing.T) {
	recs, vehicles, categories := sampleData()
	rows := Enrich(recs, vehicles, categories)
	fuelTypes, paymentTypes := Options(rows)
	// "petrol" and "PETROL" collapse to one case-normalised option.
	assert.Equal(t, []string{"CNG", "DIESEL", "PETROL"}, fuelTypes)
	assert.Equal(t, []string{"CASH", "CREDIT_CARD", "UPI"}, paymentTypes)
}

func TestPaginationRoundTrip(t *testing.T) {
	rows := make([]Row, 23)
	for i := range rows {
		rows[i].ID = string(rune('a' + i))
	}
	const size = 10
	pages := PageCount(len(rows), size)
	require.Equal(t, 3, pages)

	var rejoined []Row
	for page := 1; page <= pages; page++ {
		slice := Paginate(rows, page, size)
		if page < pages {
			assert.Len(t, slice, size)
		}
		rejoined = append(rejoined, slice...)
	}
	assert.Equal(t, rows, rejoined)
}

func TestPaginateBounds(t *testing.T) {
	rows := make([]Row, 5)
	assert.Nil(t, Paginate(rows, 2, 10))
	assert.Nil(t, Paginate(rows, 0, 10))
	assert.Len(t, Paginate(rows, 1, 10), 5)
	assert.Equal(t, 1, PageCount(0, 25))
	assert.Equal(t, 1, ClampPage(5, 5, 10))
	assert.Equal(t, 1, ClampPage(0, 5, 10))
	assert.Equal(t, 2, ClampPage(2, 15, 10))
}

func TestTotalsOverFilteredNotPaginatedSet(t *testing.T) {
	recs, vehicles, categories := sampleData()
	rows := Enrich(recs, vehicles, categories)

	all := Sum(rows)
	assert.InDelta(t, 3800, all.Amount, 1e-9)
	assert.InDelta(t, 120, all.Litres, 1e-9)

	filtered := Apply(rows, Filter{PaymentType: "UPI"})
	totals := Sum(filtered)
	assert.InDelta(t, 3000, totals.Amount, 1e-9)
	assert.InDelta(t, 90, totals.Litres, 1e-9)

	// Changing page or page size must not change the aggregate.
	for _, size := range PageSizes {
		for page := 1; page <= PageCount(len(filtered), size); page++ {
			_ = Paginate(filtered, page, size)
			assert.Equal(t, totals, Sum(filtered))
		}
	}
}

func TestSeqGuardDropsStaleResponses(t *testing.T) {
	var g SeqGuard
	first := g.Next()
	second := g.Next()
	assert.False(t, g.IsLatest(first))
	assert.True(t, g.IsLatest(second))
	third := g.Next()
	assert.False(t, g.IsLatest(second))
	assert.True(t, g.IsLatest(third))
}
