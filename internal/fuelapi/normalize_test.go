package fuelapi

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWireFuel(t *testing.T, body string) wireFuelRecord {
	t.Helper()
	var w wireFuelRecord
	require.NoError(t, json.Unmarshal([]byte(body), &w))
	return w
}

func TestNormalizeFuelRecordFieldFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want FuelRecord
	}{
		{
			name: "canonical fields",
			body: `{"id":"f1","vehicleId":"v1","amount":1000,"litres":40,"fuelType":"PETROL","paymentType":"UPI"}`,
			want: FuelRecord{ID: "f1", VehicleID: "v1", Amount: 1000, Litres: 40, FuelType: "PETROL", PaymentType: "UPI"},
		},
		{
			name: "mongo id and price/volume aliases",
			body: `{"_id":"f2","vehicle":{"_id":"v2"},"price":"750.5","volume":"30","type":"DIESEL","paymentType":"CASH"}`,
			want: FuelRecord{ID: "f2", VehicleID: "v2", Amount: 750.5, Litres: 30, FuelType: "DIESEL", PaymentType: "CASH"},
		},
		{
			name: "cost and quantity aliases",
			body: `{"id":"f3","vehicleId":"v3","cost":200,"quantity":8.5}`,
			want: FuelRecord{ID: "f3", VehicleID: "v3", Amount: 200, Litres: 8.5},
		},
		{
			name: "non-numeric amount coerces to zero",
			body: `{"id":"f4","vehicleId":"v4","amount":"n/a","liters":"bad"}`,
			want: FuelRecord{ID: "f4", VehicleID: "v4", Amount: 0, Litres: 0},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeFuelRecord(mustWireFuel(t, tc.body))
			got.Date = time.Time{}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeFuelRecordDates(t *testing.T) {
	iso := normalizeFuelRecord(mustWireFuel(t, `{"id":"a","date":"2026-01-05T10:30:00Z"}`))
	assert.Equal(t, time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC), iso.Date.UTC())

	calendarDay := normalizeFuelRecord(mustWireFuel(t, `{"id":"b","date":"2026-01-05"}`))
	assert.Equal(t, 2026, calendarDay.Date.Year())
	assert.Equal(t, time.January, calendarDay.Date.Month())

	epochMillis := normalizeFuelRecord(mustWireFuel(t, `{"id":"c","date":"1767610200000"}`))
	assert.Equal(t, int64(1767610200), epochMillis.Date.Unix())

	epochNumber := normalizeFuelRecord(mustWireFuel(t, `{"id":"d","date":1767610200}`))
	assert.Equal(t, int64(1767610200), epochNumber.Date.Unix())

	garbage := normalizeFuelRecord(mustWireFuel(t, `{"id":"e","date":"not a date"}`))
	assert.True(t, garbage.Date.IsZero())

	missing := normalizeFuelRecord(mustWireFuel(t, `{"id":"f"}`))
	assert.True(t, missing.Date.IsZero())
}

func TestNormalizeFuelRecordFallsBackToCreatedAt(t *testing.T) {
	got := normalizeFuelRecord(mustWireFuel(t, `{"id":"a","createdAt":"2026-02-01T00:00:00Z"}`))
	assert.Equal(t, 2026, got.Date.Year())
	assert.Equal(t, time.February, got.Date.UTC().Month())
}

func TestCostPerLitreDerived(t *testing.T) {
	r := FuelRecord{Amount: 1000, Litres: 40}
	assert.InDelta(t, 25.0, r.CostPerLitre(), 1e-9)
	assert.Zero(t, FuelRecord{Amount: 1000}.CostPerLitre())
}

func TestNormalizeVehicle(t *testing.T) {
	var w wireVehicle
	require.NoError(t, json.Unmarshal([]byte(
		`{"_id":"v1","vehicleName":"Swift","vehicleCategoryId":"c1","vehicleNumber":"KA 01 AB 1234"}`), &w))
	got := normalizeVehicle(w)
	assert.Equal(t, Vehicle{ID: "v1", Name: "Swift", CategoryID: "c1", VehicleNumber: "KA 01 AB 1234"}, got)

	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"name":"Bike"}`), &w))
	got = normalizeVehicle(w)
	assert.Equal(t, "7", got.ID)
	assert.Equal(t, "Bike", got.Name)
}

func TestNormalizeCategory(t *testing.T) {
	var w wireCategory
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"c1","name":"Personal","description":"daily use"}`), &w))
	assert.Equal(t, Category{ID: "c1", Name: "Personal", Description: "daily use"}, normalizeCategory(w))
}

func TestNormalizeAnalyticsPoint(t *testing.T) {
	var w wireAnalyticsPoint
	require.NoError(t, json.Unmarshal([]byte(`{"name":"PETROL","total":"420.5"}`), &w))
	got := normalizeAnalyticsPoint(w)
	assert.Equal(t, "PETROL", got.Label)
	assert.InDelta(t, 420.5, got.Value, 1e-9)

	// Fresh struct: Unmarshal leaves fields absent from the payload untouched.
	w = wireAnalyticsPoint{}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2026-01","avgPrice":102.3}`), &w))
	got = normalizeAnalyticsPoint(w)
	assert.Equal(t, "2026-01", got.Label)
	assert.InDelta(t, 102.3, got.Value, 1e-9)
}

func TestValidatePayload(t *testing.T) {
	valid := FuelRecordPayload{
		VehicleID: "v1", Amount: 1000, Litres: 40,
		Date: "2026-01-05T00:00:00Z", FuelType: "PETROL", PaymentType: "UPI",
	}
	assert.NoError(t, ValidatePayload(valid))

	missingVehicle := valid
	missingVehicle.VehicleID = ""
	err := ValidatePayload(missingVehicle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vehicle")

	zeroAmount := valid
	zeroAmount.Amount = 0
	assert.Error(t, ValidatePayload(zeroAmount))

	negativeLitres := valid
	negativeLitres.Litres = -1
	err = ValidatePayload(negativeLitres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "volume")
}
