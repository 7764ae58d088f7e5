package fuelapi

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// This file is the normalisation boundary for the upstream API's duck-typed
// payloads. All alternate-field fallbacks live here, one function per entity;
// consumers only ever see the strict types from types.go.

// flexString resolves the first present raw value to a string, accepting both
// JSON strings and bare numbers (ids sometimes arrive numeric).
func flexString(raws ...json.RawMessage) string {
	for _, raw := range raws {
		if len(raw) == 0 || isNull(raw) {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
			continue
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			return n.String()
		}
	}
	return ""
}

// flexFloat resolves the first present raw value to a float, accepting both
// numbers and numeric strings. Unparseable values coerce to 0 rather than
// propagating a failure.
func flexFloat(raws ...json.RawMessage) float64 {
	for _, raw := range raws {
		if len(raw) == 0 || isNull(raw) {
			continue
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return f
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return f
			}
		}
		return 0
	}
	return 0
}

// flexTime accepts the upstream's two date spellings: epoch-like numbers
// (possibly as strings) and ISO timestamps or calendar dates. Unparseable
// dates resolve to the zero time, which renders as an empty cell.
func flexTime(raws ...json.RawMessage) time.Time {
	for _, raw := range raws {
		if len(raw) == 0 || isNull(raw) {
			continue
		}
		var n int64
		if err := json.Unmarshal(raw, &n); err == nil {
			return epochTime(n)
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return epochTime(n)
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
		return time.Time{}
	}
	return time.Time{}
}

// epochTime treats magnitudes above 1e11 as milliseconds, otherwise seconds.
func epochTime(n int64) time.Time {
	if n > 100_000_000_000 || n < -100_000_000_000 {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}

func normalizeFuelRecord(w wireFuelRecord) FuelRecord {
	vehicleID := flexString(w.VehicleID)
	if vehicleID == "" && w.Vehicle != nil {
		vehicleID = flexString(w.Vehicle.ID, w.Vehicle.AltID)
	}
	fuelType := w.FuelType
	if fuelType == "" {
		fuelType = w.AltType
	}
	return FuelRecord{
		ID:          flexString(w.ID, w.AltID),
		VehicleID:   vehicleID,
		Date:        flexTime(w.Date, w.CreatedAt),
		Amount:      flexFloat(w.Amount, w.Price, w.Cost),
		Litres:      flexFloat(w.Litres, w.Liters, w.Volume, w.Quantity),
		FuelType:    fuelType,
		PaymentType: w.PaymentType,
	}
}

func normalizeVehicle(w wireVehicle) Vehicle {
	name := w.Name
	if name == "" {
		name = w.AltName
	}
	return Vehicle{
		ID:            flexString(w.ID, w.AltID, w.VehicleID),
		Name:          name,
		CategoryID:    flexString(w.CategoryID, w.AltCategoryID),
		VehicleNumber: w.VehicleNumber,
	}
}

func normalizeCategory(w wireCategory) Category {
	return Category{
		ID:          flexString(w.ID, w.AltID, w.CategoryID),
		Name:        w.Name,
		Description: w.Description,
	}
}

func normalizeServiceRecord(w wireServiceRecord) ServiceRecord {
	return ServiceRecord{
		ID:          flexString(w.ID, w.AltID),
		VehicleID:   flexString(w.VehicleID),
		Date:        flexTime(w.Date, w.CreatedAt),
		Amount:      flexFloat(w.Amount, w.Price, w.Cost),
		Description: w.Description,
	}
}

func normalizeAnalyticsPoint(w wireAnalyticsPoint) AnalyticsPoint {
	label := w.Label
	if label == "" {
		label = w.Name
	}
	if label == "" {
		label = w.Date
	}
	return AnalyticsPoint{
		Label: label,
		Value: flexFloat(w.Value, w.Amount, w.Total, w.AvgPrice),
	}
}
