package fuelapi

import (
	"encoding/json"
	"time"
)

// Fuel and payment enums as the API spells them. The records screen derives
// its filter options from fetched data, not from these lists; they exist for
// the create form's dropdowns.
var (
	FuelTypes    = []string{"PETROL", "DIESEL", "CNG", "EV"}
	PaymentTypes = []string{"UPI", "CASH", "CREDIT_CARD", "DEBIT_CARD"}
)

// FuelRecord is the strict client-side representation of one fill-up.
type FuelRecord struct {
	ID          string
	VehicleID   string
	Date        time.Time
	Amount      float64
	Litres      float64
	FuelType    string
	PaymentType string
}

// CostPerLitre is always derived, never independently edited.
func (r FuelRecord) CostPerLitre() float64 {
	if r.Litres <= 0 {
		return 0
	}
	return r.Amount / r.Litres
}

type Vehicle struct {
	ID            string
	Name          string
	CategoryID    string
	VehicleNumber string
}

type Category struct {
	ID          string
	Name        string
	Description string
}

type ServiceRecord struct {
	ID          string
	VehicleID   string
	Date        time.Time
	Amount      float64
	Description string
}

type Preferences struct {
	DefaultVehicleID   string `json:"defaultVehicleId,omitempty"`
	DefaultFuelType    string `json:"defaultFuelType,omitempty"`
	DefaultPaymentType string `json:"defaultPaymentType,omitempty"`
}

// AnalyticsPoint is one bar of an analytics series.
type AnalyticsPoint struct {
	Label string
	Value float64
}

// User is the profile returned by the login exchange.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl"`
}

// Wire types mirror the upstream payloads, which are loosely specified: ids
// and numeric fields appear under several alternate names and numbers may
// arrive as strings. Raw fields are resolved in normalize.go; nothing outside
// this package sees them.

type wireFuelRecord struct {
	ID          json.RawMessage `json:"id"`
	AltID       json.RawMessage `json:"_id"`
	VehicleID   json.RawMessage `json:"vehicleId"`
	Vehicle     *wireRef        `json:"vehicle"`
	Date        json.RawMessage `json:"date"`
	CreatedAt   json.RawMessage `json:"createdAt"`
	Amount      json.RawMessage `json:"amount"`
	Price       json.RawMessage `json:"price"`
	Cost        json.RawMessage `json:"cost"`
	Litres      json.RawMessage `json:"litres"`
	Liters      json.RawMessage `json:"liters"`
	Volume      json.RawMessage `json:"volume"`
	Quantity    json.RawMessage `json:"quantity"`
	FuelType    string          `json:"fuelType"`
	AltType     string          `json:"type"`
	PaymentType string          `json:"paymentType"`
}

type wireRef struct {
	ID    json.RawMessage `json:"id"`
	AltID json.RawMessage `json:"_id"`
}

type wireVehicle struct {
	ID            json.RawMessage `json:"id"`
	AltID         json.RawMessage `json:"_id"`
	VehicleID     json.RawMessage `json:"vehicleId"`
	Name          string          `json:"name"`
	AltName       string          `json:"vehicleName"`
	CategoryID    json.RawMessage `json:"categoryId"`
	AltCategoryID json.RawMessage `json:"vehicleCategoryId"`
	VehicleNumber string          `json:"vehicleNumber"`
}

type wireCategory struct {
	ID          json.RawMessage `json:"id"`
	AltID       json.RawMessage `json:"_id"`
	CategoryID  json.RawMessage `json:"categoryId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
}

type wireServiceRecord struct {
	ID          json.RawMessage `json:"id"`
	AltID       json.RawMessage `json:"_id"`
	VehicleID   json.RawMessage `json:"vehicleId"`
	Date        json.RawMessage `json:"date"`
	CreatedAt   json.RawMessage `json:"createdAt"`
	Amount      json.RawMessage `json:"amount"`
	Price       json.RawMessage `json:"price"`
	Cost        json.RawMessage `json:"cost"`
	Description string          `json:"description"`
}

type wireAnalyticsPoint struct {
	Label    string          `json:"label"`
	Name     string          `json:"name"`
	Date     string          `json:"date"`
	Value    json.RawMessage `json:"value"`
	Amount   json.RawMessage `json:"amount"`
	Total    json.RawMessage `json:"total"`
	AvgPrice json.RawMessage `json:"avgPrice"`
}

// wireList tolerates both bare arrays and {items: [...]} list payloads.
type wireList[T any] struct {
	Items []T `json:"items"`
}

func decodeItems[T any](raw json.RawMessage) []T {
	if len(raw) == 0 {
		return nil
	}
	var direct []T
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct
	}
	var wrapped wireList[T]
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.Items
	}
	// Malformed list payloads degrade to empty, never to an error.
	return nil
}
