package models

import "time"

// OilChangeRecord is one completed service visit with vehicle, fluid and
// filter details. Records live in the oilChanges sub-collection of their
// lubricenter and are the unit counted against the subscription quota.
type OilChangeRecord struct {
	ID            string `json:"id" firestore:"-"` // Generated at creation
	LubricenterID string `json:"lubricenterId" firestore:"lubricenterId"`

	// Customer and vehicle
	CustomerName  string `json:"customerName" firestore:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty" firestore:"customerPhone,omitempty"`
	VehicleType   string `json:"vehicleType,omitempty" firestore:"vehicleType,omitempty"`
	VehiclePlate  string `json:"vehiclePlate" firestore:"vehiclePlate"`
	VehicleBrand  string `json:"vehicleBrand,omitempty" firestore:"vehicleBrand,omitempty"`
	VehicleModel  string `json:"vehicleModel,omitempty" firestore:"vehicleModel,omitempty"`
	VehicleYear   string `json:"vehicleYear,omitempty" firestore:"vehicleYear,omitempty"`

	// Mileage
	CurrentKm    int `json:"currentKm" firestore:"currentKm"`
	NextChangeKm int `json:"nextChangeKm,omitempty" firestore:"nextChangeKm,omitempty"`
	PeriodMonths int `json:"periodMonths,omitempty" firestore:"periodMonths,omitempty"`

	// Oil
	OilBrand     string  `json:"oilBrand,omitempty" firestore:"oilBrand,omitempty"`
	OilType      string  `json:"oilType,omitempty" firestore:"oilType,omitempty"`
	OilViscosity string  `json:"oilViscosity,omitempty" firestore:"oilViscosity,omitempty"`
	OilQuantity  float64 `json:"oilQuantity,omitempty" firestore:"oilQuantity,omitempty"`

	// Filters
	OilFilter        bool   `json:"oilFilter" firestore:"oilFilter"`
	OilFilterNotes   string `json:"oilFilterNotes,omitempty" firestore:"oilFilterNotes,omitempty"`
	AirFilter        bool   `json:"airFilter" firestore:"airFilter"`
	AirFilterNotes   string `json:"airFilterNotes,omitempty" firestore:"airFilterNotes,omitempty"`
	CabinFilter      bool   `json:"cabinFilter" firestore:"cabinFilter"`
	CabinFilterNotes string `json:"cabinFilterNotes,omitempty" firestore:"cabinFilterNotes,omitempty"`
	FuelFilter       bool   `json:"fuelFilter" firestore:"fuelFilter"`
	FuelFilterNotes  string `json:"fuelFilterNotes,omitempty" firestore:"fuelFilterNotes,omitempty"`

	// Extras
	Coolant           bool   `json:"coolant" firestore:"coolant"`
	CoolantNotes      string `json:"coolantNotes,omitempty" firestore:"coolantNotes,omitempty"`
	Grease            bool   `json:"grease" firestore:"grease"`
	GreaseNotes       string `json:"greaseNotes,omitempty" firestore:"greaseNotes,omitempty"`
	Additive          bool   `json:"additive" firestore:"additive"`
	AdditiveType      string `json:"additiveType,omitempty" firestore:"additiveType,omitempty"`
	AdditiveNotes     string `json:"additiveNotes,omitempty" firestore:"additiveNotes,omitempty"`
	Gearbox           bool   `json:"gearbox" firestore:"gearbox"`
	GearboxNotes      string `json:"gearboxNotes,omitempty" firestore:"gearboxNotes,omitempty"`
	Differential      bool   `json:"differential" firestore:"differential"`
	DifferentialNotes string `json:"differentialNotes,omitempty" firestore:"differentialNotes,omitempty"`

	Observations string `json:"observations,omitempty" firestore:"observations,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	CreatedBy string    `json:"createdBy" firestore:"createdBy"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// HasExtras reports whether any extra service was performed; the ticket's
// extras block is only rendered when this is true.
func (r *OilChangeRecord) HasExtras() bool {
	return r.Coolant || r.Grease || r.Additive || r.Gearbox || r.Differential
}
