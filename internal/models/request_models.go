package models

// RegisterLubricenterRequest is the request body for the owner registration
// flow: user + shop + role + trial subscription in one call.
type RegisterLubricenterRequest struct {
	OwnerName       string `json:"ownerName" binding:"required"`
	OwnerLastName   string `json:"ownerLastName,omitempty"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	LubricenterName string `json:"lubricenterName" binding:"required"`
	CUIT            string `json:"cuit" binding:"required"`
	Address         string `json:"address" binding:"required"`
	Phone           string `json:"phone,omitempty"`
}

// RegisterEmployeeRequest is the request body for hiring an employee into an
// existing lubricenter.
type RegisterEmployeeRequest struct {
	Name          string `json:"name" binding:"required"`
	LastName      string `json:"lastName,omitempty"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	LubricenterID string `json:"lubricenterId" binding:"required"`
}

// UpdateLubricenterRequest is the request body for profile edits. Pointers
// distinguish a cleared field from one not provided.
type UpdateLubricenterRequest struct {
	FantasyName  *string `json:"fantasyName,omitempty"`
	Address      *string `json:"address,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	Responsible  *string `json:"responsible,omitempty"`
	TicketPrefix *string `json:"ticketPrefix,omitempty"`
}

// RenewSubscriptionRequest is the request body for establishing or replacing
// the active subscription of a lubricenter.
type RenewSubscriptionRequest struct {
	PlanType       PlanType `json:"planType" binding:"required"`
	DurationMonths int      `json:"durationMonths" binding:"required,gt=0"`
	AutoRenew      bool     `json:"autoRenew"`
}

// OilChangeRequest is the request body for creating or updating an oil-change
// record. The server assigns id, lubricenterId and the timestamps.
type OilChangeRequest struct {
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	VehicleType   string `json:"vehicleType,omitempty"`
	VehiclePlate  string `json:"vehiclePlate" binding:"required"`
	VehicleBrand  string `json:"vehicleBrand,omitempty"`
	VehicleModel  string `json:"vehicleModel,omitempty"`
	VehicleYear   string `json:"vehicleYear,omitempty"`

	CurrentKm    int `json:"currentKm"`
	NextChangeKm int `json:"nextChangeKm,omitempty"`
	PeriodMonths int `json:"periodMonths,omitempty"`

	OilBrand     string  `json:"oilBrand,omitempty"`
	OilType      string  `json:"oilType,omitempty"`
	OilViscosity string  `json:"oilViscosity,omitempty"`
	OilQuantity  float64 `json:"oilQuantity,omitempty"`

	OilFilter        bool   `json:"oilFilter"`
	OilFilterNotes   string `json:"oilFilterNotes,omitempty"`
	AirFilter        bool   `json:"airFilter"`
	AirFilterNotes   string `json:"airFilterNotes,omitempty"`
	CabinFilter      bool   `json:"cabinFilter"`
	CabinFilterNotes string `json:"cabinFilterNotes,omitempty"`
	FuelFilter       bool   `json:"fuelFilter"`
	FuelFilterNotes  string `json:"fuelFilterNotes,omitempty"`

	Coolant           bool   `json:"coolant"`
	CoolantNotes      string `json:"coolantNotes,omitempty"`
	Grease            bool   `json:"grease"`
	GreaseNotes       string `json:"greaseNotes,omitempty"`
	Additive          bool   `json:"additive"`
	AdditiveType      string `json:"additiveType,omitempty"`
	AdditiveNotes     string `json:"additiveNotes,omitempty"`
	Gearbox           bool   `json:"gearbox"`
	GearboxNotes      string `json:"gearboxNotes,omitempty"`
	Differential      bool   `json:"differential"`
	DifferentialNotes string `json:"differentialNotes,omitempty"`

	Observations string `json:"observations,omitempty"`
}
