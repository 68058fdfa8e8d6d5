package vehiclebus

import (
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/types/money"
	"github.com/velostock/velostock/business/types/plate"
	"github.com/velostock/velostock/business/types/vehiclestatus"
)

// Vehicle represents one unit in a company's inventory. Status, Location and
// LocationDetail only change through UpdateStatus.
type Vehicle struct {
	ID              uuid.UUID
	CompanyID       uuid.UUID
	Brand           string
	Model           string
	Year            int
	Color           string
	Plate           plate.Plate
	Odometer        int
	Fuel            string
	Status          vehiclestatus.Status
	Location        string
	LocationDetail  string
	PurchasePrice   money.Money
	AskingPrice     money.Money
	MinPrice        money.Money
	SoldPrice       *money.Money
	Checklist       Checklist
	StatusChangedAt time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewVehicle contains information needed to create a new vehicle.
type NewVehicle struct {
	CompanyID      uuid.UUID
	Brand          string
	Model          string
	Year           int
	Color          string
	Plate          plate.Plate
	Odometer       int
	Fuel           string
	Location       string
	LocationDetail string
	PurchasePrice  money.Money
	AskingPrice    money.Money
	MinPrice       money.Money
	Checklist      Checklist
}

// UpdateVehicle contains information needed to update a vehicle's descriptive
// and price attributes.
type UpdateVehicle struct {
	Brand         *string
	Model         *string
	Year          *int
	Color         *string
	Plate         *plate.Plate
	Odometer      *int
	Fuel          *string
	PurchasePrice *money.Money
	AskingPrice   *money.Money
	MinPrice      *money.Money
	SoldPrice     *money.Money
}

// UpdateStatus contains information needed to move a vehicle through the
// pipeline or between physical locations.
type UpdateStatus struct {
	Status         vehiclestatus.Status
	Location       *string
	LocationDetail *string
	Note           string
	ActorID        uuid.UUID
}

// History is one immutable ledger row. Rows are never updated or deleted.
type History struct {
	ID           uuid.UUID
	VehicleID    uuid.UUID
	CompanyID    uuid.UUID
	FromStatus   vehiclestatus.Status
	ToStatus     vehiclestatus.Status
	FromLocation string
	ToLocation   string
	ActorID      uuid.UUID
	Note         string
	CreatedAt    time.Time
}
