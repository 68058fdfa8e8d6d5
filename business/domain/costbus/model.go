package costbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/types/money"
)

// Cost represents money spent on a vehicle: parts, services, transport,
// documentation fees and so on.
type Cost struct {
	ID            uuid.UUID
	VehicleID     uuid.UUID
	CompanyID     uuid.UUID
	Category      string
	Description   string
	Value         money.Money
	Date          time.Time
	PaymentMethod string
	Payer         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCost contains information needed to record a new cost.
type NewCost struct {
	VehicleID     uuid.UUID
	CompanyID     uuid.UUID
	Category      string
	Description   string
	Value         money.Money
	Date          time.Time
	PaymentMethod string
	Payer         string
}

// UpdateCost contains information needed to update a cost.
type UpdateCost struct {
	Category      *string
	Description   *string
	Value         *money.Money
	Date          *time.Time
	PaymentMethod *string
	Payer         *string
}
