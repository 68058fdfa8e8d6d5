package billbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/types/money"
)

// Bill represents a company expense payable: rent, utilities, supplier
// invoices. Not tied to a vehicle.
type Bill struct {
	ID          uuid.UUID
	CompanyID   uuid.UUID
	Category    string
	Description string
	Value       money.Money
	DueDate     time.Time
	PaidAt      *time.Time
	Recurring   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBill contains information needed to create a new bill.
type NewBill struct {
	CompanyID   uuid.UUID
	Category    string
	Description string
	Value       money.Money
	DueDate     time.Time
	Recurring   bool
}

// UpdateBill contains information needed to update a bill.
type UpdateBill struct {
	Category    *string
	Description *string
	Value       *money.Money
	DueDate     *time.Time
	Recurring   *bool
	Paid        *bool
}
