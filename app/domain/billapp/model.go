package billapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/domain/billbus"
	"github.com/velostock/velostock/business/types/money"
)

// Bill represents a company expense payable.
type Bill struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	DueDate     string  `json:"dueDate"`
	PaidAt      *string `json:"paidAt,omitempty"`
	Recurring   bool    `json:"recurring"`
	DateCreated string  `json:"dateCreated"`
	DateUpdated string  `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (b Bill) Encode() ([]byte, string, error) {
	data, err := json.Marshal(b)
	return data, "application/json", err
}

func toAppBill(bus billbus.Bill) Bill {
	var paidAt *string
	if bus.PaidAt != nil {
		s := bus.PaidAt.Format(time.RFC3339)
		paidAt = &s
	}

	return Bill{
		ID:          bus.ID.String(),
		Category:    bus.Category,
		Description: bus.Description,
		Value:       bus.Value.Float(),
		DueDate:     bus.DueDate.Format(time.RFC3339),
		PaidAt:      paidAt,
		Recurring:   bus.Recurring,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppBills(bills []billbus.Bill) []Bill {
	app := make([]Bill, len(bills))
	for i, bil := range bills {
		app[i] = toAppBill(bil)
	}
	return app
}

// =============================================================================

// NewBill defines the data needed to register a bill.
type NewBill struct {
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	Value       float64 `json:"value" validate:"required,gt=0"`
	DueDate     string  `json:"dueDate" validate:"required"`
	Recurring   bool    `json:"recurring"`
}

// Decode implements the web.Decoder interface.
func (app *NewBill) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewBill) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewBill(app NewBill) (billbus.NewBill, error) {
	value, err := money.Parse(app.Value)
	if err != nil {
		return billbus.NewBill{}, fmt.Errorf("parse value: %w", err)
	}

	dueDate, err := time.Parse(time.RFC3339, app.DueDate)
	if err != nil {
		return billbus.NewBill{}, fmt.Errorf("parse due date: %w", err)
	}

	bus := billbus.NewBill{
		Category:    app.Category,
		Description: app.Description,
		Value:       value,
		DueDate:     dueDate,
		Recurring:   app.Recurring,
	}

	return bus, nil
}

// =============================================================================

// UpdateBill defines the data needed to update a bill. Setting paid stamps or
// clears the payment time.
type UpdateBill struct {
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Value       *float64 `json:"value" validate:"omitempty,gt=0"`
	DueDate     *string  `json:"dueDate"`
	Recurring   *bool    `json:"recurring"`
	Paid        *bool    `json:"paid"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateBill) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateBill) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateBill(app UpdateBill) (billbus.UpdateBill, error) {
	bus := billbus.UpdateBill{
		Category:    app.Category,
		Description: app.Description,
		Recurring:   app.Recurring,
		Paid:        app.Paid,
	}

	if app.Value != nil {
		value, err := money.Parse(*app.Value)
		if err != nil {
			return billbus.UpdateBill{}, fmt.Errorf("parse value: %w", err)
		}
		bus.Value = &value
	}

	if app.DueDate != nil {
		dueDate, err := time.Parse(time.RFC3339, *app.DueDate)
		if err != nil {
			return billbus.UpdateBill{}, fmt.Errorf("parse due date: %w", err)
		}
		bus.DueDate = &dueDate
	}

	return bus, nil
}
