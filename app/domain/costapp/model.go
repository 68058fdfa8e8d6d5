package costapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/domain/costbus"
	"github.com/velostock/velostock/business/types/money"
)

// Cost represents money spent on a vehicle.
type Cost struct {
	ID            string  `json:"id"`
	VehicleID     string  `json:"vehicleId"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Value         float64 `json:"value"`
	Date          string  `json:"date"`
	PaymentMethod string  `json:"paymentMethod"`
	Payer         string  `json:"payer"`
	DateCreated   string  `json:"dateCreated"`
	DateUpdated   string  `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (c Cost) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

func toAppCost(bus costbus.Cost) Cost {
	return Cost{
		ID:            bus.ID.String(),
		VehicleID:     bus.VehicleID.String(),
		Category:      bus.Category,
		Description:   bus.Description,
		Value:         bus.Value.Float(),
		Date:          bus.Date.Format(time.RFC3339),
		PaymentMethod: bus.PaymentMethod,
		Payer:         bus.Payer,
		DateCreated:   bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:   bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppCosts(csts []costbus.Cost) []Cost {
	app := make([]Cost, len(csts))
	for i, cst := range csts {
		app[i] = toAppCost(cst)
	}
	return app
}

// =============================================================================

// NewCost defines the data needed to record a cost against a vehicle.
type NewCost struct {
	Category      string  `json:"category" validate:"required"`
	Description   string  `json:"description"`
	Value         float64 `json:"value" validate:"required,gt=0"`
	Date          string  `json:"date" validate:"required"`
	PaymentMethod string  `json:"paymentMethod"`
	Payer         string  `json:"payer"`
}

// Decode implements the web.Decoder interface.
func (app *NewCost) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewCost) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewCost(app NewCost) (costbus.NewCost, error) {
	value, err := money.Parse(app.Value)
	if err != nil {
		return costbus.NewCost{}, fmt.Errorf("parse value: %w", err)
	}

	date, err := time.Parse(time.RFC3339, app.Date)
	if err != nil {
		return costbus.NewCost{}, fmt.Errorf("parse date: %w", err)
	}

	bus := costbus.NewCost{
		Category:      app.Category,
		Description:   app.Description,
		Value:         value,
		Date:          date,
		PaymentMethod: app.PaymentMethod,
		Payer:         app.Payer,
	}

	return bus, nil
}

// =============================================================================

// UpdateCost defines the data needed to update a cost.
type UpdateCost struct {
	Category      *string  `json:"category"`
	Description   *string  `json:"description"`
	Value         *float64 `json:"value" validate:"omitempty,gt=0"`
	Date          *string  `json:"date"`
	PaymentMethod *string  `json:"paymentMethod"`
	Payer         *string  `json:"payer"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateCost) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateCost) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateCost(app UpdateCost) (costbus.UpdateCost, error) {
	bus := costbus.UpdateCost{
		Category:      app.Category,
		Description:   app.Description,
		PaymentMethod: app.PaymentMethod,
		Payer:         app.Payer,
	}

	if app.Value != nil {
		value, err := money.Parse(*app.Value)
		if err != nil {
			return costbus.UpdateCost{}, fmt.Errorf("parse value: %w", err)
		}
		bus.Value = &value
	}

	if app.Date != nil {
		date, err := time.Parse(time.RFC3339, *app.Date)
		if err != nil {
			return costbus.UpdateCost{}, fmt.Errorf("parse date: %w", err)
		}
		bus.Date = &date
	}

	return bus, nil
}
