package leadapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/domain/leadbus"
	"github.com/velostock/velostock/business/types/name"
	"github.com/velostock/velostock/business/types/phone"
)

// Lead represents a prospective buyer.
type Lead struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	VehicleID   *string `json:"vehicleId,omitempty"`
	Source      string  `json:"source"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
	AssignedTo  *string `json:"assignedTo,omitempty"`
	DateCreated string  `json:"dateCreated"`
	DateUpdated string  `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (l Lead) Encode() ([]byte, string, error) {
	data, err := json.Marshal(l)
	return data, "application/json", err
}

func toAppLead(bus leadbus.Lead) Lead {
	var vehicleID *string
	if bus.VehicleID != nil {
		s := bus.VehicleID.String()
		vehicleID = &s
	}

	var assignedTo *string
	if bus.AssignedTo != nil {
		s := bus.AssignedTo.String()
		assignedTo = &s
	}

	return Lead{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		Phone:       bus.Phone.String(),
		Email:       bus.Email,
		VehicleID:   vehicleID,
		Source:      bus.Source,
		Status:      bus.Status,
		Notes:       bus.Notes,
		AssignedTo:  assignedTo,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppLeads(leads []leadbus.Lead) []Lead {
	app := make([]Lead, len(leads))
	for i, led := range leads {
		app[i] = toAppLead(led)
	}
	return app
}

func parseStatus(value string) (string, error) {
	switch value {
	case leadbus.StatusNew, leadbus.StatusInProgress, leadbus.StatusProposal, leadbus.StatusWon, leadbus.StatusLost:
		return value, nil
	}
	return "", fmt.Errorf("invalid lead status %q", value)
}

// =============================================================================

// NewLead defines the data needed to register a lead.
type NewLead struct {
	Name       string  `json:"name" validate:"required"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email" validate:"omitempty,email"`
	VehicleID  *string `json:"vehicleId"`
	Source     string  `json:"source"`
	Status     string  `json:"status"`
	Notes      string  `json:"notes"`
	AssignedTo *string `json:"assignedTo"`
}

// Decode implements the web.Decoder interface.
func (app *NewLead) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewLead) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewLead(app NewLead) (leadbus.NewLead, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return leadbus.NewLead{}, fmt.Errorf("parse name: %w", err)
	}

	ph, err := phone.ParseNull(app.Phone)
	if err != nil {
		return leadbus.NewLead{}, fmt.Errorf("parse phone: %w", err)
	}

	bus := leadbus.NewLead{
		Name:   nme,
		Phone:  ph,
		Email:  app.Email,
		Source: app.Source,
		Notes:  app.Notes,
	}

	if app.Status != "" {
		status, err := parseStatus(app.Status)
		if err != nil {
			return leadbus.NewLead{}, err
		}
		bus.Status = status
	}

	if app.VehicleID != nil {
		id, err := uuid.Parse(*app.VehicleID)
		if err != nil {
			return leadbus.NewLead{}, fmt.Errorf("parse vehicle id: %w", err)
		}
		bus.VehicleID = &id
	}

	if app.AssignedTo != nil {
		id, err := uuid.Parse(*app.AssignedTo)
		if err != nil {
			return leadbus.NewLead{}, fmt.Errorf("parse assigned to: %w", err)
		}
		bus.AssignedTo = &id
	}

	return bus, nil
}

// =============================================================================

// UpdateLead defines the data needed to update a lead.
type UpdateLead struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email" validate:"omitempty,email"`
	VehicleID  *string `json:"vehicleId"`
	Source     *string `json:"source"`
	Status     *string `json:"status"`
	Notes      *string `json:"notes"`
	AssignedTo *string `json:"assignedTo"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateLead) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateLead) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateLead(app UpdateLead) (leadbus.UpdateLead, error) {
	bus := leadbus.UpdateLead{
		Email:  app.Email,
		Source: app.Source,
		Notes:  app.Notes,
	}

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		if err != nil {
			return leadbus.UpdateLead{}, fmt.Errorf("parse name: %w", err)
		}
		bus.Name = &nme
	}

	if app.Phone != nil {
		ph, err := phone.ParseNull(*app.Phone)
		if err != nil {
			return leadbus.UpdateLead{}, fmt.Errorf("parse phone: %w", err)
		}
		bus.Phone = &ph
	}

	if app.Status != nil {
		status, err := parseStatus(*app.Status)
		if err != nil {
			return leadbus.UpdateLead{}, err
		}
		bus.Status = &status
	}

	if app.VehicleID != nil {
		id, err := uuid.Parse(*app.VehicleID)
		if err != nil {
			return leadbus.UpdateLead{}, fmt.Errorf("parse vehicle id: %w", err)
		}
		bus.VehicleID = &id
	}

	if app.AssignedTo != nil {
		id, err := uuid.Parse(*app.AssignedTo)
		if err != nil {
			return leadbus.UpdateLead{}, fmt.Errorf("parse assigned to: %w", err)
		}
		bus.AssignedTo = &id
	}

	return bus, nil
}
