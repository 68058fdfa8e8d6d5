package companyapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/domain/companybus"
	"github.com/velostock/velostock/business/types/name"
)

// Company represents the caller's dealership account.
type Company struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Slug              string  `json:"slug"`
	PrimaryColor      string  `json:"primaryColor"`
	SecondaryColor    string  `json:"secondaryColor"`
	StaleAlertDays    int     `json:"staleAlertDays"`
	CommissionPercent float64 `json:"commissionPercent"`
	SalesInbox        string  `json:"salesInbox"`
	DateCreated       string  `json:"dateCreated"`
	DateUpdated       string  `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (c Company) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

func toAppCompany(bus companybus.Company) Company {
	return Company{
		ID:                bus.ID.String(),
		Name:              bus.Name.String(),
		Slug:              bus.Slug,
		PrimaryColor:      bus.PrimaryColor,
		SecondaryColor:    bus.SecondaryColor,
		StaleAlertDays:    bus.StaleAlertDays,
		CommissionPercent: bus.CommissionPercent,
		SalesInbox:        bus.SalesInbox.Address,
		DateCreated:       bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:       bus.UpdatedAt.Format(time.RFC3339),
	}
}

// =============================================================================

// UpdateCompany defines the data needed to update the company.
type UpdateCompany struct {
	Name              *string  `json:"name"`
	PrimaryColor      *string  `json:"primaryColor" validate:"omitempty,hexcolor"`
	SecondaryColor    *string  `json:"secondaryColor" validate:"omitempty,hexcolor"`
	StaleAlertDays    *int     `json:"staleAlertDays" validate:"omitempty,gte=1,lte=365"`
	CommissionPercent *float64 `json:"commissionPercent" validate:"omitempty,gte=0,lte=100"`
	SalesInbox        *string  `json:"salesInbox" validate:"omitempty,email"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateCompany) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateCompany) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateCompany(app UpdateCompany) (companybus.UpdateCompany, error) {
	bus := companybus.UpdateCompany{
		PrimaryColor:      app.PrimaryColor,
		SecondaryColor:    app.SecondaryColor,
		StaleAlertDays:    app.StaleAlertDays,
		CommissionPercent: app.CommissionPercent,
	}

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		if err != nil {
			return companybus.UpdateCompany{}, fmt.Errorf("parse name: %w", err)
		}
		bus.Name = &nme
	}

	if app.SalesInbox != nil {
		addr, err := mail.ParseAddress(*app.SalesInbox)
		if err != nil {
			return companybus.UpdateCompany{}, fmt.Errorf("parse sales inbox: %w", err)
		}
		bus.SalesInbox = addr
	}

	return bus, nil
}
