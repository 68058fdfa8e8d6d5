package companydb

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/domain/companybus"
	"github.com/velostock/velostock/business/types/name"
)

type companyDB struct {
	ID                uuid.UUID `db:"company_id"`
	Name              string    `db:"name"`
	Slug              string    `db:"slug"`
	PrimaryColor      string    `db:"primary_color"`
	SecondaryColor    string    `db:"secondary_color"`
	StaleAlertDays    int       `db:"stale_alert_days"`
	CommissionPercent float64   `db:"commission_percent"`
	SalesInbox        string    `db:"sales_inbox"`
	Enabled           bool      `db:"enabled"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func toDBCompany(bus companybus.Company) companyDB {
	return companyDB{
		ID:                bus.ID,
		Name:              bus.Name.String(),
		Slug:              bus.Slug,
		PrimaryColor:      bus.PrimaryColor,
		SecondaryColor:    bus.SecondaryColor,
		StaleAlertDays:    bus.StaleAlertDays,
		CommissionPercent: bus.CommissionPercent,
		SalesInbox:        bus.SalesInbox.Address,
		Enabled:           bus.Enabled,
		CreatedAt:         bus.CreatedAt.UTC(),
		UpdatedAt:         bus.UpdatedAt.UTC(),
	}
}

func toBusCompany(db companyDB) (companybus.Company, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("parse name: %w", err)
	}

	bus := companybus.Company{
		ID:                db.ID,
		Name:              nme,
		Slug:              db.Slug,
		PrimaryColor:      db.PrimaryColor,
		SecondaryColor:    db.SecondaryColor,
		StaleAlertDays:    db.StaleAlertDays,
		CommissionPercent: db.CommissionPercent,
		SalesInbox:        mail.Address{Address: db.SalesInbox},
		Enabled:           db.Enabled,
		CreatedAt:         db.CreatedAt.In(time.Local),
		UpdatedAt:         db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}
