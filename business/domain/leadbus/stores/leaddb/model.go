package leaddb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/domain/leadbus"
	"github.com/velostock/velostock/business/types/name"
	"github.com/velostock/velostock/business/types/phone"
)

type leadDB struct {
	ID         uuid.UUID      `db:"lead_id"`
	CompanyID  uuid.UUID      `db:"company_id"`
	Name       string         `db:"name"`
	Phone      sql.NullString `db:"phone"`
	Email      sql.NullString `db:"email"`
	VehicleID  *uuid.UUID     `db:"vehicle_id"`
	Source     string         `db:"source"`
	Status     string         `db:"status"`
	Notes      string         `db:"notes"`
	AssignedTo *uuid.UUID     `db:"assigned_to"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func toDBLead(bus leadbus.Lead) leadDB {
	return leadDB{
		ID:         bus.ID,
		CompanyID:  bus.CompanyID,
		Name:       bus.Name.String(),
		Phone:      phone.ToSQLNullString(bus.Phone),
		Email:      sql.NullString{String: bus.Email, Valid: bus.Email != ""},
		VehicleID:  bus.VehicleID,
		Source:     bus.Source,
		Status:     bus.Status,
		Notes:      bus.Notes,
		AssignedTo: bus.AssignedTo,
		CreatedAt:  bus.CreatedAt.UTC(),
		UpdatedAt:  bus.UpdatedAt.UTC(),
	}
}

func toBusLead(db leadDB) (leadbus.Lead, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return leadbus.Lead{}, fmt.Errorf("parse name: %w", err)
	}

	var phn phone.Null
	if db.Phone.Valid {
		phn, err = phone.ParseNull(db.Phone.String)
		if err != nil {
			return leadbus.Lead{}, fmt.Errorf("parse phone: %w", err)
		}
	}

	bus := leadbus.Lead{
		ID:         db.ID,
		CompanyID:  db.CompanyID,
		Name:       nme,
		Phone:      phn,
		Email:      db.Email.String,
		VehicleID:  db.VehicleID,
		Source:     db.Source,
		Status:     db.Status,
		Notes:      db.Notes,
		AssignedTo: db.AssignedTo,
		CreatedAt:  db.CreatedAt.In(time.Local),
		UpdatedAt:  db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusLeads(dbs []leadDB) ([]leadbus.Lead, error) {
	bus := make([]leadbus.Lead, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusLead(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
