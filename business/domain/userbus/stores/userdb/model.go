package userdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/domain/userbus"
	"github.com/velostock/velostock/business/types/name"
	"github.com/velostock/velostock/business/types/phone"
	"github.com/velostock/velostock/business/types/role"
)

type userDB struct {
	ID                uuid.UUID       `db:"user_id"`
	CompanyID         *uuid.UUID      `db:"company_id"`
	Name              string          `db:"name"`
	Email             string          `db:"email"`
	Role              string          `db:"role"`
	PasswordHash      []byte          `db:"password_hash"`
	Phone             sql.NullString  `db:"phone"`
	Capabilities      []byte          `db:"capabilities"`
	CommissionPercent sql.NullFloat64 `db:"commission_percent"`
	Enabled           bool            `db:"enabled"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

func toDBUser(bus userbus.User) (userDB, error) {
	caps, err := json.Marshal(bus.Capabilities)
	if err != nil {
		return userDB{}, fmt.Errorf("marshal capabilities: %w", err)
	}

	db := userDB{
		ID:           bus.ID,
		Name:         bus.Name.String(),
		Email:        bus.Email.Address,
		Role:         bus.Role.String(),
		PasswordHash: bus.PasswordHash,
		Phone:        phone.ToSQLNullString(bus.Phone),
		Capabilities: caps,
		Enabled:      bus.Enabled,
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}

	if bus.CompanyID != uuid.Nil {
		cid := bus.CompanyID
		db.CompanyID = &cid
	}

	if bus.CommissionPercent != nil {
		db.CommissionPercent = sql.NullFloat64{Float64: *bus.CommissionPercent, Valid: true}
	}

	return db, nil
}

func toBusUser(db userDB) (userbus.User, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse name: %w", err)
	}

	rle, err := role.Parse(db.Role)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse role: %w", err)
	}

	var phn phone.Null
	if db.Phone.Valid {
		phn, err = phone.ParseNull(db.Phone.String)
		if err != nil {
			return userbus.User{}, fmt.Errorf("parse phone: %w", err)
		}
	}

	var caps map[string]bool
	if len(db.Capabilities) > 0 {
		if err := json.Unmarshal(db.Capabilities, &caps); err != nil {
			return userbus.User{}, fmt.Errorf("unmarshal capabilities: %w", err)
		}
	}

	bus := userbus.User{
		ID:           db.ID,
		Name:         nme,
		Email:        mail.Address{Address: db.Email},
		Role:         rle,
		PasswordHash: db.PasswordHash,
		Phone:        phn,
		Capabilities: caps,
		Enabled:      db.Enabled,
		CreatedAt:    db.CreatedAt.In(time.Local),
		UpdatedAt:    db.UpdatedAt.In(time.Local),
	}

	if db.CompanyID != nil {
		bus.CompanyID = *db.CompanyID
	}

	if db.CommissionPercent.Valid {
		pct := db.CommissionPercent.Float64
		bus.CommissionPercent = &pct
	}

	return bus, nil
}

func toBusUsers(dbs []userDB) ([]userbus.User, error) {
	bus := make([]userbus.User, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusUser(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
