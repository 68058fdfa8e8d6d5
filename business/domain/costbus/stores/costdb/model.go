package costdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/domain/costbus"
	"github.com/velostock/velostock/business/types/money"
)

type costDB struct {
	ID            uuid.UUID `db:"cost_id"`
	VehicleID     uuid.UUID `db:"vehicle_id"`
	CompanyID     uuid.UUID `db:"company_id"`
	Category      string    `db:"category"`
	Description   string    `db:"description"`
	Value         int64     `db:"value"`
	Date          time.Time `db:"date"`
	PaymentMethod string    `db:"payment_method"`
	Payer         string    `db:"payer"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func toDBCost(bus costbus.Cost) costDB {
	return costDB{
		ID:            bus.ID,
		VehicleID:     bus.VehicleID,
		CompanyID:     bus.CompanyID,
		Category:      bus.Category,
		Description:   bus.Description,
		Value:         bus.Value.Cents(),
		Date:          bus.Date.UTC(),
		PaymentMethod: bus.PaymentMethod,
		Payer:         bus.Payer,
		CreatedAt:     bus.CreatedAt.UTC(),
		UpdatedAt:     bus.UpdatedAt.UTC(),
	}
}

func toBusCost(db costDB) costbus.Cost {
	return costbus.Cost{
		ID:            db.ID,
		VehicleID:     db.VehicleID,
		CompanyID:     db.CompanyID,
		Category:      db.Category,
		Description:   db.Description,
		Value:         money.FromCents(db.Value),
		Date:          db.Date.In(time.Local),
		PaymentMethod: db.PaymentMethod,
		Payer:         db.Payer,
		CreatedAt:     db.CreatedAt.In(time.Local),
		UpdatedAt:     db.UpdatedAt.In(time.Local),
	}
}

func toBusCosts(dbs []costDB) []costbus.Cost {
	bus := make([]costbus.Cost, len(dbs))

	for i, db := range dbs {
		bus[i] = toBusCost(db)
	}

	return bus
}
