package billdb

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/domain/billbus"
	"github.com/velostock/velostock/business/types/money"
)

type billDB struct {
	ID          uuid.UUID    `db:"bill_id"`
	CompanyID   uuid.UUID    `db:"company_id"`
	Category    string       `db:"category"`
	Description string       `db:"description"`
	Value       int64        `db:"value"`
	DueDate     time.Time    `db:"due_date"`
	PaidAt      sql.NullTime `db:"paid_at"`
	Recurring   bool         `db:"recurring"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

func toDBBill(bus billbus.Bill) billDB {
	db := billDB{
		ID:          bus.ID,
		CompanyID:   bus.CompanyID,
		Category:    bus.Category,
		Description: bus.Description,
		Value:       bus.Value.Cents(),
		DueDate:     bus.DueDate.UTC(),
		Recurring:   bus.Recurring,
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}

	if bus.PaidAt != nil {
		db.PaidAt = sql.NullTime{Time: bus.PaidAt.UTC(), Valid: true}
	}

	return db
}

func toBusBill(db billDB) billbus.Bill {
	bus := billbus.Bill{
		ID:          db.ID,
		CompanyID:   db.CompanyID,
		Category:    db.Category,
		Description: db.Description,
		Value:       money.FromCents(db.Value),
		DueDate:     db.DueDate.In(time.Local),
		Recurring:   db.Recurring,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	if db.PaidAt.Valid {
		paidAt := db.PaidAt.Time.In(time.Local)
		bus.PaidAt = &paidAt
	}

	return bus
}

func toBusBills(dbs []billDB) []billbus.Bill {
	bus := make([]billbus.Bill, len(dbs))

	for i, db := range dbs {
		bus[i] = toBusBill(db)
	}

	return bus
}
