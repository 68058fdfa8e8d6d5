package vehicledb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/domain/vehiclebus"
	"github.com/velostock/velostock/business/types/money"
	"github.com/velostock/velostock/business/types/plate"
	"github.com/velostock/velostock/business/types/vehiclestatus"
)

type vehicleDB struct {
	ID              uuid.UUID     `db:"vehicle_id"`
	CompanyID       uuid.UUID     `db:"company_id"`
	Brand           string        `db:"brand"`
	Model           string        `db:"model"`
	Year            int           `db:"year"`
	Color           string        `db:"color"`
	Plate           string        `db:"plate"`
	Odometer        int           `db:"odometer"`
	Fuel            string        `db:"fuel"`
	Status          string        `db:"status"`
	Location        string        `db:"location"`
	LocationDetail  string        `db:"location_detail"`
	PurchasePrice   int64         `db:"purchase_price"`
	AskingPrice     int64         `db:"asking_price"`
	MinPrice        int64         `db:"min_price"`
	SoldPrice       sql.NullInt64 `db:"sold_price"`
	Checklist       []byte        `db:"checklist"`
	StatusChangedAt time.Time     `db:"status_changed_at"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

func toDBVehicle(bus vehiclebus.Vehicle) (vehicleDB, error) {
	cl, err := json.Marshal(bus.Checklist)
	if err != nil {
		return vehicleDB{}, fmt.Errorf("marshal checklist: %w", err)
	}

	db := vehicleDB{
		ID:              bus.ID,
		CompanyID:       bus.CompanyID,
		Brand:           bus.Brand,
		Model:           bus.Model,
		Year:            bus.Year,
		Color:           bus.Color,
		Plate:           bus.Plate.String(),
		Odometer:        bus.Odometer,
		Fuel:            bus.Fuel,
		Status:          bus.Status.String(),
		Location:        bus.Location,
		LocationDetail:  bus.LocationDetail,
		PurchasePrice:   bus.PurchasePrice.Cents(),
		AskingPrice:     bus.AskingPrice.Cents(),
		MinPrice:        bus.MinPrice.Cents(),
		Checklist:       cl,
		StatusChangedAt: bus.StatusChangedAt.UTC(),
		CreatedAt:       bus.CreatedAt.UTC(),
		UpdatedAt:       bus.UpdatedAt.UTC(),
	}

	if bus.SoldPrice != nil {
		db.SoldPrice = sql.NullInt64{Int64: bus.SoldPrice.Cents(), Valid: true}
	}

	return db, nil
}

func toBusVehicle(db vehicleDB) (vehiclebus.Vehicle, error) {
	plt, err := plate.Parse(db.Plate)
	if err != nil {
		return vehiclebus.Vehicle{}, fmt.Errorf("parse plate: %w", err)
	}

	sts, err := vehiclestatus.Parse(db.Status)
	if err != nil {
		return vehiclebus.Vehicle{}, fmt.Errorf("parse status: %w", err)
	}

	var cl vehiclebus.Checklist
	if len(db.Checklist) > 0 {
		if err := json.Unmarshal(db.Checklist, &cl); err != nil {
			return vehiclebus.Vehicle{}, fmt.Errorf("unmarshal checklist: %w", err)
		}
	}

	bus := vehiclebus.Vehicle{
		ID:              db.ID,
		CompanyID:       db.CompanyID,
		Brand:           db.Brand,
		Model:           db.Model,
		Year:            db.Year,
		Color:           db.Color,
		Plate:           plt,
		Odometer:        db.Odometer,
		Fuel:            db.Fuel,
		Status:          sts,
		Location:        db.Location,
		LocationDetail:  db.LocationDetail,
		PurchasePrice:   money.FromCents(db.PurchasePrice),
		AskingPrice:     money.FromCents(db.AskingPrice),
		MinPrice:        money.FromCents(db.MinPrice),
		Checklist:       cl,
		StatusChangedAt: db.StatusChangedAt.In(time.Local),
		CreatedAt:       db.CreatedAt.In(time.Local),
		UpdatedAt:       db.UpdatedAt.In(time.Local),
	}

	if db.SoldPrice.Valid {
		sp := money.FromCents(db.SoldPrice.Int64)
		bus.SoldPrice = &sp
	}

	return bus, nil
}

func toBusVehicles(dbs []vehicleDB) ([]vehiclebus.Vehicle, error) {
	bus := make([]vehiclebus.Vehicle, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusVehicle(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}

// =============================================================================

type historyDB struct {
	ID           uuid.UUID `db:"history_id"`
	VehicleID    uuid.UUID `db:"vehicle_id"`
	CompanyID    uuid.UUID `db:"company_id"`
	FromStatus   string    `db:"from_status"`
	ToStatus     string    `db:"to_status"`
	FromLocation string    `db:"from_location"`
	ToLocation   string    `db:"to_location"`
	ActorID      uuid.UUID `db:"actor_id"`
	Note         string    `db:"note"`
	CreatedAt    time.Time `db:"created_at"`
}

func toDBHistory(bus vehiclebus.History) historyDB {
	return historyDB{
		ID:           bus.ID,
		VehicleID:    bus.VehicleID,
		CompanyID:    bus.CompanyID,
		FromStatus:   bus.FromStatus.String(),
		ToStatus:     bus.ToStatus.String(),
		FromLocation: bus.FromLocation,
		ToLocation:   bus.ToLocation,
		ActorID:      bus.ActorID,
		Note:         bus.Note,
		CreatedAt:    bus.CreatedAt.UTC(),
	}
}

func toBusHistory(db historyDB) (vehiclebus.History, error) {
	from, err := vehiclestatus.Parse(db.FromStatus)
	if err != nil {
		return vehiclebus.History{}, fmt.Errorf("parse from status: %w", err)
	}

	to, err := vehiclestatus.Parse(db.ToStatus)
	if err != nil {
		return vehiclebus.History{}, fmt.Errorf("parse to status: %w", err)
	}

	bus := vehiclebus.History{
		ID:           db.ID,
		VehicleID:    db.VehicleID,
		CompanyID:    db.CompanyID,
		FromStatus:   from,
		ToStatus:     to,
		FromLocation: db.FromLocation,
		ToLocation:   db.ToLocation,
		ActorID:      db.ActorID,
		Note:         db.Note,
		CreatedAt:    db.CreatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusHistories(dbs []historyDB) ([]vehiclebus.History, error) {
	bus := make([]vehiclebus.History, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusHistory(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}

// =============================================================================

type observationDB struct {
	ID        uuid.UUID `db:"observation_id"`
	VehicleID uuid.UUID `db:"vehicle_id"`
	CompanyID uuid.UUID `db:"company_id"`
	AuthorID  uuid.UUID `db:"author_id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

func toDBObservation(bus vehiclebus.Observation) observationDB {
	return observationDB{
		ID:        bus.ID,
		VehicleID: bus.VehicleID,
		CompanyID: bus.CompanyID,
		AuthorID:  bus.AuthorID,
		Text:      bus.Text,
		CreatedAt: bus.CreatedAt.UTC(),
	}
}

func toBusObservation(db observationDB) vehiclebus.Observation {
	return vehiclebus.Observation{
		ID:        db.ID,
		VehicleID: db.VehicleID,
		CompanyID: db.CompanyID,
		AuthorID:  db.AuthorID,
		Text:      db.Text,
		CreatedAt: db.CreatedAt.In(time.Local),
	}
}

// =============================================================================

type imageDB struct {
	ID          uuid.UUID `db:"image_id"`
	VehicleID   uuid.UUID `db:"vehicle_id"`
	CompanyID   uuid.UUID `db:"company_id"`
	Name        string    `db:"name"`
	ContentType string    `db:"content_type"`
	Data        []byte    `db:"data"`
	CreatedAt   time.Time `db:"created_at"`
}

func toDBImage(bus vehiclebus.Image) imageDB {
	return imageDB{
		ID:          bus.ID,
		VehicleID:   bus.VehicleID,
		CompanyID:   bus.CompanyID,
		Name:        bus.Name,
		ContentType: bus.ContentType,
		Data:        bus.Data,
		CreatedAt:   bus.CreatedAt.UTC(),
	}
}

func toBusImage(db imageDB) vehiclebus.Image {
	return vehiclebus.Image{
		ID:          db.ID,
		VehicleID:   db.VehicleID,
		CompanyID:   db.CompanyID,
		Name:        db.Name,
		ContentType: db.ContentType,
		Data:        db.Data,
		CreatedAt:   db.CreatedAt.In(time.Local),
	}
}

// =============================================================================

type documentDB struct {
	ID        uuid.UUID `db:"document_id"`
	VehicleID uuid.UUID `db:"vehicle_id"`
	CompanyID uuid.UUID `db:"company_id"`
	Name      string    `db:"name"`
	Path      string    `db:"path"`
	Size      int64     `db:"size"`
	CreatedAt time.Time `db:"created_at"`
}

func toDBDocument(bus vehiclebus.Document) documentDB {
	return documentDB{
		ID:        bus.ID,
		VehicleID: bus.VehicleID,
		CompanyID: bus.CompanyID,
		Name:      bus.Name,
		Path:      bus.Path,
		Size:      bus.Size,
		CreatedAt: bus.CreatedAt.UTC(),
	}
}

func toBusDocument(db documentDB) vehiclebus.Document {
	return vehiclebus.Document{
		ID:        db.ID,
		VehicleID: db.VehicleID,
		CompanyID: db.CompanyID,
		Name:      db.Name,
		Path:      db.Path,
		Size:      db.Size,
		CreatedAt: db.CreatedAt.In(time.Local),
	}
}
