// Package vehicledb contains vehicle related CRUD functionality, including
// the history ledger and the observation, image and document child tables.
package vehicledb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/velostock/velostock/business/domain/vehiclebus"
	"github.com/velostock/velostock/business/sdk/order"
	"github.com/velostock/velostock/business/sdk/page"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/foundation/logger"
)

// Store manages the set of APIs for vehicle database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (vehiclebus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new vehicle into the database.
func (s *Store) Create(ctx context.Context, veh vehiclebus.Vehicle) error {
	dbVeh, err := toDBVehicle(veh)
	if err != nil {
		return fmt.Errorf("todbvehicle: %w", err)
	}

	const q = `
	INSERT INTO "public"."vehicles"
		(vehicle_id, company_id, brand, model, year, color, plate, odometer, fuel, status, location, location_detail, purchase_price, asking_price, min_price, sold_price, checklist, status_changed_at, created_at, updated_at)
	VALUES
		(:vehicle_id, :company_id, :brand, :model, :year, :color, :plate, :odometer, :fuel, :status, :location, :location_detail, :purchase_price, :asking_price, :min_price, :sold_price, :checklist, :status_changed_at, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbVeh); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", vehiclebus.ErrUniquePlate)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a vehicle document in the database. The company id is part
// of the predicate so a row from another company is never touched.
func (s *Store) Update(ctx context.Context, veh vehiclebus.Vehicle) error {
	dbVeh, err := toDBVehicle(veh)
	if err != nil {
		return fmt.Errorf("todbvehicle: %w", err)
	}

	const q = `
	UPDATE
		"public"."vehicles"
	SET
		brand = :brand,
		model = :model,
		year = :year,
		color = :color,
		plate = :plate,
		odometer = :odometer,
		fuel = :fuel,
		status = :status,
		location = :location,
		location_detail = :location_detail,
		purchase_price = :purchase_price,
		asking_price = :asking_price,
		min_price = :min_price,
		sold_price = :sold_price,
		checklist = :checklist,
		status_changed_at = :status_changed_at,
		updated_at = :updated_at
	WHERE
		vehicle_id = :vehicle_id AND company_id = :company_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbVeh); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", vehiclebus.ErrUniquePlate)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a vehicle from the database. Child rows go with it via
// cascading foreign keys, except history which keeps the audit trail.
func (s *Store) Delete(ctx context.Context, veh vehiclebus.Vehicle) error {
	data := struct {
		ID        string `db:"vehicle_id"`
		CompanyID string `db:"company_id"`
	}{
		ID:        veh.ID.String(),
		CompanyID: veh.CompanyID.String(),
	}

	const q = `
	DELETE FROM
		"public"."vehicles"
	WHERE
		vehicle_id = :vehicle_id AND company_id = :company_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing vehicles from the database.
func (s *Store) Query(ctx context.Context, filter vehiclebus.QueryFilter, orderBy order.By, page page.Page) ([]vehiclebus.Vehicle, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		vehicle_id, company_id, brand, model, year, color, plate, odometer, fuel, status, location, location_detail, purchase_price, asking_price, min_price, sold_price, checklist, status_changed_at, created_at, updated_at
	FROM
		"public"."vehicles"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbVehs []vehicleDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbVehs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusVehicles(dbVehs)
}

// Count returns the total number of vehicles in the DB.
func (s *Store) Count(ctx context.Context, filter vehiclebus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."vehicles"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("namedquerystruct: %w", err)
	}

	return count.Count, nil
}

// QueryByID gets the specified vehicle from the database within the company.
func (s *Store) QueryByID(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) (vehiclebus.Vehicle, error) {
	data := struct {
		ID        string `db:"vehicle_id"`
		CompanyID string `db:"company_id"`
	}{
		ID:        vehicleID.String(),
		CompanyID: companyID.String(),
	}

	const q = `
	SELECT
		vehicle_id, company_id, brand, model, year, color, plate, odometer, fuel, status, location, location_detail, purchase_price, asking_price, min_price, sold_price, checklist, status_changed_at, created_at, updated_at
	FROM
		"public"."vehicles"
	WHERE
		vehicle_id = :vehicle_id AND company_id = :company_id`

	var dbVeh vehicleDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbVeh); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return vehiclebus.Vehicle{}, fmt.Errorf("db: %w", vehiclebus.ErrNotFound)
		}
		return vehiclebus.Vehicle{}, fmt.Errorf("db: %w", err)
	}

	return toBusVehicle(dbVeh)
}

// CreateHistory appends one ledger row. Rows in this table are never updated
// or deleted.
func (s *Store) CreateHistory(ctx context.Context, hst vehiclebus.History) error {
	const q = `
	INSERT INTO "public"."vehicle_history"
		(history_id, vehicle_id, company_id, from_status, to_status, from_location, to_location, actor_id, note, created_at)
	VALUES
		(:history_id, :vehicle_id, :company_id, :from_status, :to_status, :from_location, :to_location, :actor_id, :note, :created_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBHistory(hst)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryHistory returns the ledger rows for a vehicle, newest first.
func (s *Store) QueryHistory(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]vehiclebus.History, error) {
	data := struct {
		VehicleID string `db:"vehicle_id"`
		CompanyID string `db:"company_id"`
	}{
		VehicleID: vehicleID.String(),
		CompanyID: companyID.String(),
	}

	const q = `
	SELECT
		history_id, vehicle_id, company_id, from_status, to_status, from_location, to_location, actor_id, note, created_at
	FROM
		"public"."vehicle_history"
	WHERE
		vehicle_id = :vehicle_id AND company_id = :company_id
	ORDER BY
		created_at DESC`

	var dbHsts []historyDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbHsts); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusHistories(dbHsts)
}

// CreateObservation inserts a new observation into the database.
func (s *Store) CreateObservation(ctx context.Context, obs vehiclebus.Observation) error {
	const q = `
	INSERT INTO "public"."vehicle_observations"
		(observation_id, vehicle_id, company_id, author_id, text, created_at)
	VALUES
		(:observation_id, :vehicle_id, :company_id, :author_id, :text, :created_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBObservation(obs)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryObservations returns the observations for a vehicle, newest first.
func (s *Store) QueryObservations(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]vehiclebus.Observation, error) {
	data := struct {
		VehicleID string `db:"vehicle_id"`
		CompanyID string `db:"company_id"`
	}{
		VehicleID: vehicleID.String(),
		CompanyID: companyID.String(),
	}

	const q = `
	SELECT
		observation_id, vehicle_id, company_id, author_id, text, created_at
	FROM
		"public"."vehicle_observations"
	WHERE
		vehicle_id = :vehicle_id AND company_id = :company_id
	ORDER BY
		created_at DESC`

	var dbObs []observationDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbObs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	obs := make([]vehiclebus.Observation, len(dbObs))
	for i, db := range dbObs {
		obs[i] = toBusObservation(db)
	}

	return obs, nil
}

// QueryObservationByID gets the specified observation within the company.
func (s *Store) QueryObservationByID(ctx context.Context, companyID uuid.UUID, observationID uuid.UUID) (vehiclebus.Observation, error) {
	data := struct {
		ID        string `db:"observation_id"`
		CompanyID string `db:"company_id"`
	}{
		ID:        observationID.String(),
		CompanyID: companyID.String(),
	}

	const q = `
	SELECT
		observation_id, vehicle_id, company_id, author_id, text, created_at
	FROM
		"public"."vehicle_observations"
	WHERE
		observation_id = :observation_id AND company_id = :company_id`

	var dbObs observationDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbObs); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return vehiclebus.Observation{}, fmt.Errorf("db: %w", vehiclebus.ErrNotFound)
		}
		return vehiclebus.Observation{}, fmt.Errorf("db: %w", err)
	}

	return toBusObservation(dbObs), nil
}

// DeleteObservation removes an observation from the database.
func (s *Store) DeleteObservation(ctx context.Context, obs vehiclebus.Observation) error {
	data := struct {
		ID        string `db:"observation_id"`
		CompanyID string `db:"company_id"`
	}{
		ID:        obs.ID.String(),
		CompanyID: obs.CompanyID.String(),
	}

	const q = `
	DELETE FROM
		"public"."vehicle_observations"
	WHERE
		observation_id = :observation_id AND company_id = :company_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// CreateImage inserts a new image into the database.
func (s *Store) CreateImage(ctx context.Context, img vehiclebus.Image) error {
	const q = `
	INSERT INTO "public"."vehicle_images"
		(image_id, vehicle_id, company_id, name, content_type, data, created_at)
	VALUES
		(:image_id, :vehicle_id, :company_id, :name, :content_type, :data, :created_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBImage(img)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryImages returns the images stored for a vehicle.
func (s *Store) QueryImages(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]vehiclebus.Image, error) {
	data := struct {
		VehicleID string `db:"vehicle_id"`
		CompanyID string `db:"company_id"`
	}{
		VehicleID: vehicleID.String(),
		CompanyID: companyID.String(),
	}

	const q = `
	SELECT
		image_id, vehicle_id, company_id, name, content_type, data, created_at
	FROM
		"public"."vehicle_images"
	WHERE
		vehicle_id = :vehicle_id AND company_id = :company_id
	ORDER BY
		created_at ASC`

	var dbImgs []imageDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbImgs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	imgs := make([]vehiclebus.Image, len(dbImgs))
	for i, db := range dbImgs {
		imgs[i] = toBusImage(db)
	}

	return imgs, nil
}

// CreateDocument inserts a new document record into the database.
func (s *Store) CreateDocument(ctx context.Context, doc vehiclebus.Document) error {
	const q = `
	INSERT INTO "public"."vehicle_documents"
		(document_id, vehicle_id, company_id, name, path, size, created_at)
	VALUES
		(:document_id, :vehicle_id, :company_id, :name, :path, :size, :created_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBDocument(doc)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryDocuments returns the document records for a vehicle.
func (s *Store) QueryDocuments(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]vehiclebus.Document, error) {
	data := struct {
		VehicleID string `db:"vehicle_id"`
		CompanyID string `db:"company_id"`
	}{
		VehicleID: vehicleID.String(),
		CompanyID: companyID.String(),
	}

	const q = `
	SELECT
		document_id, vehicle_id, company_id, name, path, size, created_at
	FROM
		"public"."vehicle_documents"
	WHERE
		vehicle_id = :vehicle_id AND company_id = :company_id
	ORDER BY
		created_at ASC`

	var dbDocs []documentDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbDocs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	docs := make([]vehiclebus.Document, len(dbDocs))
	for i, db := range dbDocs {
		docs[i] = toBusDocument(db)
	}

	return docs, nil
}
