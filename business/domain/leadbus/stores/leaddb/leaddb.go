// Package leaddb contains lead related CRUD functionality.
package leaddb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/velostock/velostock/business/domain/leadbus"
	"github.com/velostock/velostock/business/sdk/order"
	"github.com/velostock/velostock/business/sdk/page"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/foundation/logger"
)

// Store manages the set of APIs for lead database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (leadbus.Storer, error) {
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

// Create inserts a new lead into the database.
func (s *Store) Create(ctx context.Context, led leadbus.Lead) error {
	const q = `
	INSERT INTO "public"."leads"
		(lead_id, company_id, name, phone, email, vehicle_id, source, status, notes, assigned_to, created_at, updated_at)
	VALUES
		(:lead_id, :company_id, :name, :phone, :email, :vehicle_id, :source, :status, :notes, :assigned_to, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBLead(led)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a lead document in the database.
func (s *Store) Update(ctx context.Context, led leadbus.Lead) error {
	const q = `
	UPDATE
		"public"."leads"
	SET
		name = :name,
		phone = :phone,
		email = :email,
		vehicle_id = :vehicle_id,
		source = :source,
		status = :status,
		notes = :notes,
		assigned_to = :assigned_to,
		updated_at = :updated_at
	WHERE
		lead_id = :lead_id AND company_id = :company_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBLead(led)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a lead from the database.
func (s *Store) Delete(ctx context.Context, led leadbus.Lead) error {
	data := struct {
		ID        string `db:"lead_id"`
		CompanyID string `db:"company_id"`
	}{
		ID:        led.ID.String(),
		CompanyID: led.CompanyID.String(),
	}

	const q = `
	DELETE FROM
		"public"."leads"
	WHERE
		lead_id = :lead_id AND company_id = :company_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing leads from the database.
func (s *Store) Query(ctx context.Context, filter leadbus.QueryFilter, orderBy order.By, page page.Page) ([]leadbus.Lead, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		lead_id, company_id, name, phone, email, vehicle_id, source, status, notes, assigned_to, created_at, updated_at
	FROM
		"public"."leads"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbLeds []leadDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbLeds); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusLeads(dbLeds)
}

// Count returns the total number of leads in the DB.
func (s *Store) Count(ctx context.Context, filter leadbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."leads"`

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

// QueryByID gets the specified lead from the database within the company.
func (s *Store) QueryByID(ctx context.Context, companyID uuid.UUID, leadID uuid.UUID) (leadbus.Lead, error) {
	data := struct {
		ID        string `db:"lead_id"`
		CompanyID string `db:"company_id"`
	}{
		ID:        leadID.String(),
		CompanyID: companyID.String(),
	}

	const q = `
	SELECT
		lead_id, company_id, name, phone, email, vehicle_id, source, status, notes, assigned_to, created_at, updated_at
	FROM
		"public"."leads"
	WHERE
		lead_id = :lead_id AND company_id = :company_id`

	var dbLed leadDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbLed); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return leadbus.Lead{}, fmt.Errorf("db: %w", leadbus.ErrNotFound)
		}
		return leadbus.Lead{}, fmt.Errorf("db: %w", err)
	}

	return toBusLead(dbLed)
}
