// Package costdb contains cost related CRUD functionality.
package costdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/velostock/velostock/business/domain/costbus"
	"github.com/velostock/velostock/business/sdk/order"
	"github.com/velostock/velostock/business/sdk/page"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/foundation/logger"
)

// Store manages the set of APIs for cost database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (costbus.Storer, error) {
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

// Create inserts a new cost into the database.
func (s *Store) Create(ctx context.Context, cst costbus.Cost) error {
	const q = `
	INSERT INTO "public"."vehicle_costs"
		(cost_id, vehicle_id, company_id, category, description, value, date, payment_method, payer, created_at, updated_at)
	VALUES
		(:cost_id, :vehicle_id, :company_id, :category, :description, :value, :date, :payment_method, :payer, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCost(cst)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a cost document in the database.
func (s *Store) Update(ctx context.Context, cst costbus.Cost) error {
	const q = `
	UPDATE
		"public"."vehicle_costs"
	SET
		category = :category,
		description = :description,
		value = :value,
		date = :date,
		payment_method = :payment_method,
		payer = :payer,
		updated_at = :updated_at
	WHERE
		cost_id = :cost_id AND company_id = :company_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCost(cst)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a cost from the database.
func (s *Store) Delete(ctx context.Context, cst costbus.Cost) error {
	data := struct {
		ID        string `db:"cost_id"`
		CompanyID string `db:"company_id"`
	}{
		ID:        cst.ID.String(),
		CompanyID: cst.CompanyID.String(),
	}

	const q = `
	DELETE FROM
		"public"."vehicle_costs"
	WHERE
		cost_id = :cost_id AND company_id = :company_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing costs from the database.
func (s *Store) Query(ctx context.Context, filter costbus.QueryFilter, orderBy order.By, page page.Page) ([]costbus.Cost, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		cost_id, vehicle_id, company_id, category, description, value, date, payment_method, payer, created_at, updated_at
	FROM
		"public"."vehicle_costs"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbCsts []costDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbCsts); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusCosts(dbCsts), nil
}

// Count returns the total number of costs in the DB.
func (s *Store) Count(ctx context.Context, filter costbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."vehicle_costs"`

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

// QueryByID gets the specified cost from the database within the company.
func (s *Store) QueryByID(ctx context.Context, companyID uuid.UUID, costID uuid.UUID) (costbus.Cost, error) {
	data := struct {
		ID        string `db:"cost_id"`
		CompanyID string `db:"company_id"`
	}{
		ID:        costID.String(),
		CompanyID: companyID.String(),
	}

	const q = `
	SELECT
		cost_id, vehicle_id, company_id, category, description, value, date, payment_method, payer, created_at, updated_at
	FROM
		"public"."vehicle_costs"
	WHERE
		cost_id = :cost_id AND company_id = :company_id`

	var dbCst costDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbCst); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return costbus.Cost{}, fmt.Errorf("db: %w", costbus.ErrNotFound)
		}
		return costbus.Cost{}, fmt.Errorf("db: %w", err)
	}

	return toBusCost(dbCst), nil
}
