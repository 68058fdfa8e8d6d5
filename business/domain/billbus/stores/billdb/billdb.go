// Package billdb contains bill related CRUD functionality.
package billdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/velostock/velostock/business/domain/billbus"
	"github.com/velostock/velostock/business/sdk/order"
	"github.com/velostock/velostock/business/sdk/page"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/foundation/logger"
)

// Store manages the set of APIs for bill database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (billbus.Storer, error) {
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

// Create inserts a new bill into the database.
func (s *Store) Create(ctx context.Context, bil billbus.Bill) error {
	const q = `
	INSERT INTO "public"."bills"
		(bill_id, company_id, category, description, value, due_date, paid_at, recurring, created_at, updated_at)
	VALUES
		(:bill_id, :company_id, :category, :description, :value, :due_date, :paid_at, :recurring, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBBill(bil)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a bill document in the database.
func (s *Store) Update(ctx context.Context, bil billbus.Bill) error {
	const q = `
	UPDATE
		"public"."bills"
	SET
		category = :category,
		description = :description,
		value = :value,
		due_date = :due_date,
		paid_at = :paid_at,
		recurring = :recurring,
		updated_at = :updated_at
	WHERE
		bill_id = :bill_id AND company_id = :company_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBBill(bil)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a bill from the database.
func (s *Store) Delete(ctx context.Context, bil billbus.Bill) error {
	data := struct {
		ID        string `db:"bill_id"`
		CompanyID string `db:"company_id"`
	}{
		ID:        bil.ID.String(),
		CompanyID: bil.CompanyID.String(),
	}

	const q = `
	DELETE FROM
		"public"."bills"
	WHERE
		bill_id = :bill_id AND company_id = :company_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing bills from the database.
func (s *Store) Query(ctx context.Context, filter billbus.QueryFilter, orderBy order.By, page page.Page) ([]billbus.Bill, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		bill_id, company_id, category, description, value, due_date, paid_at, recurring, created_at, updated_at
	FROM
		"public"."bills"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbBils []billDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbBils); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusBills(dbBils), nil
}

// Count returns the total number of bills in the DB.
func (s *Store) Count(ctx context.Context, filter billbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."bills"`

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

// QueryByID gets the specified bill from the database within the company.
func (s *Store) QueryByID(ctx context.Context, companyID uuid.UUID, billID uuid.UUID) (billbus.Bill, error) {
	data := struct {
		ID        string `db:"bill_id"`
		CompanyID string `db:"company_id"`
	}{
		ID:        billID.String(),
		CompanyID: companyID.String(),
	}

	const q = `
	SELECT
		bill_id, company_id, category, description, value, due_date, paid_at, recurring, created_at, updated_at
	FROM
		"public"."bills"
	WHERE
		bill_id = :bill_id AND company_id = :company_id`

	var dbBil billDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbBil); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return billbus.Bill{}, fmt.Errorf("db: %w", billbus.ErrNotFound)
		}
		return billbus.Bill{}, fmt.Errorf("db: %w", err)
	}

	return toBusBill(dbBil), nil
}
