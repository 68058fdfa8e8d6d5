// Package companydb contains company related CRUD functionality.
package companydb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/velostock/velostock/business/domain/companybus"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/foundation/logger"
)

// Store manages the set of APIs for company database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (companybus.Storer, error) {
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

// Create inserts a new company into the database.
func (s *Store) Create(ctx context.Context, cmp companybus.Company) error {
	const q = `
	INSERT INTO "public"."companies"
		(company_id, name, slug, primary_color, secondary_color, stale_alert_days, commission_percent, sales_inbox, enabled, created_at, updated_at)
	VALUES
		(:company_id, :name, :slug, :primary_color, :secondary_color, :stale_alert_days, :commission_percent, :sales_inbox, :enabled, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCompany(cmp)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			if dupErr.Column == "slug" || dupErr.Column == "uq_companies_slug" {
				return fmt.Errorf("namedexeccontext: %w", companybus.ErrUniqueSlug)
			}
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a company document in the database.
func (s *Store) Update(ctx context.Context, cmp companybus.Company) error {
	const q = `
	UPDATE
		"public"."companies"
	SET
		name = :name,
		primary_color = :primary_color,
		secondary_color = :secondary_color,
		stale_alert_days = :stale_alert_days,
		commission_percent = :commission_percent,
		sales_inbox = :sales_inbox,
		enabled = :enabled,
		updated_at = :updated_at
	WHERE
		company_id = :company_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCompany(cmp)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified company from the database.
func (s *Store) QueryByID(ctx context.Context, companyID uuid.UUID) (companybus.Company, error) {
	data := struct {
		ID string `db:"company_id"`
	}{
		ID: companyID.String(),
	}

	const q = `
	SELECT
		company_id, name, slug, primary_color, secondary_color, stale_alert_days, commission_percent, sales_inbox, enabled, created_at, updated_at
	FROM
		"public"."companies"
	WHERE
		company_id = :company_id`

	var dbCmp companyDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbCmp); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return companybus.Company{}, fmt.Errorf("db: %w", companybus.ErrNotFound)
		}
		return companybus.Company{}, fmt.Errorf("db: %w", err)
	}

	return toBusCompany(dbCmp)
}
