// Package companybus provides business access to company (tenant) data. All
// domain data in the system is scoped to exactly one company.
package companybus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/foundation/logger"
	"github.com/velostock/velostock/foundation/otel"
)

var (
	ErrNotFound   = errors.New("company not found")
	ErrUniqueSlug = errors.New("slug is not unique")
)

// Storer defines the behavior required by the companybus to interact with
// the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, cmp Company) error
	Update(ctx context.Context, cmp Company) error
	QueryByID(ctx context.Context, companyID uuid.UUID) (Company, error)
}

// Core manages the set of APIs for company access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for company api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		storer: storer,
		log:    log,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, storer), nil
}

// Create adds a new company to the system.
func (c *Core) Create(ctx context.Context, nc NewCompany) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.create")
	defer span.End()

	now := time.Now()

	cmp := Company{
		ID:                uuid.New(),
		Name:              nc.Name,
		Slug:              nc.Slug,
		PrimaryColor:      defaultPrimaryColor,
		SecondaryColor:    defaultSecondaryColor,
		StaleAlertDays:    defaultStaleAlertDays,
		CommissionPercent: nc.CommissionPercent,
		SalesInbox:        nc.SalesInbox,
		Enabled:           true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := c.storer.Create(ctx, cmp); err != nil {
		return Company{}, fmt.Errorf("create: %w", err)
	}

	return cmp, nil
}

// Update modifies data about a company.
func (c *Core) Update(ctx context.Context, cmp Company, uc UpdateCompany) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.update")
	defer span.End()

	if uc.Name != nil {
		cmp.Name = *uc.Name
	}

	if uc.PrimaryColor != nil {
		cmp.PrimaryColor = *uc.PrimaryColor
	}

	if uc.SecondaryColor != nil {
		cmp.SecondaryColor = *uc.SecondaryColor
	}

	if uc.StaleAlertDays != nil {
		cmp.StaleAlertDays = *uc.StaleAlertDays
	}

	if uc.CommissionPercent != nil {
		cmp.CommissionPercent = *uc.CommissionPercent
	}

	if uc.SalesInbox != nil {
		cmp.SalesInbox = *uc.SalesInbox
	}

	if uc.Enabled != nil {
		cmp.Enabled = *uc.Enabled
	}

	cmp.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, cmp); err != nil {
		return Company{}, fmt.Errorf("update: %w", err)
	}

	return cmp, nil
}

// QueryByID finds the company by the specified ID.
func (c *Core) QueryByID(ctx context.Context, companyID uuid.UUID) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.queryByID")
	defer span.End()

	cmp, err := c.storer.QueryByID(ctx, companyID)
	if err != nil {
		return Company{}, fmt.Errorf("query: companyID[%s]: %w", companyID, err)
	}

	return cmp, nil
}
