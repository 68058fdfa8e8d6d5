// Package costbus provides business access to the costs recorded against a
// vehicle during preparation.
package costbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/sdk/order"
	"github.com/velostock/velostock/business/sdk/page"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/foundation/otel"
)

// ErrNotFound is returned when a cost does not exist within the company.
var ErrNotFound = errors.New("cost not found")

// Storer defines the behavior required by the costbus to interact with the
// database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, cst Cost) error
	Update(ctx context.Context, cst Cost) error
	Delete(ctx context.Context, cst Cost) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Cost, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, companyID uuid.UUID, costID uuid.UUID) (Cost, error)
}

// Core manages the set of APIs for cost access.
type Core struct {
	storer Storer
}

// NewCore constructs a core for cost api access.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer), nil
}

// Create records a new cost against a vehicle.
func (c *Core) Create(ctx context.Context, nc NewCost) (Cost, error) {
	ctx, span := otel.AddSpan(ctx, "business.costbus.create")
	defer span.End()

	now := time.Now()

	cst := Cost{
		ID:            uuid.New(),
		VehicleID:     nc.VehicleID,
		CompanyID:     nc.CompanyID,
		Category:      nc.Category,
		Description:   nc.Description,
		Value:         nc.Value,
		Date:          nc.Date,
		PaymentMethod: nc.PaymentMethod,
		Payer:         nc.Payer,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.storer.Create(ctx, cst); err != nil {
		return Cost{}, fmt.Errorf("create: %w", err)
	}

	return cst, nil
}

// Update modifies data about a cost.
func (c *Core) Update(ctx context.Context, cst Cost, uc UpdateCost) (Cost, error) {
	ctx, span := otel.AddSpan(ctx, "business.costbus.update")
	defer span.End()

	if uc.Category != nil {
		cst.Category = *uc.Category
	}

	if uc.Description != nil {
		cst.Description = *uc.Description
	}

	if uc.Value != nil {
		cst.Value = *uc.Value
	}

	if uc.Date != nil {
		cst.Date = *uc.Date
	}

	if uc.PaymentMethod != nil {
		cst.PaymentMethod = *uc.PaymentMethod
	}

	if uc.Payer != nil {
		cst.Payer = *uc.Payer
	}

	cst.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, cst); err != nil {
		return Cost{}, fmt.Errorf("update: %w", err)
	}

	return cst, nil
}

// Delete removes a cost record.
func (c *Core) Delete(ctx context.Context, cst Cost) error {
	ctx, span := otel.AddSpan(ctx, "business.costbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, cst); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing costs.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Cost, error) {
	ctx, span := otel.AddSpan(ctx, "business.costbus.query")
	defer span.End()

	csts, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return csts, nil
}

// Count returns the total number of costs.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.costbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the cost by the specified ID within the company.
func (c *Core) QueryByID(ctx context.Context, companyID uuid.UUID, costID uuid.UUID) (Cost, error) {
	ctx, span := otel.AddSpan(ctx, "business.costbus.queryByID")
	defer span.End()

	cst, err := c.storer.QueryByID(ctx, companyID, costID)
	if err != nil {
		return Cost{}, fmt.Errorf("query: costID[%s]: %w", costID, err)
	}

	return cst, nil
}
