// Package billbus provides business access to company bills payable.
package billbus

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

// ErrNotFound is returned when a bill does not exist within the company.
var ErrNotFound = errors.New("bill not found")

// Storer defines the behavior required by the billbus to interact with the
// database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, bil Bill) error
	Update(ctx context.Context, bil Bill) error
	Delete(ctx context.Context, bil Bill) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Bill, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, companyID uuid.UUID, billID uuid.UUID) (Bill, error)
}

// Core manages the set of APIs for bill access.
type Core struct {
	storer Storer
}

// NewCore constructs a core for bill api access.
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

// Create adds a new bill to the system.
func (c *Core) Create(ctx context.Context, nb NewBill) (Bill, error) {
	ctx, span := otel.AddSpan(ctx, "business.billbus.create")
	defer span.End()

	now := time.Now()

	bil := Bill{
		ID:          uuid.New(),
		CompanyID:   nb.CompanyID,
		Category:    nb.Category,
		Description: nb.Description,
		Value:       nb.Value,
		DueDate:     nb.DueDate,
		Recurring:   nb.Recurring,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, bil); err != nil {
		return Bill{}, fmt.Errorf("create: %w", err)
	}

	return bil, nil
}

// Update modifies data about a bill. Marking a bill paid records when.
func (c *Core) Update(ctx context.Context, bil Bill, ub UpdateBill) (Bill, error) {
	ctx, span := otel.AddSpan(ctx, "business.billbus.update")
	defer span.End()

	if ub.Category != nil {
		bil.Category = *ub.Category
	}

	if ub.Description != nil {
		bil.Description = *ub.Description
	}

	if ub.Value != nil {
		bil.Value = *ub.Value
	}

	if ub.DueDate != nil {
		bil.DueDate = *ub.DueDate
	}

	if ub.Recurring != nil {
		bil.Recurring = *ub.Recurring
	}

	if ub.Paid != nil {
		switch {
		case *ub.Paid && bil.PaidAt == nil:
			now := time.Now()
			bil.PaidAt = &now
		case !*ub.Paid:
			bil.PaidAt = nil
		}
	}

	bil.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, bil); err != nil {
		return Bill{}, fmt.Errorf("update: %w", err)
	}

	return bil, nil
}

// Delete removes a bill from the system.
func (c *Core) Delete(ctx context.Context, bil Bill) error {
	ctx, span := otel.AddSpan(ctx, "business.billbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, bil); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing bills.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Bill, error) {
	ctx, span := otel.AddSpan(ctx, "business.billbus.query")
	defer span.End()

	bils, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return bils, nil
}

// Count returns the total number of bills.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.billbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the bill by the specified ID within the company.
func (c *Core) QueryByID(ctx context.Context, companyID uuid.UUID, billID uuid.UUID) (Bill, error) {
	ctx, span := otel.AddSpan(ctx, "business.billbus.queryByID")
	defer span.End()

	bil, err := c.storer.QueryByID(ctx, companyID, billID)
	if err != nil {
		return Bill{}, fmt.Errorf("query: billID[%s]: %w", billID, err)
	}

	return bil, nil
}
