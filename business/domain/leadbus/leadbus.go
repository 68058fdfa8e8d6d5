// Package leadbus provides business access to sales leads.
package leadbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/sdk/events"
	"github.com/velostock/velostock/business/sdk/order"
	"github.com/velostock/velostock/business/sdk/page"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/foundation/otel"
)

// ErrNotFound is returned when a lead does not exist within the company.
var ErrNotFound = errors.New("lead not found")

// Publisher abstracts the event producer so tests can run without kafka.
type Publisher interface {
	Publish(evt events.Event)
}

// Storer defines the behavior required by the leadbus to interact with the
// database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, led Lead) error
	Update(ctx context.Context, led Lead) error
	Delete(ctx context.Context, led Lead) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Lead, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, companyID uuid.UUID, leadID uuid.UUID) (Lead, error)
}

// Core manages the set of APIs for lead access.
type Core struct {
	storer    Storer
	publisher Publisher
}

// NewCore constructs a core for lead api access.
func NewCore(storer Storer, publisher Publisher) *Core {
	return &Core{
		storer:    storer,
		publisher: publisher,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer, c.publisher), nil
}

// Create adds a new lead to the system.
func (c *Core) Create(ctx context.Context, nl NewLead) (Lead, error) {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.create")
	defer span.End()

	now := time.Now()

	led := Lead{
		ID:         uuid.New(),
		CompanyID:  nl.CompanyID,
		Name:       nl.Name,
		Phone:      nl.Phone,
		Email:      nl.Email,
		VehicleID:  nl.VehicleID,
		Source:     nl.Source,
		Status:     nl.Status,
		Notes:      nl.Notes,
		AssignedTo: nl.AssignedTo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if led.Status == "" {
		led.Status = StatusNew
	}

	if err := c.storer.Create(ctx, led); err != nil {
		return Lead{}, fmt.Errorf("create: %w", err)
	}

	if c.publisher != nil {
		c.publisher.Publish(events.Event{
			Type:      events.LeadCreated,
			CompanyID: led.CompanyID,
			EntityID:  led.ID,
		})
	}

	return led, nil
}

// Update modifies data about a lead.
func (c *Core) Update(ctx context.Context, led Lead, ul UpdateLead) (Lead, error) {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.update")
	defer span.End()

	if ul.Name != nil {
		led.Name = *ul.Name
	}

	if ul.Phone != nil {
		led.Phone = *ul.Phone
	}

	if ul.Email != nil {
		led.Email = *ul.Email
	}

	if ul.VehicleID != nil {
		led.VehicleID = ul.VehicleID
	}

	if ul.Source != nil {
		led.Source = *ul.Source
	}

	if ul.Status != nil {
		led.Status = *ul.Status
	}

	if ul.Notes != nil {
		led.Notes = *ul.Notes
	}

	if ul.AssignedTo != nil {
		led.AssignedTo = ul.AssignedTo
	}

	led.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, led); err != nil {
		return Lead{}, fmt.Errorf("update: %w", err)
	}

	return led, nil
}

// Delete removes a lead from the system.
func (c *Core) Delete(ctx context.Context, led Lead) error {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, led); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing leads.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Lead, error) {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.query")
	defer span.End()

	leds, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return leds, nil
}

// Count returns the total number of leads.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the lead by the specified ID within the company.
func (c *Core) QueryByID(ctx context.Context, companyID uuid.UUID, leadID uuid.UUID) (Lead, error) {
	ctx, span := otel.AddSpan(ctx, "business.leadbus.queryByID")
	defer span.End()

	led, err := c.storer.QueryByID(ctx, companyID, leadID)
	if err != nil {
		return Lead{}, fmt.Errorf("query: leadID[%s]: %w", leadID, err)
	}

	return led, nil
}
