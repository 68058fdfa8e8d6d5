// Package vehiclebus provides business access to the vehicle inventory. A
// vehicle moves through the preparation pipeline via UpdateStatus, which is
// the only path that mutates status or physical location and always appends
// one history row per change.
package vehiclebus

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
	"github.com/velostock/velostock/business/types/vehiclestatus"
	"github.com/velostock/velostock/foundation/otel"
)

var (
	ErrNotFound          = errors.New("vehicle not found")
	ErrUniquePlate       = errors.New("plate is not unique")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Publisher abstracts the event producer so tests can run without kafka.
type Publisher interface {
	Publish(evt events.Event)
}

// Storer defines the behavior required by the vehiclebus to interact with the
// database. Query methods are company scoped, a vehicle id from another
// company behaves as if it does not exist.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, veh Vehicle) error
	Update(ctx context.Context, veh Vehicle) error
	Delete(ctx context.Context, veh Vehicle) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Vehicle, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) (Vehicle, error)
	CreateHistory(ctx context.Context, hst History) error
	QueryHistory(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]History, error)
	CreateObservation(ctx context.Context, obs Observation) error
	QueryObservations(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]Observation, error)
	QueryObservationByID(ctx context.Context, companyID uuid.UUID, observationID uuid.UUID) (Observation, error)
	DeleteObservation(ctx context.Context, obs Observation) error
	CreateImage(ctx context.Context, img Image) error
	QueryImages(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]Image, error)
	CreateDocument(ctx context.Context, doc Document) error
	QueryDocuments(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]Document, error)
}

// Core manages the set of APIs for vehicle access.
type Core struct {
	storer    Storer
	publisher Publisher
}

// NewCore constructs a core for vehicle api access.
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

// Create adds a new vehicle to the inventory. New vehicles always start at
// intake regardless of what the caller asked for.
func (c *Core) Create(ctx context.Context, nv NewVehicle) (Vehicle, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.create")
	defer span.End()

	now := time.Now()

	veh := Vehicle{
		ID:              uuid.New(),
		CompanyID:       nv.CompanyID,
		Brand:           nv.Brand,
		Model:           nv.Model,
		Year:            nv.Year,
		Color:           nv.Color,
		Plate:           nv.Plate,
		Odometer:        nv.Odometer,
		Fuel:            nv.Fuel,
		Status:          vehiclestatus.Entrada,
		Location:        nv.Location,
		LocationDetail:  nv.LocationDetail,
		PurchasePrice:   nv.PurchasePrice,
		AskingPrice:     nv.AskingPrice,
		MinPrice:        nv.MinPrice,
		Checklist:       nv.Checklist.Normalize(),
		StatusChangedAt: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := c.storer.Create(ctx, veh); err != nil {
		return Vehicle{}, fmt.Errorf("create: %w", err)
	}

	c.publish(events.VehicleCreated, veh)

	return veh, nil
}

// Update modifies the descriptive and price attributes of a vehicle. Status
// and location never change through this path.
func (c *Core) Update(ctx context.Context, veh Vehicle, uv UpdateVehicle) (Vehicle, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.update")
	defer span.End()

	if uv.Brand != nil {
		veh.Brand = *uv.Brand
	}

	if uv.Model != nil {
		veh.Model = *uv.Model
	}

	if uv.Year != nil {
		veh.Year = *uv.Year
	}

	if uv.Color != nil {
		veh.Color = *uv.Color
	}

	if uv.Plate != nil {
		veh.Plate = *uv.Plate
	}

	if uv.Odometer != nil {
		veh.Odometer = *uv.Odometer
	}

	if uv.Fuel != nil {
		veh.Fuel = *uv.Fuel
	}

	if uv.PurchasePrice != nil {
		veh.PurchasePrice = *uv.PurchasePrice
	}

	if uv.AskingPrice != nil {
		veh.AskingPrice = *uv.AskingPrice
	}

	if uv.MinPrice != nil {
		veh.MinPrice = *uv.MinPrice
	}

	if uv.SoldPrice != nil {
		veh.SoldPrice = uv.SoldPrice
	}

	veh.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, veh); err != nil {
		return Vehicle{}, fmt.Errorf("update: %w", err)
	}

	return veh, nil
}

// UpdateChecklist replaces a vehicle's checklist with the normalized form of
// the supplied document.
func (c *Core) UpdateChecklist(ctx context.Context, veh Vehicle, cl Checklist) (Vehicle, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.updateChecklist")
	defer span.End()

	veh.Checklist = cl.Normalize()
	veh.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, veh); err != nil {
		return Vehicle{}, fmt.Errorf("update: %w", err)
	}

	return veh, nil
}

// UpdateStatus moves a vehicle through the pipeline or between physical
// locations. It rejects illegal transitions, updates the row and appends one
// history row capturing the change. Callers run this inside a transaction so
// the row update and the ledger insert commit together.
func (c *Core) UpdateStatus(ctx context.Context, veh Vehicle, ut UpdateStatus) (Vehicle, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.updateStatus")
	defer span.End()

	newLocation := veh.Location
	if ut.Location != nil {
		newLocation = *ut.Location
	}

	newDetail := veh.LocationDetail
	if ut.LocationDetail != nil {
		newDetail = *ut.LocationDetail
	}

	statusChanged := !ut.Status.Equal(veh.Status)
	locationChanged := newLocation != veh.Location || newDetail != veh.LocationDetail

	if statusChanged && !vehiclestatus.CanTransition(veh.Status, ut.Status) {
		return Vehicle{}, fmt.Errorf("from[%s] to[%s]: %w", veh.Status, ut.Status, ErrInvalidTransition)
	}

	if !statusChanged && !locationChanged {
		return Vehicle{}, fmt.Errorf("from[%s] to[%s]: %w", veh.Status, ut.Status, ErrInvalidTransition)
	}

	now := time.Now()

	hst := History{
		ID:           uuid.New(),
		VehicleID:    veh.ID,
		CompanyID:    veh.CompanyID,
		FromStatus:   veh.Status,
		ToStatus:     ut.Status,
		FromLocation: veh.Location,
		ToLocation:   newLocation,
		ActorID:      ut.ActorID,
		Note:         ut.Note,
		CreatedAt:    now,
	}

	veh.Status = ut.Status
	veh.Location = newLocation
	veh.LocationDetail = newDetail
	veh.StatusChangedAt = now
	veh.UpdatedAt = now

	if err := c.storer.Update(ctx, veh); err != nil {
		return Vehicle{}, fmt.Errorf("update: %w", err)
	}

	if err := c.storer.CreateHistory(ctx, hst); err != nil {
		return Vehicle{}, fmt.Errorf("createhistory: %w", err)
	}

	c.publish(events.VehicleStatusChanged, veh)
	if statusChanged && ut.Status.Equal(vehiclestatus.Vendido) {
		c.publish(events.VehicleSold, veh)
	}

	return veh, nil
}

// Delete removes a vehicle and its dependent rows from the inventory.
func (c *Core) Delete(ctx context.Context, veh Vehicle) error {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, veh); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	c.publish(events.VehicleDeleted, veh)

	return nil
}

// Query retrieves a list of existing vehicles.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Vehicle, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.query")
	defer span.End()

	vehs, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return vehs, nil
}

// Count returns the total number of vehicles.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the vehicle by the specified ID within the company.
func (c *Core) QueryByID(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) (Vehicle, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.queryByID")
	defer span.End()

	veh, err := c.storer.QueryByID(ctx, companyID, vehicleID)
	if err != nil {
		return Vehicle{}, fmt.Errorf("query: vehicleID[%s]: %w", vehicleID, err)
	}

	return veh, nil
}

// QueryHistory returns the ledger rows for a vehicle, newest first.
func (c *Core) QueryHistory(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]History, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.queryHistory")
	defer span.End()

	hsts, err := c.storer.QueryHistory(ctx, companyID, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("queryhistory: vehicleID[%s]: %w", vehicleID, err)
	}

	return hsts, nil
}

func (c *Core) publish(typ events.EventType, veh Vehicle) {
	if c.publisher == nil {
		return
	}

	c.publisher.Publish(events.Event{
		Type:      typ,
		CompanyID: veh.CompanyID,
		EntityID:  veh.ID,
	})
}
