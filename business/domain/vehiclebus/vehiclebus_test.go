package vehiclebus_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velostock/velostock/business/domain/vehiclebus"
	"github.com/velostock/velostock/business/sdk/events"
	"github.com/velostock/velostock/business/sdk/order"
	"github.com/velostock/velostock/business/sdk/page"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/business/types/money"
	"github.com/velostock/velostock/business/types/plate"
	"github.com/velostock/velostock/business/types/vehiclestatus"
)

// fakeStorer keeps everything in memory so the core logic can be exercised
// without a database.
type fakeStorer struct {
	vehicles  map[uuid.UUID]vehiclebus.Vehicle
	histories []vehiclebus.History
}

func newFakeStorer() *fakeStorer {
	return &fakeStorer{
		vehicles: make(map[uuid.UUID]vehiclebus.Vehicle),
	}
}

func (s *fakeStorer) NewWithTx(tx sqldb.CommitRollbacker) (vehiclebus.Storer, error) {
	return s, nil
}

func (s *fakeStorer) Create(ctx context.Context, veh vehiclebus.Vehicle) error {
	s.vehicles[veh.ID] = veh
	return nil
}

func (s *fakeStorer) Update(ctx context.Context, veh vehiclebus.Vehicle) error {
	s.vehicles[veh.ID] = veh
	return nil
}

func (s *fakeStorer) Delete(ctx context.Context, veh vehiclebus.Vehicle) error {
	delete(s.vehicles, veh.ID)
	return nil
}

func (s *fakeStorer) Query(ctx context.Context, filter vehiclebus.QueryFilter, orderBy order.By, page page.Page) ([]vehiclebus.Vehicle, error) {
	var vehs []vehiclebus.Vehicle
	for _, veh := range s.vehicles {
		if filter.CompanyID != nil && veh.CompanyID != *filter.CompanyID {
			continue
		}
		vehs = append(vehs, veh)
	}
	return vehs, nil
}

func (s *fakeStorer) Count(ctx context.Context, filter vehiclebus.QueryFilter) (int, error) {
	vehs, _ := s.Query(ctx, filter, order.By{}, page.Page{})
	return len(vehs), nil
}

func (s *fakeStorer) QueryByID(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) (vehiclebus.Vehicle, error) {
	veh, exists := s.vehicles[vehicleID]
	if !exists || veh.CompanyID != companyID {
		return vehiclebus.Vehicle{}, vehiclebus.ErrNotFound
	}
	return veh, nil
}

func (s *fakeStorer) CreateHistory(ctx context.Context, hst vehiclebus.History) error {
	s.histories = append(s.histories, hst)
	return nil
}

func (s *fakeStorer) QueryHistory(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]vehiclebus.History, error) {
	var hsts []vehiclebus.History
	for _, hst := range s.histories {
		if hst.CompanyID == companyID && hst.VehicleID == vehicleID {
			hsts = append(hsts, hst)
		}
	}
	return hsts, nil
}

func (s *fakeStorer) CreateObservation(ctx context.Context, obs vehiclebus.Observation) error {
	return nil
}

func (s *fakeStorer) QueryObservations(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]vehiclebus.Observation, error) {
	return nil, nil
}

func (s *fakeStorer) QueryObservationByID(ctx context.Context, companyID uuid.UUID, observationID uuid.UUID) (vehiclebus.Observation, error) {
	return vehiclebus.Observation{}, vehiclebus.ErrNotFound
}

func (s *fakeStorer) DeleteObservation(ctx context.Context, obs vehiclebus.Observation) error {
	return nil
}

func (s *fakeStorer) CreateImage(ctx context.Context, img vehiclebus.Image) error {
	return nil
}

func (s *fakeStorer) QueryImages(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]vehiclebus.Image, error) {
	return nil, nil
}

func (s *fakeStorer) CreateDocument(ctx context.Context, doc vehiclebus.Document) error {
	return nil
}

func (s *fakeStorer) QueryDocuments(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]vehiclebus.Document, error) {
	return nil, nil
}

// fakePublisher records every published event.
type fakePublisher struct {
	events []events.Event
}

func (p *fakePublisher) Publish(evt events.Event) {
	p.events = append(p.events, evt)
}

func (p *fakePublisher) types() []events.EventType {
	typs := make([]events.EventType, len(p.events))
	for i, evt := range p.events {
		typs[i] = evt.Type
	}
	return typs
}

// =============================================================================

func newTestCore(t *testing.T) (*vehiclebus.Core, *fakeStorer, *fakePublisher) {
	t.Helper()

	storer := newFakeStorer()
	publisher := &fakePublisher{}

	return vehiclebus.NewCore(storer, publisher), storer, publisher
}

func createVehicle(t *testing.T, core *vehiclebus.Core, companyID uuid.UUID) vehiclebus.Vehicle {
	t.Helper()

	veh, err := core.Create(context.Background(), vehiclebus.NewVehicle{
		CompanyID:     companyID,
		Brand:         "Fiat",
		Model:         "Argo",
		Year:          2021,
		Color:         "Prata",
		Plate:         plate.MustParse("ABC1D23"),
		Odometer:      45000,
		Fuel:          "Flex",
		Location:      "Pátio A",
		PurchasePrice: money.MustParse(52000),
		AskingPrice:   money.MustParse(61000),
		MinPrice:      money.MustParse(57000),
	})
	require.NoError(t, err)

	return veh
}

func Test_Create_StartsAtIntake(t *testing.T) {
	core, _, publisher := newTestCore(t)
	companyID := uuid.New()

	veh := createVehicle(t, core, companyID)

	assert.True(t, veh.Status.Equal(vehiclestatus.Entrada))
	assert.Equal(t, companyID, veh.CompanyID)
	assert.Equal(t, veh.CreatedAt, veh.StatusChangedAt)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.VehicleCreated, publisher.events[0].Type)
	assert.Equal(t, veh.ID, publisher.events[0].EntityID)
}

func Test_UpdateStatus_AppendsLedgerRow(t *testing.T) {
	ctx := context.Background()
	core, storer, publisher := newTestCore(t)
	companyID := uuid.New()

	veh := createVehicle(t, core, companyID)
	actorID := uuid.New()

	upd, err := core.UpdateStatus(ctx, veh, vehiclebus.UpdateStatus{
		Status:  vehiclestatus.EmReparos,
		Note:    "freios rangendo",
		ActorID: actorID,
	})
	require.NoError(t, err)

	assert.True(t, upd.Status.Equal(vehiclestatus.EmReparos))
	assert.True(t, upd.StatusChangedAt.After(veh.StatusChangedAt) || upd.StatusChangedAt.Equal(veh.StatusChangedAt))

	require.Len(t, storer.histories, 1)
	hst := storer.histories[0]
	assert.Equal(t, veh.ID, hst.VehicleID)
	assert.True(t, hst.FromStatus.Equal(vehiclestatus.Entrada))
	assert.True(t, hst.ToStatus.Equal(upd.Status))
	assert.Equal(t, veh.Location, hst.FromLocation)
	assert.Equal(t, upd.Location, hst.ToLocation)
	assert.Equal(t, actorID, hst.ActorID)
	assert.Equal(t, "freios rangendo", hst.Note)

	assert.Contains(t, publisher.types(), events.VehicleStatusChanged)
	assert.NotContains(t, publisher.types(), events.VehicleSold)
}

func Test_UpdateStatus_SoldPublishesEvent(t *testing.T) {
	ctx := context.Background()
	core, _, publisher := newTestCore(t)

	veh := createVehicle(t, core, uuid.New())

	upd, err := core.UpdateStatus(ctx, veh, vehiclebus.UpdateStatus{
		Status:  vehiclestatus.Vendido,
		ActorID: uuid.New(),
	})
	require.NoError(t, err)

	assert.True(t, upd.Status.Equal(vehiclestatus.Vendido))
	assert.Contains(t, publisher.types(), events.VehicleSold)
}

func Test_UpdateStatus_RejectsIllegalTransition(t *testing.T) {
	ctx := context.Background()
	core, storer, _ := newTestCore(t)

	veh := createVehicle(t, core, uuid.New())

	sold, err := core.UpdateStatus(ctx, veh, vehiclebus.UpdateStatus{
		Status:  vehiclestatus.Vendido,
		ActorID: uuid.New(),
	})
	require.NoError(t, err)

	// A sold vehicle can only be archived.
	_, err = core.UpdateStatus(ctx, sold, vehiclebus.UpdateStatus{
		Status:  vehiclestatus.EmReparos,
		ActorID: uuid.New(),
	})
	require.ErrorIs(t, err, vehiclebus.ErrInvalidTransition)

	// The failed attempt left no ledger row behind.
	assert.Len(t, storer.histories, 1)

	stored := storer.vehicles[veh.ID]
	assert.True(t, stored.Status.Equal(vehiclestatus.Vendido))
}

func Test_UpdateStatus_LocationOnlyMove(t *testing.T) {
	ctx := context.Background()
	core, storer, _ := newTestCore(t)

	veh := createVehicle(t, core, uuid.New())

	newLocation := "Pátio B"
	upd, err := core.UpdateStatus(ctx, veh, vehiclebus.UpdateStatus{
		Status:   veh.Status,
		Location: &newLocation,
		ActorID:  uuid.New(),
	})
	require.NoError(t, err)

	assert.Equal(t, newLocation, upd.Location)
	assert.True(t, upd.Status.Equal(veh.Status))

	// A physical move is still ledgered.
	require.Len(t, storer.histories, 1)
	assert.Equal(t, "Pátio A", storer.histories[0].FromLocation)
	assert.Equal(t, newLocation, storer.histories[0].ToLocation)
}

func Test_UpdateStatus_RejectsNoOp(t *testing.T) {
	ctx := context.Background()
	core, storer, _ := newTestCore(t)

	veh := createVehicle(t, core, uuid.New())

	_, err := core.UpdateStatus(ctx, veh, vehiclebus.UpdateStatus{
		Status:  veh.Status,
		ActorID: uuid.New(),
	})
	require.ErrorIs(t, err, vehiclebus.ErrInvalidTransition)
	assert.Empty(t, storer.histories)
}

func Test_QueryByID_CompanyScoped(t *testing.T) {
	ctx := context.Background()
	core, _, _ := newTestCore(t)
	companyID := uuid.New()

	veh := createVehicle(t, core, companyID)

	got, err := core.QueryByID(ctx, companyID, veh.ID)
	require.NoError(t, err)
	assert.Equal(t, veh.ID, got.ID)

	// Another company's id behaves as if the vehicle does not exist.
	_, err = core.QueryByID(ctx, uuid.New(), veh.ID)
	require.ErrorIs(t, err, vehiclebus.ErrNotFound)
}

func Test_Delete_KeepsHistoryAndPublishes(t *testing.T) {
	ctx := context.Background()
	core, storer, publisher := newTestCore(t)
	companyID := uuid.New()

	veh := createVehicle(t, core, companyID)

	_, err := core.UpdateStatus(ctx, veh, vehiclebus.UpdateStatus{
		Status:  vehiclestatus.EmReparos,
		ActorID: uuid.New(),
	})
	require.NoError(t, err)

	stored := storer.vehicles[veh.ID]
	require.NoError(t, core.Delete(ctx, stored))

	_, err = core.QueryByID(ctx, companyID, veh.ID)
	require.ErrorIs(t, err, vehiclebus.ErrNotFound)

	// The ledger survives the vehicle.
	hsts, err := core.QueryHistory(ctx, companyID, veh.ID)
	require.NoError(t, err)
	assert.Len(t, hsts, 1)

	assert.Contains(t, publisher.types(), events.VehicleDeleted)
}

func Test_Update_DoesNotTouchStatus(t *testing.T) {
	ctx := context.Background()
	core, _, _ := newTestCore(t)

	veh := createVehicle(t, core, uuid.New())

	newBrand := "Volkswagen"
	newAsking := money.MustParse(63000)
	upd, err := core.Update(ctx, veh, vehiclebus.UpdateVehicle{
		Brand:       &newBrand,
		AskingPrice: &newAsking,
	})
	require.NoError(t, err)

	assert.Equal(t, newBrand, upd.Brand)
	assert.True(t, upd.AskingPrice.Equal(newAsking))
	assert.True(t, upd.Status.Equal(veh.Status))
	assert.Equal(t, veh.Location, upd.Location)
}
