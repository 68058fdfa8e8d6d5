package costbus_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velostock/velostock/business/domain/costbus"
	"github.com/velostock/velostock/business/sdk/order"
	"github.com/velostock/velostock/business/sdk/page"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/business/types/money"
)

// fakeStorer keeps costs in memory, scoping QueryByID by company the same way
// the database store does.
type fakeStorer struct {
	costs map[uuid.UUID]costbus.Cost
}

func newFakeStorer() *fakeStorer {
	return &fakeStorer{costs: map[uuid.UUID]costbus.Cost{}}
}

func (s *fakeStorer) NewWithTx(tx sqldb.CommitRollbacker) (costbus.Storer, error) {
	return s, nil
}

func (s *fakeStorer) Create(ctx context.Context, cst costbus.Cost) error {
	s.costs[cst.ID] = cst
	return nil
}

func (s *fakeStorer) Update(ctx context.Context, cst costbus.Cost) error {
	s.costs[cst.ID] = cst
	return nil
}

func (s *fakeStorer) Delete(ctx context.Context, cst costbus.Cost) error {
	delete(s.costs, cst.ID)
	return nil
}

func (s *fakeStorer) Query(ctx context.Context, filter costbus.QueryFilter, orderBy order.By, page page.Page) ([]costbus.Cost, error) {
	var csts []costbus.Cost
	for _, cst := range s.costs {
		if filter.VehicleID != nil && cst.VehicleID != *filter.VehicleID {
			continue
		}
		csts = append(csts, cst)
	}
	return csts, nil
}

func (s *fakeStorer) Count(ctx context.Context, filter costbus.QueryFilter) (int, error) {
	csts, err := s.Query(ctx, filter, order.By{}, page.Page{})
	return len(csts), err
}

func (s *fakeStorer) QueryByID(ctx context.Context, companyID uuid.UUID, costID uuid.UUID) (costbus.Cost, error) {
	cst, ok := s.costs[costID]
	if !ok || cst.CompanyID != companyID {
		return costbus.Cost{}, costbus.ErrNotFound
	}
	return cst, nil
}

func Test_Create(t *testing.T) {
	storer := newFakeStorer()
	core := costbus.NewCore(storer)

	companyID := uuid.New()
	vehicleID := uuid.New()

	cst, err := core.Create(context.Background(), costbus.NewCost{
		VehicleID:     vehicleID,
		CompanyID:     companyID,
		Category:      "Peças",
		Description:   "Pastilhas de freio",
		Value:         money.MustParse(450.90),
		Date:          time.Now(),
		PaymentMethod: "PIX",
		Payer:         "Loja",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, cst.ID)
	assert.Equal(t, vehicleID, cst.VehicleID)
	assert.Equal(t, int64(45090), cst.Value.Cents())
	assert.False(t, cst.CreatedAt.IsZero())

	got, err := core.QueryByID(context.Background(), companyID, cst.ID)
	require.NoError(t, err)
	assert.True(t, got.Value.Equal(cst.Value))
}

func Test_QueryByID_CompanyScoped(t *testing.T) {
	storer := newFakeStorer()
	core := costbus.NewCore(storer)

	cst, err := core.Create(context.Background(), costbus.NewCost{
		VehicleID: uuid.New(),
		CompanyID: uuid.New(),
		Category:  "Serviços",
		Value:     money.MustParse(120),
		Date:      time.Now(),
	})
	require.NoError(t, err)

	_, err = core.QueryByID(context.Background(), uuid.New(), cst.ID)
	require.ErrorIs(t, err, costbus.ErrNotFound)
}

func Test_Update_PartialFields(t *testing.T) {
	storer := newFakeStorer()
	core := costbus.NewCore(storer)

	companyID := uuid.New()

	cst, err := core.Create(context.Background(), costbus.NewCost{
		VehicleID:   uuid.New(),
		CompanyID:   companyID,
		Category:    "Peças",
		Description: "Correia dentada",
		Value:       money.MustParse(300),
		Date:        time.Now(),
	})
	require.NoError(t, err)

	newValue := money.MustParse(350)
	updated, err := core.Update(context.Background(), cst, costbus.UpdateCost{
		Value: &newValue,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(35000), updated.Value.Cents())
	assert.Equal(t, "Correia dentada", updated.Description)
	assert.Equal(t, "Peças", updated.Category)
}

func Test_Delete(t *testing.T) {
	storer := newFakeStorer()
	core := costbus.NewCore(storer)

	companyID := uuid.New()

	cst, err := core.Create(context.Background(), costbus.NewCost{
		VehicleID: uuid.New(),
		CompanyID: companyID,
		Category:  "Transporte",
		Value:     money.MustParse(80),
		Date:      time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, core.Delete(context.Background(), cst))

	_, err = core.QueryByID(context.Background(), companyID, cst.ID)
	require.ErrorIs(t, err, costbus.ErrNotFound)
}
