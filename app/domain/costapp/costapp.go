// Package costapp provides the handlers for the costs recorded against a
// vehicle. All routes hang off the vehicle so a cost can never be reached
// outside its vehicle's company.
package costapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/app/sdk/query"
	"github.com/velostock/velostock/business/domain/costbus"
	"github.com/velostock/velostock/business/domain/vehiclebus"
	"github.com/velostock/velostock/business/sdk/order"
	"github.com/velostock/velostock/business/sdk/page"
	"github.com/velostock/velostock/business/sdk/web"
)

type app struct {
	costBus    *costbus.Core
	vehicleBus *vehiclebus.Core
}

func newApp(costBus *costbus.Core, vehicleBus *vehiclebus.Core) *app {
	return &app{
		costBus:    costBus,
		vehicleBus: vehicleBus,
	}
}

// companyVehicle loads the vehicle named on the route within the caller's
// company.
func (a *app) companyVehicle(ctx context.Context, r *http.Request) (vehiclebus.Vehicle, *errs.Error) {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return vehiclebus.Vehicle{}, errs.New(errs.Unauthenticated, err)
	}

	vehicleID, err := uuid.Parse(r.PathValue("vehicle_id"))
	if err != nil {
		return vehiclebus.Vehicle{}, errs.NewFieldErrors("vehicle_id", err).ToError()
	}

	veh, err := a.vehicleBus.QueryByID(ctx, companyID, vehicleID)
	if err != nil {
		if errors.Is(err, vehiclebus.ErrNotFound) {
			return vehiclebus.Vehicle{}, errs.New(errs.NotFound, err)
		}
		return vehiclebus.Vehicle{}, errs.Errorf(errs.InternalOnlyLog, "query vehicle: vehicleID[%s]: %s", vehicleID, err)
	}

	return veh, nil
}

// vehicleCost loads the cost named on the route and checks it belongs to the
// vehicle named on the route.
func (a *app) vehicleCost(ctx context.Context, r *http.Request, veh vehiclebus.Vehicle) (costbus.Cost, *errs.Error) {
	costID, err := uuid.Parse(r.PathValue("cost_id"))
	if err != nil {
		return costbus.Cost{}, errs.NewFieldErrors("cost_id", err).ToError()
	}

	cst, err := a.costBus.QueryByID(ctx, veh.CompanyID, costID)
	if err != nil {
		if errors.Is(err, costbus.ErrNotFound) {
			return costbus.Cost{}, errs.New(errs.NotFound, err)
		}
		return costbus.Cost{}, errs.Errorf(errs.InternalOnlyLog, "query cost: costID[%s]: %s", costID, err)
	}

	if cst.VehicleID != veh.ID {
		return costbus.Cost{}, errs.New(errs.NotFound, costbus.ErrNotFound)
	}

	return cst, nil
}

// create records a new cost against a vehicle.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewCost
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	nc, err := toBusNewCost(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	nc.VehicleID = veh.ID
	nc.CompanyID = veh.CompanyID

	cst, err := a.costBus.Create(ctx, nc)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "create: vehicleID[%s]: %s", veh.ID, err)
	}

	return toAppCost(cst)
}

// update modifies a cost recorded against a vehicle.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateCost
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	cst, appErr := a.vehicleCost(ctx, r, veh)
	if appErr != nil {
		return appErr
	}

	uc, err := toBusUpdateCost(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updCst, err := a.costBus.Update(ctx, cst, uc)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: costID[%s]: %s", cst.ID, err)
	}

	return toAppCost(updCst)
}

// delete removes a cost record.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	cst, appErr := a.vehicleCost(ctx, r, veh)
	if appErr != nil {
		return appErr
	}

	if err := a.costBus.Delete(ctx, cst); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: costID[%s]: %s", cst.ID, err)
	}

	return nil
}

// query returns the costs recorded against a vehicle with paging.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	qp := parseQueryParams(r)

	pg, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(qp)
	if err != nil {
		if v, ok := err.(*errs.Error); ok {
			return v
		}
		return errs.NewFieldErrors("filter", err)
	}
	filter.CompanyID = &veh.CompanyID
	filter.VehicleID = &veh.ID

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, costbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	csts, err := a.costBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.costBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppCosts(csts), total, pg)
}
