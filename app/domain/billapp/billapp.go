// Package billapp provides the handlers for company expense payables.
package billapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/app/sdk/query"
	"github.com/velostock/velostock/business/domain/billbus"
	"github.com/velostock/velostock/business/sdk/order"
	"github.com/velostock/velostock/business/sdk/page"
	"github.com/velostock/velostock/business/sdk/web"
)

type app struct {
	billBus *billbus.Core
}

func newApp(billBus *billbus.Core) *app {
	return &app{
		billBus: billBus,
	}
}

// companyBill loads the bill named on the route within the caller's company.
func (a *app) companyBill(ctx context.Context, r *http.Request) (billbus.Bill, *errs.Error) {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return billbus.Bill{}, errs.New(errs.Unauthenticated, err)
	}

	billID, err := uuid.Parse(r.PathValue("bill_id"))
	if err != nil {
		return billbus.Bill{}, errs.NewFieldErrors("bill_id", err).ToError()
	}

	bil, err := a.billBus.QueryByID(ctx, companyID, billID)
	if err != nil {
		if errors.Is(err, billbus.ErrNotFound) {
			return billbus.Bill{}, errs.New(errs.NotFound, err)
		}
		return billbus.Bill{}, errs.Errorf(errs.InternalOnlyLog, "query bill: billID[%s]: %s", billID, err)
	}

	return bil, nil
}

// create registers a new bill.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewBill
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	nb, err := toBusNewBill(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	nb.CompanyID = companyID

	bil, err := a.billBus.Create(ctx, nb)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "create: %s", err)
	}

	return toAppBill(bil)
}

// update modifies an existing bill.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateBill
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bil, appErr := a.companyBill(ctx, r)
	if appErr != nil {
		return appErr
	}

	ub, err := toBusUpdateBill(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updBil, err := a.billBus.Update(ctx, bil, ub)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: billID[%s]: %s", bil.ID, err)
	}

	return toAppBill(updBil)
}

// delete removes a bill.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	bil, appErr := a.companyBill(ctx, r)
	if appErr != nil {
		return appErr
	}

	if err := a.billBus.Delete(ctx, bil); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: billID[%s]: %s", bil.ID, err)
	}

	return nil
}

// query returns a list of the company's bills with paging.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
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

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}
	filter.CompanyID = &companyID

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, billbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	bills, err := a.billBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.billBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppBills(bills), total, pg)
}

// queryByID returns a bill of the caller's company by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	bil, appErr := a.companyBill(ctx, r)
	if appErr != nil {
		return appErr
	}

	return toAppBill(bil)
}
