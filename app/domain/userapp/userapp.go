// Package userapp provides the handlers for managing a company's staff.
package userapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/app/sdk/query"
	"github.com/velostock/velostock/business/domain/userbus"
	"github.com/velostock/velostock/business/sdk/order"
	"github.com/velostock/velostock/business/sdk/page"
	"github.com/velostock/velostock/business/sdk/web"
)

type app struct {
	userBus *userbus.Core
}

func newApp(userBus *userbus.Core) *app {
	return &app{
		userBus: userBus,
	}
}

// companyUser loads the user named on the route and checks it belongs to the
// caller's company. Users of other companies are reported as not found.
func (a *app) companyUser(ctx context.Context, r *http.Request) (userbus.User, *errs.Error) {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return userbus.User{}, errs.New(errs.Unauthenticated, err)
	}

	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		return userbus.User{}, errs.NewFieldErrors("user_id", err).ToError()
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return userbus.User{}, errs.New(errs.NotFound, err)
		}
		return userbus.User{}, errs.Errorf(errs.InternalOnlyLog, "query user: userID[%s]: %s", userID, err)
	}

	if usr.CompanyID != companyID {
		return userbus.User{}, errs.New(errs.NotFound, userbus.ErrNotFound)
	}

	return usr, nil
}

// create adds a new user to the caller's company.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	nu, err := toBusNewUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	nu.CompanyID = companyID

	usr, err := a.userBus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: email[%s]: %s", app.Email, err)
	}

	return toAppUser(usr)
}

// update modifies an existing user of the caller's company.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, appErr := a.companyUser(ctx, r)
	if appErr != nil {
		return appErr
	}

	uu, err := toBusUpdateUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updUsr, err := a.userBus.Update(ctx, usr, uu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: userID[%s]: %s", usr.ID, err)
	}

	return toAppUser(updUsr)
}

// updateCapabilities replaces a user's capability overrides.
func (a *app) updateCapabilities(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateCapabilities
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, appErr := a.companyUser(ctx, r)
	if appErr != nil {
		return appErr
	}

	updUsr, err := a.userBus.Update(ctx, usr, userbus.UpdateUser{Capabilities: app.Capabilities})
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update capabilities: userID[%s]: %s", usr.ID, err)
	}

	return toAppUser(updUsr)
}

// delete disables a user's access. User rows are never removed, the vehicle
// ledger keeps referencing them as actors.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	usr, appErr := a.companyUser(ctx, r)
	if appErr != nil {
		return appErr
	}

	if _, err := a.userBus.Disable(ctx, usr); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "disable: userID[%s]: %s", usr.ID, err)
	}

	return nil
}

// query returns a list of the company's users with paging.
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, userbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	usrs, err := a.userBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.userBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppUsers(usrs), total, pg)
}

// queryByID returns a user of the caller's company by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	usr, appErr := a.companyUser(ctx, r)
	if appErr != nil {
		return appErr
	}

	return toAppUser(usr)
}
