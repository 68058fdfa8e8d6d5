// Package companyapp provides the handlers for the caller's own company.
package companyapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/business/domain/companybus"
	"github.com/velostock/velostock/business/sdk/web"
)

type app struct {
	companyBus *companybus.Core
}

func newApp(companyBus *companybus.Core) *app {
	return &app{
		companyBus: companyBus,
	}
}

// query returns the caller's company.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	cmp, err := a.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, companybus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query company: %s", err)
	}

	return toAppCompany(cmp)
}

// update modifies the caller's company.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateCompany
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	cmp, err := a.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, companybus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query company: %s", err)
	}

	uc, err := toBusUpdateCompany(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updCmp, err := a.companyBus.Update(ctx, cmp, uc)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update company: companyID[%s]: %s", companyID, err)
	}

	return toAppCompany(updCmp)
}
