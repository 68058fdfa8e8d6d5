// Package leadapp provides the handlers for the sales funnel. Registering a
// lead notifies the company sales inbox, the notification is best effort and
// never fails the request.
package leadapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/app/sdk/mailer"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/app/sdk/query"
	"github.com/velostock/velostock/business/domain/companybus"
	"github.com/velostock/velostock/business/domain/leadbus"
	"github.com/velostock/velostock/business/domain/vehiclebus"
	"github.com/velostock/velostock/business/sdk/order"
	"github.com/velostock/velostock/business/sdk/page"
	"github.com/velostock/velostock/business/sdk/web"
	"github.com/velostock/velostock/foundation/logger"
)

type app struct {
	log        *logger.Logger
	leadBus    *leadbus.Core
	companyBus *companybus.Core
	vehicleBus *vehiclebus.Core
	mailer     *mailer.Mailer
}

func newApp(log *logger.Logger, leadBus *leadbus.Core, companyBus *companybus.Core, vehicleBus *vehiclebus.Core, ml *mailer.Mailer) *app {
	return &app{
		log:        log,
		leadBus:    leadBus,
		companyBus: companyBus,
		vehicleBus: vehicleBus,
		mailer:     ml,
	}
}

// companyLead loads the lead named on the route within the caller's company.
func (a *app) companyLead(ctx context.Context, r *http.Request) (leadbus.Lead, *errs.Error) {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return leadbus.Lead{}, errs.New(errs.Unauthenticated, err)
	}

	leadID, err := uuid.Parse(r.PathValue("lead_id"))
	if err != nil {
		return leadbus.Lead{}, errs.NewFieldErrors("lead_id", err).ToError()
	}

	led, err := a.leadBus.QueryByID(ctx, companyID, leadID)
	if err != nil {
		if errors.Is(err, leadbus.ErrNotFound) {
			return leadbus.Lead{}, errs.New(errs.NotFound, err)
		}
		return leadbus.Lead{}, errs.Errorf(errs.InternalOnlyLog, "query lead: leadID[%s]: %s", leadID, err)
	}

	return led, nil
}

// create registers a new lead and notifies the sales inbox.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewLead
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	nl, err := toBusNewLead(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	nl.CompanyID = companyID

	if nl.VehicleID != nil {
		if _, err := a.vehicleBus.QueryByID(ctx, companyID, *nl.VehicleID); err != nil {
			if errors.Is(err, vehiclebus.ErrNotFound) {
				return errs.NewFieldErrors("vehicleId", vehiclebus.ErrNotFound)
			}
			return errs.Errorf(errs.InternalOnlyLog, "query vehicle: vehicleID[%s]: %s", *nl.VehicleID, err)
		}
	}

	led, err := a.leadBus.Create(ctx, nl)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "create: %s", err)
	}

	go a.notify(led)

	return toAppLead(led)
}

// notify mails the company sales inbox about the new lead. Failures are
// logged and swallowed, the lead is already stored.
func (a *app) notify(led leadbus.Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmp, err := a.companyBus.QueryByID(ctx, led.CompanyID)
	if err != nil {
		a.log.Error(ctx, "lead notify", "status", "query company failed", "err", err)
		return
	}

	if cmp.SalesInbox.Address == "" {
		return
	}

	var vehicle string
	if led.VehicleID != nil {
		veh, err := a.vehicleBus.QueryByID(ctx, led.CompanyID, *led.VehicleID)
		if err == nil {
			vehicle = fmt.Sprintf("%s %s %d", veh.Brand, veh.Model, veh.Year)
		}
	}

	ln := mailer.LeadNotification{
		CompanyName: cmp.Name.String(),
		LeadName:    led.Name.String(),
		LeadPhone:   led.Phone.String(),
		LeadEmail:   led.Email,
		Vehicle:     vehicle,
		Source:      led.Source,
		Notes:       led.Notes,
	}

	if err := a.mailer.SendLeadNotification(ctx, cmp.SalesInbox.Address, ln); err != nil {
		a.log.Error(ctx, "lead notify", "status", "send failed", "err", err)
	}
}

// update modifies an existing lead.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateLead
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	led, appErr := a.companyLead(ctx, r)
	if appErr != nil {
		return appErr
	}

	ul, err := toBusUpdateLead(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if ul.VehicleID != nil {
		if _, err := a.vehicleBus.QueryByID(ctx, led.CompanyID, *ul.VehicleID); err != nil {
			if errors.Is(err, vehiclebus.ErrNotFound) {
				return errs.NewFieldErrors("vehicleId", vehiclebus.ErrNotFound)
			}
			return errs.Errorf(errs.InternalOnlyLog, "query vehicle: vehicleID[%s]: %s", *ul.VehicleID, err)
		}
	}

	updLed, err := a.leadBus.Update(ctx, led, ul)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: leadID[%s]: %s", led.ID, err)
	}

	return toAppLead(updLed)
}

// delete removes a lead.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	led, appErr := a.companyLead(ctx, r)
	if appErr != nil {
		return appErr
	}

	if err := a.leadBus.Delete(ctx, led); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: leadID[%s]: %s", led.ID, err)
	}

	return nil
}

// query returns a list of the company's leads with paging.
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, leadbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	leads, err := a.leadBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.leadBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppLeads(leads), total, pg)
}

// queryByID returns a lead of the caller's company by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	led, appErr := a.companyLead(ctx, r)
	if appErr != nil {
		return appErr
	}

	return toAppLead(led)
}
