// Package vehicleapp provides the handlers for the vehicle inventory:
// pipeline moves, checklist, observations, photos, documents and ad copy.
package vehicleapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/velostock/velostock/app/sdk/adcopy"
	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/app/sdk/query"
	"github.com/velostock/velostock/business/domain/vehiclebus"
	"github.com/velostock/velostock/business/sdk/order"
	"github.com/velostock/velostock/business/sdk/page"
	"github.com/velostock/velostock/business/sdk/web"
	"github.com/velostock/velostock/business/types/capability"
)

const (
	maxImageSize    = 5 << 20
	maxDocumentSize = 10 << 20
)

type app struct {
	auth        *auth.Auth
	vehicleBus  *vehiclebus.Core
	adCopy      *adcopy.Client
	documentDir string
}

func newApp(ath *auth.Auth, vehicleBus *vehiclebus.Core, adCopy *adcopy.Client, documentDir string) *app {
	return &app{
		auth:        ath,
		vehicleBus:  vehicleBus,
		adCopy:      adCopy,
		documentDir: documentDir,
	}
}

// companyVehicle loads the vehicle named on the route within the caller's
// company. Vehicles of other companies are reported as not found.
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

// create adds a new vehicle to the inventory at the intake status.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewVehicle
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	nv, err := toBusNewVehicle(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	nv.CompanyID = companyID

	veh, err := a.vehicleBus.Create(ctx, nv)
	if err != nil {
		if errors.Is(err, vehiclebus.ErrUniquePlate) {
			return errs.New(errs.Aborted, vehiclebus.ErrUniquePlate)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: plate[%s]: %s", app.Plate, err)
	}

	return toAppVehicle(veh)
}

// update modifies the descriptive and price attributes of a vehicle. Price
// fields additionally require the edit-prices capability.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateVehicle
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if app.TouchesPrices() {
		usr, err := mid.GetUser(ctx)
		if err != nil {
			return errs.Errorf(errs.Internal, "user missing in context: %s", err)
		}
		if err := a.auth.Authorize(ctx, usr, capability.EditPrices); err != nil {
			return errs.New(errs.PermissionDenied, auth.ErrForbidden)
		}
	}

	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	uv, err := toBusUpdateVehicle(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updVeh, err := a.vehicleBus.Update(ctx, veh, uv)
	if err != nil {
		if errors.Is(err, vehiclebus.ErrUniquePlate) {
			return errs.New(errs.Aborted, vehiclebus.ErrUniquePlate)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: vehicleID[%s]: %s", veh.ID, err)
	}

	return toAppVehicle(updVeh)
}

// updateStatus moves a vehicle through the pipeline or between locations. It
// runs inside a transaction so the row update and the ledger insert commit
// together.
func (a *app) updateStatus(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateStatus
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tx, err := mid.GetTran(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	vehicleBus, err := a.vehicleBus.NewWithTx(tx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	actorID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "user missing in context: %s", err)
	}

	ut, err := toBusUpdateStatus(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	ut.ActorID = actorID

	updVeh, err := vehicleBus.UpdateStatus(ctx, veh, ut)
	if err != nil {
		if errors.Is(err, vehiclebus.ErrInvalidTransition) {
			return errs.New(errs.FailedPrecondition, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update status: vehicleID[%s]: %s", veh.ID, err)
	}

	return toAppVehicle(updVeh)
}

// updateChecklist replaces the vehicle's inspection checklist.
func (a *app) updateChecklist(ctx context.Context, r *http.Request) web.Encoder {
	var app Checklist
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	updVeh, err := a.vehicleBus.UpdateChecklist(ctx, veh, toBusChecklist(app))
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update checklist: vehicleID[%s]: %s", veh.ID, err)
	}

	return toAppVehicle(updVeh)
}

// delete removes a vehicle from the inventory. Its history rows stay behind
// for the audit trail.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	if err := a.vehicleBus.Delete(ctx, veh); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: vehicleID[%s]: %s", veh.ID, err)
	}

	return nil
}

// query returns a list of the company's vehicles with paging.
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, vehiclebus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	vehs, err := a.vehicleBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.vehicleBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppVehicles(vehs), total, pg)
}

// queryByID returns a vehicle of the caller's company by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	return toAppVehicle(veh)
}

// queryHistory returns the movement ledger for a vehicle, newest first.
func (a *app) queryHistory(ctx context.Context, r *http.Request) web.Encoder {
	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	hsts, err := a.vehicleBus.QueryHistory(ctx, veh.CompanyID, veh.ID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "query history: vehicleID[%s]: %s", veh.ID, err)
	}

	return toAppHistories(hsts)
}

// =============================================================================

// createObservation attaches a note to a vehicle, authored by the caller.
func (a *app) createObservation(ctx context.Context, r *http.Request) web.Encoder {
	var app NewObservation
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	authorID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "user missing in context: %s", err)
	}

	obs, err := a.vehicleBus.CreateObservation(ctx, vehiclebus.NewObservation{
		VehicleID: veh.ID,
		CompanyID: veh.CompanyID,
		AuthorID:  authorID,
		Text:      app.Text,
	})
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "create observation: vehicleID[%s]: %s", veh.ID, err)
	}

	return toAppObservation(obs)
}

// queryObservations returns the notes attached to a vehicle, newest first.
func (a *app) queryObservations(ctx context.Context, r *http.Request) web.Encoder {
	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	obs, err := a.vehicleBus.QueryObservations(ctx, veh.CompanyID, veh.ID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "query observations: vehicleID[%s]: %s", veh.ID, err)
	}

	return toAppObservations(obs)
}

// deleteObservation removes a note from a vehicle.
func (a *app) deleteObservation(ctx context.Context, r *http.Request) web.Encoder {
	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	observationID, err := uuid.Parse(r.PathValue("observation_id"))
	if err != nil {
		return errs.NewFieldErrors("observation_id", err)
	}

	obs, err := a.vehicleBus.QueryObservationByID(ctx, veh.CompanyID, observationID)
	if err != nil {
		if errors.Is(err, vehiclebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "query observation: observationID[%s]: %s", observationID, err)
	}

	if obs.VehicleID != veh.ID {
		return errs.New(errs.NotFound, vehiclebus.ErrNotFound)
	}

	if err := a.vehicleBus.DeleteObservation(ctx, obs); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete observation: observationID[%s]: %s", observationID, err)
	}

	return nil
}

// =============================================================================

// createImage stores a photo uploaded as multipart form data under the field
// named file.
func (a *app) createImage(ctx context.Context, r *http.Request) web.Encoder {
	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("form file: %w", err))
	}
	defer file.Close()

	if header.Size > maxImageSize {
		return errs.Errorf(errs.InvalidArgument, "image exceeds %d bytes", maxImageSize)
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "read upload: %s", err)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return errs.Errorf(errs.InvalidArgument, "unsupported content type %q", contentType)
	}

	img, err := a.vehicleBus.CreateImage(ctx, vehiclebus.NewImage{
		VehicleID:   veh.ID,
		CompanyID:   veh.CompanyID,
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "create image: vehicleID[%s]: %s", veh.ID, err)
	}

	return toAppImage(img)
}

// queryImages returns the metadata of the photos stored for a vehicle.
func (a *app) queryImages(ctx context.Context, r *http.Request) web.Encoder {
	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	imgs, err := a.vehicleBus.QueryImages(ctx, veh.CompanyID, veh.ID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "query images: vehicleID[%s]: %s", veh.ID, err)
	}

	return toAppImages(imgs)
}

// createDocument stores a PDF on disk and registers its metadata. Only PDFs
// are accepted.
func (a *app) createDocument(ctx context.Context, r *http.Request) web.Encoder {
	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("form file: %w", err))
	}
	defer file.Close()

	if header.Size > maxDocumentSize {
		return errs.Errorf(errs.InvalidArgument, "document exceeds %d bytes", maxDocumentSize)
	}

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentSize))
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "read upload: %s", err)
	}

	if contentType := http.DetectContentType(data); contentType != "application/pdf" {
		return errs.Errorf(errs.InvalidArgument, "unsupported content type %q, only PDF is accepted", contentType)
	}

	docID := uuid.New()
	dir := filepath.Join(a.documentDir, veh.CompanyID.String(), veh.ID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "mkdir: %s", err)
	}

	path := filepath.Join(dir, docID.String()+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "write document: %s", err)
	}

	doc, err := a.vehicleBus.CreateDocument(ctx, vehiclebus.NewDocument{
		VehicleID: veh.ID,
		CompanyID: veh.CompanyID,
		Name:      header.Filename,
		Path:      path,
		Size:      int64(len(data)),
	})
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "create document: vehicleID[%s]: %s", veh.ID, err)
	}

	return toAppDocument(doc)
}

// queryDocuments returns the metadata of the documents registered for a
// vehicle.
func (a *app) queryDocuments(ctx context.Context, r *http.Request) web.Encoder {
	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	docs, err := a.vehicleBus.QueryDocuments(ctx, veh.CompanyID, veh.ID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "query documents: vehicleID[%s]: %s", veh.ID, err)
	}

	return toAppDocuments(docs)
}

// =============================================================================

// generateAdCopy asks the completion API for listing copy built from the
// vehicle's facts and the asking price.
func (a *app) generateAdCopy(ctx context.Context, r *http.Request) web.Encoder {
	var app NewAdCopy
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	veh, appErr := a.companyVehicle(ctx, r)
	if appErr != nil {
		return appErr
	}

	cp, err := a.adCopy.Generate(ctx, adcopy.Request{
		Brand:    veh.Brand,
		Model:    veh.Model,
		Year:     veh.Year,
		Color:    veh.Color,
		Odometer: veh.Odometer,
		Fuel:     veh.Fuel,
		Price:    veh.AskingPrice.Float(),
		Tone:     app.Tone,
	})
	if err != nil {
		if errors.Is(err, adcopy.ErrQuotaExceeded) {
			return errs.New(errs.ResourceExhausted, adcopy.ErrQuotaExceeded)
		}
		return errs.Errorf(errs.InternalOnlyLog, "generate ad copy: vehicleID[%s]: %s", veh.ID, err)
	}

	return AdCopy{Title: cp.Title, Body: cp.Body}
}
