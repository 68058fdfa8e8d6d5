package vehicleapp

import (
	"net/http"

	"github.com/velostock/velostock/app/sdk/adcopy"
	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/business/domain/vehiclebus"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/business/sdk/web"
	"github.com/velostock/velostock/business/types/capability"
	"github.com/velostock/velostock/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log         *logger.Logger
	DB          sqldb.Beginner
	Auth        *auth.Auth
	VehicleBus  *vehiclebus.Core
	AdCopy      *adcopy.Client
	DocumentDir string
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	company := mid.RequireCompany()
	moveVehicles := mid.Authorize(cfg.Auth, capability.MoveVehicles)
	deleteVehicles := mid.Authorize(cfg.Auth, capability.DeleteVehicles)
	generateAds := mid.Authorize(cfg.Auth, capability.GenerateAds)
	transaction := mid.BeginCommitRollback(cfg.Log, cfg.DB)

	api := newApp(cfg.Auth, cfg.VehicleBus, cfg.AdCopy, cfg.DocumentDir)

	app.HandlerFunc(http.MethodGet, version, "/vehicles", api.query, authen, company)
	app.HandlerFunc(http.MethodPost, version, "/vehicles", api.create, authen, company)
	app.HandlerFunc(http.MethodGet, version, "/vehicles/{vehicle_id}", api.queryByID, authen, company)
	app.HandlerFunc(http.MethodPut, version, "/vehicles/{vehicle_id}", api.update, authen, company)
	app.HandlerFunc(http.MethodDelete, version, "/vehicles/{vehicle_id}", api.delete, authen, deleteVehicles)

	app.HandlerFunc(http.MethodPatch, version, "/vehicles/{vehicle_id}/status", api.updateStatus, authen, moveVehicles, transaction)
	app.HandlerFunc(http.MethodGet, version, "/vehicles/{vehicle_id}/history", api.queryHistory, authen, company)
	app.HandlerFunc(http.MethodPut, version, "/vehicles/{vehicle_id}/checklist", api.updateChecklist, authen, company)

	app.HandlerFunc(http.MethodGet, version, "/vehicles/{vehicle_id}/observations", api.queryObservations, authen, company)
	app.HandlerFunc(http.MethodPost, version, "/vehicles/{vehicle_id}/observations", api.createObservation, authen, company)
	app.HandlerFunc(http.MethodDelete, version, "/vehicles/{vehicle_id}/observations/{observation_id}", api.deleteObservation, authen, company)

	app.HandlerFunc(http.MethodGet, version, "/vehicles/{vehicle_id}/images", api.queryImages, authen, company)
	app.HandlerFunc(http.MethodPost, version, "/vehicles/{vehicle_id}/images", api.createImage, authen, company)

	app.HandlerFunc(http.MethodGet, version, "/vehicles/{vehicle_id}/documents", api.queryDocuments, authen, company)
	app.HandlerFunc(http.MethodPost, version, "/vehicles/{vehicle_id}/documents", api.createDocument, authen, company)

	app.HandlerFunc(http.MethodPost, version, "/vehicles/{vehicle_id}/adcopy", api.generateAdCopy, authen, generateAds)
}
