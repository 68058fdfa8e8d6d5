package leadapp

import (
	"net/http"

	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/app/sdk/mailer"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/business/domain/companybus"
	"github.com/velostock/velostock/business/domain/leadbus"
	"github.com/velostock/velostock/business/domain/vehiclebus"
	"github.com/velostock/velostock/business/sdk/web"
	"github.com/velostock/velostock/business/types/capability"
	"github.com/velostock/velostock/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log        *logger.Logger
	Auth       *auth.Auth
	LeadBus    *leadbus.Core
	CompanyBus *companybus.Core
	VehicleBus *vehiclebus.Core
	Mailer     *mailer.Mailer
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	manageLeads := mid.Authorize(cfg.Auth, capability.ManageLeads)

	api := newApp(cfg.Log, cfg.LeadBus, cfg.CompanyBus, cfg.VehicleBus, cfg.Mailer)

	app.HandlerFunc(http.MethodGet, version, "/leads", api.query, authen, manageLeads)
	app.HandlerFunc(http.MethodPost, version, "/leads", api.create, authen, manageLeads)
	app.HandlerFunc(http.MethodGet, version, "/leads/{lead_id}", api.queryByID, authen, manageLeads)
	app.HandlerFunc(http.MethodPut, version, "/leads/{lead_id}", api.update, authen, manageLeads)
	app.HandlerFunc(http.MethodDelete, version, "/leads/{lead_id}", api.delete, authen, manageLeads)
}
