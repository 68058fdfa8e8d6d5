package billapp

import (
	"net/http"

	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/business/domain/billbus"
	"github.com/velostock/velostock/business/sdk/web"
	"github.com/velostock/velostock/business/types/capability"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	BillBus *billbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	viewBills := mid.Authorize(cfg.Auth, capability.ViewBills)
	manageBills := mid.Authorize(cfg.Auth, capability.ManageBills)

	api := newApp(cfg.BillBus)

	app.HandlerFunc(http.MethodGet, version, "/bills", api.query, authen, viewBills)
	app.HandlerFunc(http.MethodPost, version, "/bills", api.create, authen, manageBills)
	app.HandlerFunc(http.MethodGet, version, "/bills/{bill_id}", api.queryByID, authen, viewBills)
	app.HandlerFunc(http.MethodPut, version, "/bills/{bill_id}", api.update, authen, manageBills)
	app.HandlerFunc(http.MethodDelete, version, "/bills/{bill_id}", api.delete, authen, manageBills)
}
