package costapp

import (
	"net/http"

	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/business/domain/costbus"
	"github.com/velostock/velostock/business/domain/vehiclebus"
	"github.com/velostock/velostock/business/sdk/web"
	"github.com/velostock/velostock/business/types/capability"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	CostBus    *costbus.Core
	VehicleBus *vehiclebus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	viewFinancials := mid.Authorize(cfg.Auth, capability.ViewFinancials)
	manageCosts := mid.Authorize(cfg.Auth, capability.ManageCosts)

	api := newApp(cfg.CostBus, cfg.VehicleBus)

	app.HandlerFunc(http.MethodGet, version, "/vehicles/{vehicle_id}/costs", api.query, authen, viewFinancials)
	app.HandlerFunc(http.MethodPost, version, "/vehicles/{vehicle_id}/costs", api.create, authen, manageCosts)
	app.HandlerFunc(http.MethodPut, version, "/vehicles/{vehicle_id}/costs/{cost_id}", api.update, authen, manageCosts)
	app.HandlerFunc(http.MethodDelete, version, "/vehicles/{vehicle_id}/costs/{cost_id}", api.delete, authen, manageCosts)
}
