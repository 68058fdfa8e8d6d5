package companyapp

import (
	"net/http"

	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/business/domain/companybus"
	"github.com/velostock/velostock/business/sdk/web"
	"github.com/velostock/velostock/business/types/capability"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	CompanyBus *companybus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.CompanyBus)

	app.HandlerFunc(http.MethodGet, version, "/company", api.query, authen, mid.RequireCompany())
	app.HandlerFunc(http.MethodPut, version, "/company", api.update, authen, mid.Authorize(cfg.Auth, capability.ManageCompany))
}
