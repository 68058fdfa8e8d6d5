package fipeapp

import (
	"net/http"

	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/app/sdk/fipeclient"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth *auth.Auth
	Fipe *fipeclient.Client
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.Fipe)

	app.HandlerFunc(http.MethodGet, version, "/fipe/price", api.queryPrice, authen, mid.RequireCompany())
}
