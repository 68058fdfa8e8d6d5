package userapp

import (
	"net/http"

	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/business/domain/userbus"
	"github.com/velostock/velostock/business/sdk/web"
	"github.com/velostock/velostock/business/types/capability"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	UserBus *userbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	manageUsers := mid.Authorize(cfg.Auth, capability.ManageUsers)

	api := newApp(cfg.UserBus)

	app.HandlerFunc(http.MethodGet, version, "/users", api.query, authen, manageUsers)
	app.HandlerFunc(http.MethodPost, version, "/users", api.create, authen, manageUsers)
	app.HandlerFunc(http.MethodGet, version, "/users/{user_id}", api.queryByID, authen, manageUsers)
	app.HandlerFunc(http.MethodPut, version, "/users/{user_id}", api.update, authen, manageUsers)
	app.HandlerFunc(http.MethodPut, version, "/users/{user_id}/capabilities", api.updateCapabilities, authen, manageUsers)
	app.HandlerFunc(http.MethodDelete, version, "/users/{user_id}", api.delete, authen, manageUsers)
}
