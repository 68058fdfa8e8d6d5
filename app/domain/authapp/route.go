package authapp

import (
	"net/http"

	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/business/domain/companybus"
	"github.com/velostock/velostock/business/domain/userbus"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/business/sdk/web"
	"github.com/velostock/velostock/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log        *logger.Logger
	DB         sqldb.Beginner
	Auth       *auth.Auth
	CompanyBus *companybus.Core
	UserBus    *userbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	transaction := mid.BeginCommitRollback(cfg.Log, cfg.DB)

	api := newApp(cfg.Auth, cfg.CompanyBus, cfg.UserBus)

	app.HandlerFunc(http.MethodPost, version, "/auth/login", api.login)
	app.HandlerFunc(http.MethodPost, version, "/signup", api.signup, transaction)
}
