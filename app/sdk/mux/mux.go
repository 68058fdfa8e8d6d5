// Package mux provides support to bind domain level routes to the
// application mux.
package mux

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/velostock/velostock/app/sdk/adcopy"
	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/app/sdk/fipeclient"
	"github.com/velostock/velostock/app/sdk/mailer"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/business/domain/billbus"
	"github.com/velostock/velostock/business/domain/companybus"
	"github.com/velostock/velostock/business/domain/costbus"
	"github.com/velostock/velostock/business/domain/leadbus"
	"github.com/velostock/velostock/business/domain/userbus"
	"github.com/velostock/velostock/business/domain/vehiclebus"
	"github.com/velostock/velostock/business/sdk/web"
	"github.com/velostock/velostock/foundation/logger"
	"go.opentelemetry.io/otel/trace"
)

// Options represent optional parameters.
type Options struct {
	corsOrigin []string
}

// WithCORS provides configuration options for CORS.
func WithCORS(origins []string) func(opts *Options) {
	return func(opts *Options) {
		opts.corsOrigin = origins
	}
}

// BusConfig contains the business cores the handlers need.
type BusConfig struct {
	CompanyBus *companybus.Core
	UserBus    *userbus.Core
	VehicleBus *vehiclebus.Core
	CostBus    *costbus.Core
	LeadBus    *leadbus.Core
	BillBus    *billbus.Core
}

// AuthConfig contains auth specific config.
type AuthConfig struct {
	Auth *auth.Auth
}

// ClientConfig contains the outbound clients the handlers need.
type ClientConfig struct {
	Fipe   *fipeclient.Client
	AdCopy *adcopy.Client
	Mailer *mailer.Mailer
}

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Build        string
	Log          *logger.Logger
	DB           *sqlx.DB
	Tracer       trace.Tracer
	DocumentDir  string
	BusConfig    BusConfig
	AuthConfig   AuthConfig
	ClientConfig ClientConfig
}

// RouteAdder defines behavior that sets the routes to bind for an instance
// of the service.
type RouteAdder interface {
	Add(app *web.App, cfg Config)
}

// WebAPI constructs a http.Handler with all application routes bound.
func WebAPI(cfg Config, routeAdder RouteAdder, options ...func(opts *Options)) http.Handler {
	app := web.NewApp(
		cfg.Log.Info,
		cfg.Tracer,
		mid.Otel(cfg.Tracer),
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Metrics(),
		mid.Panics(),
	)

	var opts Options
	for _, option := range options {
		option(&opts)
	}

	if len(opts.corsOrigin) > 0 {
		app.EnableCORS(opts.corsOrigin)
	}

	routeAdder.Add(app, cfg)

	return app
}
