// Package all binds every route in the system into the specified app.
package all

import (
	"github.com/velostock/velostock/app/domain/authapp"
	"github.com/velostock/velostock/app/domain/billapp"
	"github.com/velostock/velostock/app/domain/checkapp"
	"github.com/velostock/velostock/app/domain/companyapp"
	"github.com/velostock/velostock/app/domain/costapp"
	"github.com/velostock/velostock/app/domain/fipeapp"
	"github.com/velostock/velostock/app/domain/leadapp"
	"github.com/velostock/velostock/app/domain/userapp"
	"github.com/velostock/velostock/app/domain/vehicleapp"
	"github.com/velostock/velostock/app/sdk/mux"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {
	beginner := sqldb.NewBeginner(cfg.DB)

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Log:        cfg.Log,
		DB:         beginner,
		Auth:       cfg.AuthConfig.Auth,
		CompanyBus: cfg.BusConfig.CompanyBus,
		UserBus:    cfg.BusConfig.UserBus,
	})

	companyapp.Routes(app, companyapp.Config{
		Auth:       cfg.AuthConfig.Auth,
		CompanyBus: cfg.BusConfig.CompanyBus,
	})

	userapp.Routes(app, userapp.Config{
		Auth:    cfg.AuthConfig.Auth,
		UserBus: cfg.BusConfig.UserBus,
	})

	vehicleapp.Routes(app, vehicleapp.Config{
		Log:         cfg.Log,
		DB:          beginner,
		Auth:        cfg.AuthConfig.Auth,
		VehicleBus:  cfg.BusConfig.VehicleBus,
		AdCopy:      cfg.ClientConfig.AdCopy,
		DocumentDir: cfg.DocumentDir,
	})

	costapp.Routes(app, costapp.Config{
		Auth:       cfg.AuthConfig.Auth,
		CostBus:    cfg.BusConfig.CostBus,
		VehicleBus: cfg.BusConfig.VehicleBus,
	})

	leadapp.Routes(app, leadapp.Config{
		Log:        cfg.Log,
		Auth:       cfg.AuthConfig.Auth,
		LeadBus:    cfg.BusConfig.LeadBus,
		CompanyBus: cfg.BusConfig.CompanyBus,
		VehicleBus: cfg.BusConfig.VehicleBus,
		Mailer:     cfg.ClientConfig.Mailer,
	})

	billapp.Routes(app, billapp.Config{
		Auth:    cfg.AuthConfig.Auth,
		BillBus: cfg.BusConfig.BillBus,
	})

	fipeapp.Routes(app, fipeapp.Config{
		Auth: cfg.AuthConfig.Auth,
		Fipe: cfg.ClientConfig.Fipe,
	})
}
