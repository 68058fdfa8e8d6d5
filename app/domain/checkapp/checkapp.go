// Package checkapp provides the liveness and readiness handlers.
package checkapp

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/business/sdk/web"
	"github.com/velostock/velostock/foundation/logger"
)

type app struct {
	build string
	log   *logger.Logger
	db    *sqlx.DB
}

func newApp(build string, log *logger.Logger, db *sqlx.DB) *app {
	return &app{
		build: build,
		log:   log,
		db:    db,
	}
}

type info struct {
	Status     string `json:"status,omitempty"`
	Build      string `json:"build,omitempty"`
	Host       string `json:"host,omitempty"`
	GOMAXPROCS int    `json:"GOMAXPROCS,omitempty"`
}

// Encode implements the web.Encoder interface.
func (i info) Encode() ([]byte, string, error) {
	data, err := json.Marshal(i)
	return data, "application/json", err
}

// readiness checks if the database is ready and if not will return a 500
// status. Do not respond by just returning an error because further up in
// the call stack it will interpret that as a non-trusted error.
func (a *app) readiness(ctx context.Context, _ *http.Request) web.Encoder {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqldb.StatusCheck(ctx, a.db); err != nil {
		a.log.Info(ctx, "readiness failure", "err", err)
		return errs.New(errs.Internal, err)
	}

	return info{
		Status: "OK",
	}
}

// liveness returns simple status info if the service is alive.
func (a *app) liveness(_ context.Context, _ *http.Request) web.Encoder {
	host, err := os.Hostname()
	if err != nil {
		host = "unavailable"
	}

	return info{
		Status:     "up",
		Build:      a.build,
		Host:       host,
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}
}
