// Package fipeapp provides the handler for looking up reference prices on
// the external price table.
package fipeapp

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/app/sdk/fipeclient"
	"github.com/velostock/velostock/business/sdk/web"
)

type app struct {
	fipe *fipeclient.Client
}

func newApp(fipe *fipeclient.Client) *app {
	return &app{
		fipe: fipe,
	}
}

// queryPrice looks up the reference price for a brand, model, year and
// optional version.
func (a *app) queryPrice(ctx context.Context, r *http.Request) web.Encoder {
	values := r.URL.Query()

	var fieldErrors errs.FieldErrors

	brand := values.Get("brand")
	if brand == "" {
		fieldErrors.Add("brand", errors.New("brand is required"))
	}

	model := values.Get("model")
	if model == "" {
		fieldErrors.Add("model", errors.New("model is required"))
	}

	var year int
	switch yearStr := values.Get("year"); yearStr {
	case "":
		fieldErrors.Add("year", errors.New("year is required"))
	default:
		var err error
		year, err = strconv.Atoi(yearStr)
		if err != nil {
			fieldErrors.Add("year", err)
		}
	}

	if fieldErrors != nil {
		return fieldErrors.ToError()
	}

	price, err := a.fipe.Query(ctx, brand, model, year, values.Get("version"))
	if err != nil {
		switch {
		case errors.Is(err, fipeclient.ErrNotFound):
			return errs.New(errs.NotFound, err)
		case errors.Is(err, fipeclient.ErrQuotaExceeded):
			return errs.New(errs.ResourceExhausted, fipeclient.ErrQuotaExceeded)
		}
		return errs.Errorf(errs.InternalOnlyLog, "fipe query: %s", err)
	}

	return toAppPrice(price)
}
