package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/sdk/web"
)

// Authenticate validates the JWT in the Authorization header and stashes the
// claims and the (still enabled) user behind them in the context.
func Authenticate(a *auth.Auth) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			authStr := r.Header.Get("authorization")
			if authStr == "" {
				return errs.New(errs.Unauthenticated, errors.New("missing authorization header"))
			}

			usr, claims, err := a.Authenticate(ctx, authStr)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			ctx = setClaims(ctx, claims)
			ctx = setUser(ctx, usr)

			return next(ctx, r)
		}

		return h
	}

	return m
}
