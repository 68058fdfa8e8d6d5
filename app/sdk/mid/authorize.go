package mid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/sdk/web"
	"github.com/velostock/velostock/business/types/capability"
)

// Authorize checks the authenticated user holds the specified capability.
// Users whose signup never completed have no company and fail closed before
// the capability check.
func Authorize(a *auth.Auth, cap capability.Capability) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			usr, err := GetUser(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			if usr.CompanyID == uuid.Nil {
				return errs.New(errs.FailedPrecondition, auth.ErrSetupRequired)
			}

			if err := a.Authorize(ctx, usr, cap); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}

// RequireCompany rejects users whose signup never completed. Used on company
// scoped routes that have no capability gate of their own.
func RequireCompany() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			usr, err := GetUser(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			if usr.CompanyID == uuid.Nil {
				return errs.New(errs.FailedPrecondition, auth.ErrSetupRequired)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
