// Package authapp provides the login and signup handlers.
package authapp

import (
	"context"
	"errors"
	"net/http"
	"net/mail"

	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/app/sdk/mid"
	"github.com/velostock/velostock/business/domain/companybus"
	"github.com/velostock/velostock/business/domain/userbus"
	"github.com/velostock/velostock/business/sdk/web"
)

type app struct {
	auth       *auth.Auth
	companyBus *companybus.Core
	userBus    *userbus.Core
}

func newApp(ath *auth.Auth, companyBus *companybus.Core, userBus *userbus.Core) *app {
	return &app{
		auth:       ath,
		companyBus: companyBus,
		userBus:    userBus,
	}
}

// login exchanges email and password for a signed token.
func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var app Login
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := a.userBus.Authenticate(ctx, *addr, app.Password)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) || errors.Is(err, userbus.ErrAuthenticationFailure) {
			return errs.New(errs.Unauthenticated, userbus.ErrAuthenticationFailure)
		}
		return errs.Errorf(errs.InternalOnlyLog, "authenticate: %s", err)
	}

	if !usr.Enabled {
		return errs.New(errs.Unauthenticated, userbus.ErrAuthenticationFailure)
	}

	token, err := a.auth.GenerateToken(usr)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "generate token: %s", err)
	}

	return Token{Token: token}
}

// signup creates a company and its owner user inside one transaction and
// returns a token for the new owner.
func (a *app) signup(ctx context.Context, r *http.Request) web.Encoder {
	var app Signup
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyBus, userBus, err := a.newWithTx(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	nc, err := toBusNewCompany(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cmp, err := companyBus.Create(ctx, nc)
	if err != nil {
		if errors.Is(err, companybus.ErrUniqueSlug) {
			return errs.New(errs.Aborted, companybus.ErrUniqueSlug)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create company: %s", err)
	}

	nu, err := toBusNewOwner(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	nu.CompanyID = cmp.ID

	usr, err := userBus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create owner: %s", err)
	}

	token, err := a.auth.GenerateToken(usr)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "generate token: %s", err)
	}

	return Token{Token: token}
}

func (a *app) newWithTx(ctx context.Context) (*companybus.Core, *userbus.Core, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return nil, nil, err
	}

	companyBus, err := a.companyBus.NewWithTx(tx)
	if err != nil {
		return nil, nil, err
	}

	userBus, err := a.userBus.NewWithTx(tx)
	if err != nil {
		return nil, nil, err
	}

	return companyBus, userBus, nil
}
