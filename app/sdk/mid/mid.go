// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/velostock/velostock/app/sdk/auth"
	"github.com/velostock/velostock/business/domain/userbus"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/business/sdk/web"
)

func checkIsError(e web.Encoder) error {
	err, hasError := e.(error)
	if hasError {
		return err
	}

	return nil
}

// =============================================================================

type ctxKey int

const (
	claimKey ctxKey = iota + 1
	userKey
	trKey
)

func setClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimKey, claims)
}

// GetClaims returns the claims from the context.
func GetClaims(ctx context.Context) auth.Claims {
	v, ok := ctx.Value(claimKey).(auth.Claims)
	if !ok {
		return auth.Claims{}
	}
	return v
}

func setUser(ctx context.Context, usr userbus.User) context.Context {
	return context.WithValue(ctx, userKey, usr)
}

// GetUser returns the authenticated user from the context.
func GetUser(ctx context.Context) (userbus.User, error) {
	v, ok := ctx.Value(userKey).(userbus.User)
	if !ok {
		return userbus.User{}, errors.New("user not found in context")
	}

	return v, nil
}

// GetUserID returns the authenticated user's id from the context.
func GetUserID(ctx context.Context) (uuid.UUID, error) {
	usr, err := GetUser(ctx)
	if err != nil {
		return uuid.UUID{}, err
	}

	return usr.ID, nil
}

// GetCompanyID returns the authenticated user's company id from the context.
// Every company scoped query must be filtered by this value.
func GetCompanyID(ctx context.Context) (uuid.UUID, error) {
	usr, err := GetUser(ctx)
	if err != nil {
		return uuid.UUID{}, err
	}

	if usr.CompanyID == uuid.Nil {
		return uuid.UUID{}, errors.New("user is not linked to a company")
	}

	return usr.CompanyID, nil
}

func setTran(ctx context.Context, tx sqldb.CommitRollbacker) context.Context {
	return context.WithValue(ctx, trKey, tx)
}

// GetTran retrieves the value that can manage a transaction.
func GetTran(ctx context.Context) (sqldb.CommitRollbacker, error) {
	v, ok := ctx.Value(trKey).(sqldb.CommitRollbacker)
	if !ok {
		return nil, errors.New("transaction not found in context")
	}

	return v, nil
}
