// Package auth provides authentication and authorization support.
// Authentication: you are who you say you are.
// Authorization: you have permission to do what you are asking to do.
package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/velostock/velostock/business/domain/userbus"
	"github.com/velostock/velostock/business/types/capability"
	"github.com/velostock/velostock/foundation/logger"
)

// Set of errors for authentication and authorization failures.
var (
	ErrForbidden     = errors.New("attempted action is not allowed")
	ErrUserDisabled  = errors.New("user disabled")
	ErrSetupRequired = errors.New("company setup required")
)

// Claims represents the authorization claims transmitted via a JWT. A token
// minted before signup completes carries a zero company id.
type Claims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// KeyLookup declares a method set of behavior for looking up private and
// public keys for JWT use. The return is a PEM encoded string.
type KeyLookup interface {
	PrivateKey(kid string) (string, error)
	PublicKey(kid string) (string, error)
}

// Config represents information required to construct an auth instance.
type Config struct {
	Log       *logger.Logger
	UserBus   *userbus.Core
	KeyLookup KeyLookup
	Issuer    string
	ActiveKID string
	TokenTTL  time.Duration
}

// Auth is used to authenticate clients and authorize their actions.
type Auth struct {
	log       *logger.Logger
	userBus   *userbus.Core
	keyLookup KeyLookup
	method    jwt.SigningMethod
	parser    *jwt.Parser
	issuer    string
	activeKID string
	tokenTTL  time.Duration
}

// New creates an Auth to support authentication/authorization.
func New(cfg Config) (*Auth, error) {
	a := Auth{
		log:       cfg.Log,
		userBus:   cfg.UserBus,
		keyLookup: cfg.KeyLookup,
		method:    jwt.GetSigningMethod(jwt.SigningMethodRS256.Name),
		parser:    jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name})),
		issuer:    cfg.Issuer,
		activeKID: cfg.ActiveKID,
		tokenTTL:  cfg.TokenTTL,
	}

	return &a, nil
}

// Issuer provides the configured issuer used to authenticate tokens.
func (a *Auth) Issuer() string {
	return a.issuer
}

// GenerateToken generates a signed JWT token string for the specified user.
func (a *Auth) GenerateToken(usr userbus.User) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usr.ID.String(),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.tokenTTL)),
		},
		Role: usr.Role.String(),
	}

	if usr.CompanyID != uuid.Nil {
		claims.CompanyID = usr.CompanyID.String()
	}

	token := jwt.NewWithClaims(a.method, claims)
	token.Header["kid"] = a.activeKID

	privateKeyPEM, err := a.keyLookup.PrivateKey(a.activeKID)
	if err != nil {
		return "", fmt.Errorf("private key: %w", err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("parsing private pem: %w", err)
	}

	str, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return str, nil
}

// Authenticate processes the token to validate the sender's token is valid
// and the user behind it is still enabled.
func (a *Auth) Authenticate(ctx context.Context, bearerToken string) (userbus.User, Claims, error) {
	parts := []rune(bearerToken)
	if len(parts) < 7 || string(parts[:7]) != "Bearer " {
		return userbus.User{}, Claims{}, errors.New("expected authorization header format: Bearer <token>")
	}

	var claims Claims
	token, err := a.parser.ParseWithClaims(string(parts[7:]), &claims, a.publicKeyFunc)
	if err != nil {
		return userbus.User{}, Claims{}, fmt.Errorf("parse with claims: %w", err)
	}

	if !token.Valid {
		return userbus.User{}, Claims{}, errors.New("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return userbus.User{}, Claims{}, fmt.Errorf("parse subject: %w", err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		return userbus.User{}, Claims{}, fmt.Errorf("query user: %w", err)
	}

	if !usr.Enabled {
		return userbus.User{}, Claims{}, ErrUserDisabled
	}

	return usr, claims, nil
}

// Authorize checks that the specified user holds the capability, either via
// an explicit per-user override or their role's defaults.
func (a *Auth) Authorize(ctx context.Context, usr userbus.User, cap capability.Capability) error {
	if !capability.Resolve(cap, usr.Role, usr.Capabilities) {
		return fmt.Errorf("user[%s] role[%s] capability[%s]: %w", usr.ID, usr.Role, cap, ErrForbidden)
	}

	return nil
}

func (a *Auth) publicKeyFunc(t *jwt.Token) (any, error) {
	kid, ok := t.Header["kid"]
	if !ok {
		return nil, errors.New("kid missing from header")
	}

	kidID, ok := kid.(string)
	if !ok {
		return nil, errors.New("kid malformed")
	}

	pem, err := a.keyLookup.PublicKey(kidID)
	if err != nil {
		return nil, fmt.Errorf("fetch public key: %w", err)
	}

	var publicKey *rsa.PublicKey
	publicKey, err = jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
	if err != nil {
		return nil, fmt.Errorf("parsing public pem: %w", err)
	}

	return publicKey, nil
}
