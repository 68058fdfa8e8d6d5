package authapp

import (
	"encoding/json"
	"fmt"
	"net/mail"

	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/domain/companybus"
	"github.com/velostock/velostock/business/domain/userbus"
	"github.com/velostock/velostock/business/types/name"
	"github.com/velostock/velostock/business/types/password"
	"github.com/velostock/velostock/business/types/phone"
	"github.com/velostock/velostock/business/types/role"
)

// Token is the response for a successful login or signup.
type Token struct {
	Token string `json:"token"`
}

// Encode implements the web.Encoder interface.
func (t Token) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

// =============================================================================

// Login defines the data needed to authenticate.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *Login) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Login) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// =============================================================================

// Signup defines the data needed to open a dealership account: the company
// and its owner in one shot.
type Signup struct {
	CompanyName       string  `json:"companyName" validate:"required"`
	Slug              string  `json:"slug" validate:"required,lowercase,alphanum"`
	CommissionPercent float64 `json:"commissionPercent" validate:"gte=0,lte=100"`
	SalesInbox        string  `json:"salesInbox" validate:"required,email"`
	OwnerName         string  `json:"ownerName" validate:"required"`
	Email             string  `json:"email" validate:"required,email"`
	Phone             string  `json:"phone"`
	Password          string  `json:"password" validate:"required"`
	PasswordConfirm   string  `json:"passwordConfirm" validate:"eqfield=Password"`
}

// Decode implements the web.Decoder interface.
func (app *Signup) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Signup) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewCompany(app Signup) (companybus.NewCompany, error) {
	nme, err := name.Parse(app.CompanyName)
	if err != nil {
		return companybus.NewCompany{}, fmt.Errorf("parse company name: %w", err)
	}

	inbox, err := mail.ParseAddress(app.SalesInbox)
	if err != nil {
		return companybus.NewCompany{}, fmt.Errorf("parse sales inbox: %w", err)
	}

	bus := companybus.NewCompany{
		Name:              nme,
		Slug:              app.Slug,
		CommissionPercent: app.CommissionPercent,
		SalesInbox:        *inbox,
	}

	return bus, nil
}

func toBusNewOwner(app Signup) (userbus.NewUser, error) {
	nme, err := name.Parse(app.OwnerName)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse owner name: %w", err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse email: %w", err)
	}

	ph, err := phone.ParseNull(app.Phone)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse phone: %w", err)
	}

	pass, err := password.Parse(app.Password)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse password: %w", err)
	}

	bus := userbus.NewUser{
		Name:     nme,
		Email:    *addr,
		Phone:    ph,
		Role:     role.Owner,
		Password: pass,
	}

	return bus, nil
}
