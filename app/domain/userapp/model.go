package userapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/domain/userbus"
	"github.com/velostock/velostock/business/types/capability"
	"github.com/velostock/velostock/business/types/name"
	"github.com/velostock/velostock/business/types/password"
	"github.com/velostock/velostock/business/types/phone"
	"github.com/velostock/velostock/business/types/role"
)

// User represents information about an individual user.
type User struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Role              string          `json:"role"`
	Phone             string          `json:"phone"`
	Capabilities      map[string]bool `json:"capabilities,omitempty"`
	CommissionPercent *float64        `json:"commissionPercent,omitempty"`
	Enabled           bool            `json:"enabled"`
	DateCreated       string          `json:"dateCreated"`
	DateUpdated       string          `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (u User) Encode() ([]byte, string, error) {
	data, err := json.Marshal(u)
	return data, "application/json", err
}

func toAppUser(bus userbus.User) User {
	return User{
		ID:                bus.ID.String(),
		Name:              bus.Name.String(),
		Email:             bus.Email.Address,
		Role:              bus.Role.String(),
		Phone:             bus.Phone.String(),
		Capabilities:      bus.Capabilities,
		CommissionPercent: bus.CommissionPercent,
		Enabled:           bus.Enabled,
		DateCreated:       bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:       bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppUsers(users []userbus.User) []User {
	app := make([]User, len(users))
	for i, usr := range users {
		app[i] = toAppUser(usr)
	}
	return app
}

// =============================================================================

// NewUser defines the data needed to add a new user.
type NewUser struct {
	Name              string          `json:"name" validate:"required"`
	Email             string          `json:"email" validate:"required,email"`
	Role              string          `json:"role" validate:"required"`
	Phone             string          `json:"phone"`
	Password          string          `json:"password" validate:"required"`
	PasswordConfirm   string          `json:"passwordConfirm" validate:"eqfield=Password"`
	Capabilities      map[string]bool `json:"capabilities"`
	CommissionPercent *float64        `json:"commissionPercent" validate:"omitempty,gte=0,lte=100"`
}

// Decode implements the web.Decoder interface.
func (app *NewUser) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewUser) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewUser(app NewUser) (userbus.NewUser, error) {
	parsedRole, err := role.Parse(app.Role)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse role: %w", err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse email: %w", err)
	}

	nme, err := name.Parse(app.Name)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse name: %w", err)
	}

	ph, err := phone.ParseNull(app.Phone)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse phone: %w", err)
	}

	pass, err := password.Parse(app.Password)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse password: %w", err)
	}

	if err := validCapabilities(app.Capabilities); err != nil {
		return userbus.NewUser{}, err
	}

	bus := userbus.NewUser{
		Name:              nme,
		Email:             *addr,
		Role:              parsedRole,
		Phone:             ph,
		Password:          pass,
		Capabilities:      app.Capabilities,
		CommissionPercent: app.CommissionPercent,
	}

	return bus, nil
}

// =============================================================================

// UpdateUser defines the data needed to update a user.
type UpdateUser struct {
	Name              *string  `json:"name"`
	Email             *string  `json:"email" validate:"omitempty,email"`
	Role              *string  `json:"role"`
	Phone             *string  `json:"phone"`
	Password          *string  `json:"password"`
	PasswordConfirm   *string  `json:"passwordConfirm" validate:"omitempty,eqfield=Password"`
	CommissionPercent *float64 `json:"commissionPercent" validate:"omitempty,gte=0,lte=100"`
	Enabled           *bool    `json:"enabled"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateUser) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateUser) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateUser(app UpdateUser) (userbus.UpdateUser, error) {
	bus := userbus.UpdateUser{
		CommissionPercent: app.CommissionPercent,
		Enabled:           app.Enabled,
	}

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse name: %w", err)
		}
		bus.Name = &nme
	}

	if app.Email != nil {
		addr, err := mail.ParseAddress(*app.Email)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse email: %w", err)
		}
		bus.Email = addr
	}

	if app.Role != nil {
		r, err := role.Parse(*app.Role)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse role: %w", err)
		}
		bus.Role = &r
	}

	if app.Phone != nil {
		ph, err := phone.ParseNull(*app.Phone)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse phone: %w", err)
		}
		bus.Phone = &ph
	}

	if app.Password != nil {
		pass, err := password.Parse(*app.Password)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse password: %w", err)
		}
		bus.Password = &pass
	}

	return bus, nil
}

// =============================================================================

// UpdateCapabilities defines the per-user capability overrides. The map
// replaces the stored overrides wholesale, an empty map clears them.
type UpdateCapabilities struct {
	Capabilities map[string]bool `json:"capabilities" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateCapabilities) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateCapabilities) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}

	return validCapabilities(app.Capabilities)
}

func validCapabilities(caps map[string]bool) error {
	for capName := range caps {
		if _, err := capability.Parse(capName); err != nil {
			return errs.Errorf(errs.InvalidArgument, "unknown capability %q", capName)
		}
	}
	return nil
}
