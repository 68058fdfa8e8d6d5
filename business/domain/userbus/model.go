package userbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/types/name"
	"github.com/velostock/velostock/business/types/password"
	"github.com/velostock/velostock/business/types/phone"
	"github.com/velostock/velostock/business/types/role"
)

// User represents information about an individual user. CompanyID is
// uuid.Nil only while signup has not been completed. Capabilities holds the
// per-user overrides over the role defaults, keyed by capability name.
type User struct {
	ID                uuid.UUID
	CompanyID         uuid.UUID
	Name              name.Name
	Email             mail.Address
	Role              role.Role
	PasswordHash      []byte
	Phone             phone.Null
	Capabilities      map[string]bool
	CommissionPercent *float64
	Enabled           bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewUser contains information needed to create a new user.
type NewUser struct {
	CompanyID         uuid.UUID
	Name              name.Name
	Email             mail.Address
	Phone             phone.Null
	Role              role.Role
	Password          password.Password
	Capabilities      map[string]bool
	CommissionPercent *float64
}

// UpdateUser contains information needed to update a user.
type UpdateUser struct {
	Name              *name.Name
	Email             *mail.Address
	Role              *role.Role
	Phone             *phone.Null
	Password          *password.Password
	Capabilities      map[string]bool
	CommissionPercent *float64
	Enabled           *bool
}
