package userbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/types/name"
	"github.com/velostock/velostock/business/types/role"
)

// QueryFilter holds the available fields a query can be filtered on.
// CompanyID is always set by the app layer so queries never cross tenants.
type QueryFilter struct {
	CompanyID      *uuid.UUID
	ID             *uuid.UUID
	Name           *name.Name
	Email          *mail.Address
	Role           *role.Role
	Enabled        *bool
	StartCreatedAt *time.Time
	EndCreatedAt   *time.Time
}
