package costbus

import (
	"time"

	"github.com/google/uuid"
)

// QueryFilter holds the available fields a query can be filtered on.
// CompanyID is always set by the app layer so queries never cross tenants.
type QueryFilter struct {
	CompanyID *uuid.UUID
	VehicleID *uuid.UUID
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
}
