package vehiclebus

import (
	"github.com/google/uuid"
	"github.com/velostock/velostock/business/types/plate"
	"github.com/velostock/velostock/business/types/vehiclestatus"
)

// QueryFilter holds the available fields a query can be filtered on.
// CompanyID is always set by the app layer so queries never cross tenants.
type QueryFilter struct {
	CompanyID *uuid.UUID
	ID        *uuid.UUID
	Brand     *string
	Model     *string
	Year      *int
	Plate     *plate.Plate
	Status    *vehiclestatus.Status
	Location  *string
}
