package vehiclebus

import "github.com/velostock/velostock/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByCreatedAt, order.DESC)

// Set of fields that the results can be ordered by.
const (
	OrderByID        = "vehicle_id"
	OrderByBrand     = "brand"
	OrderByModel     = "model"
	OrderByYear      = "year"
	OrderByStatus    = "status"
	OrderByCreatedAt = "created_at"
)
