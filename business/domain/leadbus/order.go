package leadbus

import "github.com/velostock/velostock/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByCreatedAt, order.DESC)

// Set of fields that the results can be ordered by.
const (
	OrderByID        = "lead_id"
	OrderByName      = "name"
	OrderByStatus    = "status"
	OrderByCreatedAt = "created_at"
)
