package costbus

import "github.com/velostock/velostock/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByDate, order.DESC)

// Set of fields that the results can be ordered by.
const (
	OrderByID       = "cost_id"
	OrderByCategory = "category"
	OrderByValue    = "value"
	OrderByDate     = "date"
)
