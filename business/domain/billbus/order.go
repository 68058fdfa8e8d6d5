package billbus

import "github.com/velostock/velostock/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByDueDate, order.ASC)

// Set of fields that the results can be ordered by.
const (
	OrderByID       = "bill_id"
	OrderByCategory = "category"
	OrderByValue    = "value"
	OrderByDueDate  = "due_date"
)
