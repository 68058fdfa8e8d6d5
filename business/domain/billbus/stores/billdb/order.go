package billdb

import (
	"fmt"

	"github.com/velostock/velostock/business/domain/billbus"
	"github.com/velostock/velostock/business/sdk/order"
)

var orderByFields = map[string]string{
	billbus.OrderByID:       "bill_id",
	billbus.OrderByCategory: "category",
	billbus.OrderByValue:    "value",
	billbus.OrderByDueDate:  "due_date",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
