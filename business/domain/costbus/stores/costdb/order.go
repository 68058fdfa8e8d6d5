package costdb

import (
	"fmt"

	"github.com/velostock/velostock/business/domain/costbus"
	"github.com/velostock/velostock/business/sdk/order"
)

var orderByFields = map[string]string{
	costbus.OrderByID:       "cost_id",
	costbus.OrderByCategory: "category",
	costbus.OrderByValue:    "value",
	costbus.OrderByDate:     "date",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
