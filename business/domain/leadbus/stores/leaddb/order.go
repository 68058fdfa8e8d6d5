package leaddb

import (
	"fmt"

	"github.com/velostock/velostock/business/domain/leadbus"
	"github.com/velostock/velostock/business/sdk/order"
)

var orderByFields = map[string]string{
	leadbus.OrderByID:        "lead_id",
	leadbus.OrderByName:      "name",
	leadbus.OrderByStatus:    "status",
	leadbus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
