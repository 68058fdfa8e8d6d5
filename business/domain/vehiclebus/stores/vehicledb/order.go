package vehicledb

import (
	"fmt"

	"github.com/velostock/velostock/business/domain/vehiclebus"
	"github.com/velostock/velostock/business/sdk/order"
)

var orderByFields = map[string]string{
	vehiclebus.OrderByID:        "vehicle_id",
	vehiclebus.OrderByBrand:     "brand",
	vehiclebus.OrderByModel:     "model",
	vehiclebus.OrderByYear:      "year",
	vehiclebus.OrderByStatus:    "status",
	vehiclebus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
