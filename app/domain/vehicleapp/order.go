package vehicleapp

import (
	"github.com/velostock/velostock/business/domain/vehiclebus"
)

var orderByFields = map[string]string{
	"vehicle_id":   vehiclebus.OrderByID,
	"brand":        vehiclebus.OrderByBrand,
	"model":        vehiclebus.OrderByModel,
	"year":         vehiclebus.OrderByYear,
	"status":       vehiclebus.OrderByStatus,
	"created_date": vehiclebus.OrderByCreatedAt,
}
