package costapp

import (
	"github.com/velostock/velostock/business/domain/costbus"
)

var orderByFields = map[string]string{
	"cost_id":  costbus.OrderByID,
	"category": costbus.OrderByCategory,
	"value":    costbus.OrderByValue,
	"date":     costbus.OrderByDate,
}
