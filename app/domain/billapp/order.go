package billapp

import (
	"github.com/velostock/velostock/business/domain/billbus"
)

var orderByFields = map[string]string{
	"bill_id":  billbus.OrderByID,
	"category": billbus.OrderByCategory,
	"value":    billbus.OrderByValue,
	"due_date": billbus.OrderByDueDate,
}
