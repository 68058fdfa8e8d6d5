package leadapp

import (
	"github.com/velostock/velostock/business/domain/leadbus"
)

var orderByFields = map[string]string{
	"lead_id":      leadbus.OrderByID,
	"name":         leadbus.OrderByName,
	"status":       leadbus.OrderByStatus,
	"created_date": leadbus.OrderByCreatedAt,
}
