package leaddb

import (
	"bytes"
	"strings"

	"github.com/velostock/velostock/business/domain/leadbus"
)

func applyFilter(filter leadbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.CompanyID != nil {
		data["company_id"] = *filter.CompanyID
		wc = append(wc, "company_id = :company_id")
	}

	if filter.VehicleID != nil {
		data["vehicle_id"] = *filter.VehicleID
		wc = append(wc, "vehicle_id = :vehicle_id")
	}

	if filter.Status != nil {
		data["status"] = *filter.Status
		wc = append(wc, "status = :status")
	}

	if filter.AssignedTo != nil {
		data["assigned_to"] = *filter.AssignedTo
		wc = append(wc, "assigned_to = :assigned_to")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
