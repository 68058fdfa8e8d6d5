package costdb

import (
	"bytes"
	"strings"

	"github.com/velostock/velostock/business/domain/costbus"
)

func applyFilter(filter costbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.CompanyID != nil {
		data["company_id"] = *filter.CompanyID
		wc = append(wc, "company_id = :company_id")
	}

	if filter.VehicleID != nil {
		data["vehicle_id"] = *filter.VehicleID
		wc = append(wc, "vehicle_id = :vehicle_id")
	}

	if filter.Category != nil {
		data["category"] = *filter.Category
		wc = append(wc, "category = :category")
	}

	if filter.StartDate != nil {
		data["start_date"] = filter.StartDate.UTC()
		wc = append(wc, "date >= :start_date")
	}

	if filter.EndDate != nil {
		data["end_date"] = filter.EndDate.UTC()
		wc = append(wc, "date <= :end_date")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
