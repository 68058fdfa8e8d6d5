package vehicledb

import (
	"bytes"
	"strings"

	"github.com/velostock/velostock/business/domain/vehiclebus"
)

func applyFilter(filter vehiclebus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.CompanyID != nil {
		data["company_id"] = *filter.CompanyID
		wc = append(wc, "company_id = :company_id")
	}

	if filter.ID != nil {
		data["vehicle_id"] = *filter.ID
		wc = append(wc, "vehicle_id = :vehicle_id")
	}

	if filter.Brand != nil {
		data["brand"] = "%" + *filter.Brand + "%"
		wc = append(wc, "brand ILIKE :brand")
	}

	if filter.Model != nil {
		data["model"] = "%" + *filter.Model + "%"
		wc = append(wc, "model ILIKE :model")
	}

	if filter.Year != nil {
		data["year"] = *filter.Year
		wc = append(wc, "year = :year")
	}

	if filter.Plate != nil {
		data["plate"] = filter.Plate.String()
		wc = append(wc, "plate = :plate")
	}

	if filter.Status != nil {
		data["status"] = filter.Status.String()
		wc = append(wc, "status = :status")
	}

	if filter.Location != nil {
		data["location"] = "%" + *filter.Location + "%"
		wc = append(wc, "location ILIKE :location")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
