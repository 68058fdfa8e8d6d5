package billdb

import (
	"bytes"
	"strings"

	"github.com/velostock/velostock/business/domain/billbus"
)

func applyFilter(filter billbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.CompanyID != nil {
		data["company_id"] = *filter.CompanyID
		wc = append(wc, "company_id = :company_id")
	}

	if filter.Category != nil {
		data["category"] = *filter.Category
		wc = append(wc, "category = :category")
	}

	if filter.Paid != nil {
		if *filter.Paid {
			wc = append(wc, "paid_at IS NOT NULL")
		} else {
			wc = append(wc, "paid_at IS NULL")
		}
	}

	if filter.StartDueDate != nil {
		data["start_due_date"] = filter.StartDueDate.UTC()
		wc = append(wc, "due_date >= :start_due_date")
	}

	if filter.EndDueDate != nil {
		data["end_due_date"] = filter.EndDueDate.UTC()
		wc = append(wc, "due_date <= :end_due_date")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
