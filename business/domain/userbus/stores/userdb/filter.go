package userdb

import (
	"bytes"
	"strings"

	"github.com/velostock/velostock/business/domain/userbus"
)

func applyFilter(filter userbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.CompanyID != nil {
		data["company_id"] = *filter.CompanyID
		wc = append(wc, "company_id = :company_id")
	}

	if filter.ID != nil {
		data["user_id"] = *filter.ID
		wc = append(wc, "user_id = :user_id")
	}

	if filter.Name != nil {
		data["name"] = "%" + filter.Name.String() + "%"
		wc = append(wc, "name ILIKE :name")
	}

	if filter.Email != nil {
		data["email"] = filter.Email.Address
		wc = append(wc, "email = :email")
	}

	if filter.Role != nil {
		data["role"] = filter.Role.String()
		wc = append(wc, "role = :role")
	}

	if filter.Enabled != nil {
		data["enabled"] = *filter.Enabled
		wc = append(wc, "enabled = :enabled")
	}

	if filter.StartCreatedAt != nil {
		data["start_created_at"] = filter.StartCreatedAt.UTC()
		wc = append(wc, "created_at >= :start_created_at")
	}

	if filter.EndCreatedAt != nil {
		data["end_created_at"] = filter.EndCreatedAt.UTC()
		wc = append(wc, "created_at <= :end_created_at")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
