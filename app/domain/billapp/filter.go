package billapp

import (
	"net/http"
	"time"

	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/domain/billbus"
)

type queryParams struct {
	Page         string
	Rows         string
	OrderBy      string
	Category     string
	Paid         string
	StartDueDate string
	EndDueDate   string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:         values.Get("page"),
		Rows:         values.Get("rows"),
		OrderBy:      values.Get("orderBy"),
		Category:     values.Get("category"),
		Paid:         values.Get("paid"),
		StartDueDate: values.Get("start_due_date"),
		EndDueDate:   values.Get("end_due_date"),
	}
}

func parseFilter(qp queryParams) (billbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter billbus.QueryFilter

	if qp.Category != "" {
		filter.Category = &qp.Category
	}

	if qp.Paid != "" {
		switch qp.Paid {
		case "true":
			paid := true
			filter.Paid = &paid
		case "false":
			paid := false
			filter.Paid = &paid
		default:
			fieldErrors.Add("paid", errs.Errorf(errs.InvalidArgument, "invalid boolean %q", qp.Paid))
		}
	}

	if qp.StartDueDate != "" {
		t, err := time.Parse(time.RFC3339, qp.StartDueDate)
		switch err {
		case nil:
			filter.StartDueDate = &t
		default:
			fieldErrors.Add("start_due_date", err)
		}
	}

	if qp.EndDueDate != "" {
		t, err := time.Parse(time.RFC3339, qp.EndDueDate)
		switch err {
		case nil:
			filter.EndDueDate = &t
		default:
			fieldErrors.Add("end_due_date", err)
		}
	}

	if fieldErrors != nil {
		return billbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
