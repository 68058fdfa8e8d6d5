package costapp

import (
	"net/http"
	"time"

	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/domain/costbus"
)

type queryParams struct {
	Page      string
	Rows      string
	OrderBy   string
	Category  string
	StartDate string
	EndDate   string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:      values.Get("page"),
		Rows:      values.Get("rows"),
		OrderBy:   values.Get("orderBy"),
		Category:  values.Get("category"),
		StartDate: values.Get("start_date"),
		EndDate:   values.Get("end_date"),
	}
}

func parseFilter(qp queryParams) (costbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter costbus.QueryFilter

	if qp.Category != "" {
		filter.Category = &qp.Category
	}

	if qp.StartDate != "" {
		t, err := time.Parse(time.RFC3339, qp.StartDate)
		switch err {
		case nil:
			filter.StartDate = &t
		default:
			fieldErrors.Add("start_date", err)
		}
	}

	if qp.EndDate != "" {
		t, err := time.Parse(time.RFC3339, qp.EndDate)
		switch err {
		case nil:
			filter.EndDate = &t
		default:
			fieldErrors.Add("end_date", err)
		}
	}

	if fieldErrors != nil {
		return costbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
