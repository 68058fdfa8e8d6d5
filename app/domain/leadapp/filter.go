package leadapp

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/domain/leadbus"
)

type queryParams struct {
	Page       string
	Rows       string
	OrderBy    string
	VehicleID  string
	Status     string
	AssignedTo string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:       values.Get("page"),
		Rows:       values.Get("rows"),
		OrderBy:    values.Get("orderBy"),
		VehicleID:  values.Get("vehicle_id"),
		Status:     values.Get("status"),
		AssignedTo: values.Get("assigned_to"),
	}
}

func parseFilter(qp queryParams) (leadbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter leadbus.QueryFilter

	if qp.VehicleID != "" {
		id, err := uuid.Parse(qp.VehicleID)
		switch err {
		case nil:
			filter.VehicleID = &id
		default:
			fieldErrors.Add("vehicle_id", err)
		}
	}

	if qp.Status != "" {
		status, err := parseStatus(qp.Status)
		switch err {
		case nil:
			filter.Status = &status
		default:
			fieldErrors.Add("status", err)
		}
	}

	if qp.AssignedTo != "" {
		id, err := uuid.Parse(qp.AssignedTo)
		switch err {
		case nil:
			filter.AssignedTo = &id
		default:
			fieldErrors.Add("assigned_to", err)
		}
	}

	if fieldErrors != nil {
		return leadbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
