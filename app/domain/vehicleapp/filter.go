package vehicleapp

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/domain/vehiclebus"
	"github.com/velostock/velostock/business/types/plate"
	"github.com/velostock/velostock/business/types/vehiclestatus"
)

type queryParams struct {
	Page     string
	Rows     string
	OrderBy  string
	ID       string
	Brand    string
	Model    string
	Year     string
	Plate    string
	Status   string
	Location string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:     values.Get("page"),
		Rows:     values.Get("rows"),
		OrderBy:  values.Get("orderBy"),
		ID:       values.Get("vehicle_id"),
		Brand:    values.Get("brand"),
		Model:    values.Get("model"),
		Year:     values.Get("year"),
		Plate:    values.Get("plate"),
		Status:   values.Get("status"),
		Location: values.Get("location"),
	}
}

func parseFilter(qp queryParams) (vehiclebus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter vehiclebus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("vehicle_id", err)
		}
	}

	if qp.Brand != "" {
		filter.Brand = &qp.Brand
	}

	if qp.Model != "" {
		filter.Model = &qp.Model
	}

	if qp.Year != "" {
		year, err := strconv.Atoi(qp.Year)
		switch err {
		case nil:
			filter.Year = &year
		default:
			fieldErrors.Add("year", err)
		}
	}

	if qp.Plate != "" {
		plt, err := plate.Parse(qp.Plate)
		switch err {
		case nil:
			filter.Plate = &plt
		default:
			fieldErrors.Add("plate", err)
		}
	}

	if qp.Status != "" {
		status, err := vehiclestatus.Parse(qp.Status)
		switch err {
		case nil:
			filter.Status = &status
		default:
			fieldErrors.Add("status", err)
		}
	}

	if qp.Location != "" {
		filter.Location = &qp.Location
	}

	if fieldErrors != nil {
		return vehiclebus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
