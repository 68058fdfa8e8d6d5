package fipeapp

import (
	"encoding/json"

	"github.com/velostock/velostock/app/sdk/fipeclient"
)

// Price is the reference price for a brand, model and year.
type Price struct {
	Brand          string  `json:"brand"`
	Model          string  `json:"model"`
	Year           int     `json:"year"`
	Version        string  `json:"version,omitempty"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	ReferenceMonth string  `json:"referenceMonth"`
	FipeCode       string  `json:"fipeCode"`
}

// Encode implements the web.Encoder interface.
func (p Price) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json", err
}

func toAppPrice(cli fipeclient.Price) Price {
	return Price{
		Brand:          cli.Brand,
		Model:          cli.Model,
		Year:           cli.Year,
		Version:        cli.Version,
		Price:          cli.Price,
		Currency:       cli.Currency,
		ReferenceMonth: cli.ReferenceMonth,
		FipeCode:       cli.FipeCode,
	}
}
