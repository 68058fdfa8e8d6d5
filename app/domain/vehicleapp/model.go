package vehicleapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/domain/vehiclebus"
	"github.com/velostock/velostock/business/types/money"
	"github.com/velostock/velostock/business/types/plate"
	"github.com/velostock/velostock/business/types/vehiclestatus"
)

// Vehicle represents one unit in the company's inventory.
type Vehicle struct {
	ID              string    `json:"id"`
	Brand           string    `json:"brand"`
	Model           string    `json:"model"`
	Year            int       `json:"year"`
	Color           string    `json:"color"`
	Plate           string    `json:"plate"`
	Odometer        int       `json:"odometer"`
	Fuel            string    `json:"fuel"`
	Status          string    `json:"status"`
	Location        string    `json:"location"`
	LocationDetail  string    `json:"locationDetail"`
	PurchasePrice   float64   `json:"purchasePrice"`
	AskingPrice     float64   `json:"askingPrice"`
	MinPrice        float64   `json:"minPrice"`
	SoldPrice       *float64  `json:"soldPrice,omitempty"`
	Checklist       Checklist `json:"checklist"`
	StatusChangedAt string    `json:"statusChangedAt"`
	DateCreated     string    `json:"dateCreated"`
	DateUpdated     string    `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (v Vehicle) Encode() ([]byte, string, error) {
	data, err := json.Marshal(v)
	return data, "application/json", err
}

func toAppVehicle(bus vehiclebus.Vehicle) Vehicle {
	var soldPrice *float64
	if bus.SoldPrice != nil {
		f := bus.SoldPrice.Float()
		soldPrice = &f
	}

	return Vehicle{
		ID:              bus.ID.String(),
		Brand:           bus.Brand,
		Model:           bus.Model,
		Year:            bus.Year,
		Color:           bus.Color,
		Plate:           bus.Plate.String(),
		Odometer:        bus.Odometer,
		Fuel:            bus.Fuel,
		Status:          bus.Status.String(),
		Location:        bus.Location,
		LocationDetail:  bus.LocationDetail,
		PurchasePrice:   bus.PurchasePrice.Float(),
		AskingPrice:     bus.AskingPrice.Float(),
		MinPrice:        bus.MinPrice.Float(),
		SoldPrice:       soldPrice,
		Checklist:       toAppChecklist(bus.Checklist),
		StatusChangedAt: bus.StatusChangedAt.Format(time.RFC3339),
		DateCreated:     bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:     bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppVehicles(vehs []vehiclebus.Vehicle) []Vehicle {
	app := make([]Vehicle, len(vehs))
	for i, veh := range vehs {
		app[i] = toAppVehicle(veh)
	}
	return app
}

// =============================================================================

// Checklist is the inspection document attached to a vehicle.
type Checklist struct {
	Categories []Category `json:"categories"`
}

// Category groups related checklist items under a name.
type Category struct {
	Name  string `json:"name" validate:"required"`
	Items []Item `json:"items"`
}

// Item is a single inspection point.
type Item struct {
	Name        string `json:"name" validate:"required"`
	Done        bool   `json:"done"`
	Observation string `json:"observation,omitempty"`
}

// Decode implements the web.Decoder interface.
func (app *Checklist) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Checklist) Validate() error {
	return nil
}

func toAppChecklist(bus vehiclebus.Checklist) Checklist {
	cats := make([]Category, len(bus.Categories))
	for i, cat := range bus.Categories {
		items := make([]Item, len(cat.Items))
		for j, itm := range cat.Items {
			items[j] = Item{
				Name:        itm.Name,
				Done:        itm.Done,
				Observation: itm.Observation,
			}
		}
		cats[i] = Category{
			Name:  cat.Name,
			Items: items,
		}
	}
	return Checklist{Categories: cats}
}

func toBusChecklist(app Checklist) vehiclebus.Checklist {
	cats := make([]vehiclebus.Category, len(app.Categories))
	for i, cat := range app.Categories {
		items := make([]vehiclebus.Item, len(cat.Items))
		for j, itm := range cat.Items {
			items[j] = vehiclebus.Item{
				Name:        itm.Name,
				Done:        itm.Done,
				Observation: itm.Observation,
			}
		}
		cats[i] = vehiclebus.Category{
			Name:  cat.Name,
			Items: items,
		}
	}
	return vehiclebus.Checklist{Categories: cats}
}

// =============================================================================

// NewVehicle defines the data needed to add a new vehicle. Vehicles always
// enter the pipeline at intake, a requested status is ignored.
type NewVehicle struct {
	Brand          string    `json:"brand" validate:"required"`
	Model          string    `json:"model" validate:"required"`
	Year           int       `json:"year" validate:"required,gte=1950,lte=2100"`
	Color          string    `json:"color"`
	Plate          string    `json:"plate" validate:"required"`
	Odometer       int       `json:"odometer" validate:"gte=0"`
	Fuel           string    `json:"fuel"`
	Location       string    `json:"location"`
	LocationDetail string    `json:"locationDetail"`
	PurchasePrice  float64   `json:"purchasePrice" validate:"gte=0"`
	AskingPrice    float64   `json:"askingPrice" validate:"gte=0"`
	MinPrice       float64   `json:"minPrice" validate:"gte=0"`
	Checklist      Checklist `json:"checklist"`
}

// Decode implements the web.Decoder interface.
func (app *NewVehicle) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewVehicle) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewVehicle(app NewVehicle) (vehiclebus.NewVehicle, error) {
	plt, err := plate.Parse(app.Plate)
	if err != nil {
		return vehiclebus.NewVehicle{}, fmt.Errorf("parse plate: %w", err)
	}

	purchase, err := money.Parse(app.PurchasePrice)
	if err != nil {
		return vehiclebus.NewVehicle{}, fmt.Errorf("parse purchase price: %w", err)
	}

	asking, err := money.Parse(app.AskingPrice)
	if err != nil {
		return vehiclebus.NewVehicle{}, fmt.Errorf("parse asking price: %w", err)
	}

	min, err := money.Parse(app.MinPrice)
	if err != nil {
		return vehiclebus.NewVehicle{}, fmt.Errorf("parse min price: %w", err)
	}

	bus := vehiclebus.NewVehicle{
		Brand:          app.Brand,
		Model:          app.Model,
		Year:           app.Year,
		Color:          app.Color,
		Plate:          plt,
		Odometer:       app.Odometer,
		Fuel:           app.Fuel,
		Location:       app.Location,
		LocationDetail: app.LocationDetail,
		PurchasePrice:  purchase,
		AskingPrice:    asking,
		MinPrice:       min,
		Checklist:      toBusChecklist(app.Checklist),
	}

	return bus, nil
}

// =============================================================================

// UpdateVehicle defines the data needed to update a vehicle's descriptive and
// price attributes. Status and location only change through the status route.
type UpdateVehicle struct {
	Brand         *string  `json:"brand"`
	Model         *string  `json:"model"`
	Year          *int     `json:"year" validate:"omitempty,gte=1950,lte=2100"`
	Color         *string  `json:"color"`
	Plate         *string  `json:"plate"`
	Odometer      *int     `json:"odometer" validate:"omitempty,gte=0"`
	Fuel          *string  `json:"fuel"`
	PurchasePrice *float64 `json:"purchasePrice" validate:"omitempty,gte=0"`
	AskingPrice   *float64 `json:"askingPrice" validate:"omitempty,gte=0"`
	MinPrice      *float64 `json:"minPrice" validate:"omitempty,gte=0"`
	SoldPrice     *float64 `json:"soldPrice" validate:"omitempty,gte=0"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateVehicle) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateVehicle) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// TouchesPrices reports whether the update changes any monetary field.
func (app UpdateVehicle) TouchesPrices() bool {
	return app.PurchasePrice != nil || app.AskingPrice != nil || app.MinPrice != nil || app.SoldPrice != nil
}

func toBusUpdateVehicle(app UpdateVehicle) (vehiclebus.UpdateVehicle, error) {
	bus := vehiclebus.UpdateVehicle{
		Brand:    app.Brand,
		Model:    app.Model,
		Year:     app.Year,
		Color:    app.Color,
		Odometer: app.Odometer,
		Fuel:     app.Fuel,
	}

	if app.Plate != nil {
		plt, err := plate.Parse(*app.Plate)
		if err != nil {
			return vehiclebus.UpdateVehicle{}, fmt.Errorf("parse plate: %w", err)
		}
		bus.Plate = &plt
	}

	if app.PurchasePrice != nil {
		m, err := money.Parse(*app.PurchasePrice)
		if err != nil {
			return vehiclebus.UpdateVehicle{}, fmt.Errorf("parse purchase price: %w", err)
		}
		bus.PurchasePrice = &m
	}

	if app.AskingPrice != nil {
		m, err := money.Parse(*app.AskingPrice)
		if err != nil {
			return vehiclebus.UpdateVehicle{}, fmt.Errorf("parse asking price: %w", err)
		}
		bus.AskingPrice = &m
	}

	if app.MinPrice != nil {
		m, err := money.Parse(*app.MinPrice)
		if err != nil {
			return vehiclebus.UpdateVehicle{}, fmt.Errorf("parse min price: %w", err)
		}
		bus.MinPrice = &m
	}

	if app.SoldPrice != nil {
		m, err := money.Parse(*app.SoldPrice)
		if err != nil {
			return vehiclebus.UpdateVehicle{}, fmt.Errorf("parse sold price: %w", err)
		}
		bus.SoldPrice = &m
	}

	return bus, nil
}

// =============================================================================

// UpdateStatus defines the data needed to move a vehicle through the pipeline
// or between physical locations.
type UpdateStatus struct {
	Status         string  `json:"status" validate:"required"`
	Location       *string `json:"location"`
	LocationDetail *string `json:"locationDetail"`
	Note           string  `json:"note"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateStatus) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateStatus) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateStatus(app UpdateStatus) (vehiclebus.UpdateStatus, error) {
	status, err := vehiclestatus.Parse(app.Status)
	if err != nil {
		return vehiclebus.UpdateStatus{}, fmt.Errorf("parse status: %w", err)
	}

	bus := vehiclebus.UpdateStatus{
		Status:         status,
		Location:       app.Location,
		LocationDetail: app.LocationDetail,
		Note:           app.Note,
	}

	return bus, nil
}

// =============================================================================

// History is one row of the vehicle's movement ledger.
type History struct {
	ID           string `json:"id"`
	FromStatus   string `json:"fromStatus"`
	ToStatus     string `json:"toStatus"`
	FromLocation string `json:"fromLocation"`
	ToLocation   string `json:"toLocation"`
	ActorID      string `json:"actorId"`
	Note         string `json:"note,omitempty"`
	DateCreated  string `json:"dateCreated"`
}

func toAppHistory(bus vehiclebus.History) History {
	return History{
		ID:           bus.ID.String(),
		FromStatus:   bus.FromStatus.String(),
		ToStatus:     bus.ToStatus.String(),
		FromLocation: bus.FromLocation,
		ToLocation:   bus.ToLocation,
		ActorID:      bus.ActorID.String(),
		Note:         bus.Note,
		DateCreated:  bus.CreatedAt.Format(time.RFC3339),
	}
}

// Histories is the full ledger for one vehicle.
type Histories []History

// Encode implements the web.Encoder interface.
func (h Histories) Encode() ([]byte, string, error) {
	data, err := json.Marshal(h)
	return data, "application/json", err
}

func toAppHistories(hsts []vehiclebus.History) Histories {
	app := make(Histories, len(hsts))
	for i, hst := range hsts {
		app[i] = toAppHistory(hst)
	}
	return app
}

// =============================================================================

// NewObservation defines the data needed to attach a note to a vehicle.
type NewObservation struct {
	Text string `json:"text" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *NewObservation) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewObservation) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// Observation is a free text note attached to a vehicle.
type Observation struct {
	ID          string `json:"id"`
	AuthorID    string `json:"authorId"`
	Text        string `json:"text"`
	DateCreated string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (o Observation) Encode() ([]byte, string, error) {
	data, err := json.Marshal(o)
	return data, "application/json", err
}

func toAppObservation(bus vehiclebus.Observation) Observation {
	return Observation{
		ID:          bus.ID.String(),
		AuthorID:    bus.AuthorID.String(),
		Text:        bus.Text,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
	}
}

// Observations is the set of notes on one vehicle.
type Observations []Observation

// Encode implements the web.Encoder interface.
func (o Observations) Encode() ([]byte, string, error) {
	data, err := json.Marshal(o)
	return data, "application/json", err
}

func toAppObservations(obs []vehiclebus.Observation) Observations {
	app := make(Observations, len(obs))
	for i, ob := range obs {
		app[i] = toAppObservation(ob)
	}
	return app
}

// =============================================================================

// Image is the metadata of a stored vehicle photo. The bytes themselves never
// travel through list responses.
type Image struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
	DateCreated string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (i Image) Encode() ([]byte, string, error) {
	data, err := json.Marshal(i)
	return data, "application/json", err
}

func toAppImage(bus vehiclebus.Image) Image {
	return Image{
		ID:          bus.ID.String(),
		Name:        bus.Name,
		ContentType: bus.ContentType,
		Size:        len(bus.Data),
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
	}
}

// Images is the set of photos stored for one vehicle.
type Images []Image

// Encode implements the web.Encoder interface.
func (i Images) Encode() ([]byte, string, error) {
	data, err := json.Marshal(i)
	return data, "application/json", err
}

func toAppImages(imgs []vehiclebus.Image) Images {
	app := make(Images, len(imgs))
	for i, img := range imgs {
		app[i] = toAppImage(img)
	}
	return app
}

// =============================================================================

// Document is the metadata of a document stored on disk.
type Document struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	DateCreated string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (d Document) Encode() ([]byte, string, error) {
	data, err := json.Marshal(d)
	return data, "application/json", err
}

func toAppDocument(bus vehiclebus.Document) Document {
	return Document{
		ID:          bus.ID.String(),
		Name:        bus.Name,
		Size:        bus.Size,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
	}
}

// Documents is the set of documents registered for one vehicle.
type Documents []Document

// Encode implements the web.Encoder interface.
func (d Documents) Encode() ([]byte, string, error) {
	data, err := json.Marshal(d)
	return data, "application/json", err
}

func toAppDocuments(docs []vehiclebus.Document) Documents {
	app := make(Documents, len(docs))
	for i, doc := range docs {
		app[i] = toAppDocument(doc)
	}
	return app
}

// =============================================================================

// NewAdCopy defines the data needed to ask for listing copy.
type NewAdCopy struct {
	Tone string `json:"tone"`
}

// Decode implements the web.Decoder interface.
func (app *NewAdCopy) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewAdCopy) Validate() error {
	return nil
}

// AdCopy is the generated listing text for a vehicle.
type AdCopy struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Encode implements the web.Encoder interface.
func (a AdCopy) Encode() ([]byte, string, error) {
	data, err := json.Marshal(a)
	return data, "application/json", err
}
