package vehiclebus

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/foundation/otel"
)

// Observation is a free text note attached to a vehicle.
type Observation struct {
	ID        uuid.UUID
	VehicleID uuid.UUID
	CompanyID uuid.UUID
	AuthorID  uuid.UUID
	Text      string
	CreatedAt time.Time
}

// NewObservation contains information needed to attach an observation.
type NewObservation struct {
	VehicleID uuid.UUID
	CompanyID uuid.UUID
	AuthorID  uuid.UUID
	Text      string
}

// Image is a vehicle photo kept in the database.
type Image struct {
	ID          uuid.UUID
	VehicleID   uuid.UUID
	CompanyID   uuid.UUID
	Name        string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}

// NewImage contains information needed to attach an image.
type NewImage struct {
	VehicleID   uuid.UUID
	CompanyID   uuid.UUID
	Name        string
	ContentType string
	Data        []byte
}

// Document is a PDF persisted on disk, only its metadata lives in the
// database.
type Document struct {
	ID        uuid.UUID
	VehicleID uuid.UUID
	CompanyID uuid.UUID
	Name      string
	Path      string
	Size      int64
	CreatedAt time.Time
}

// NewDocument contains information needed to register a stored document.
type NewDocument struct {
	VehicleID uuid.UUID
	CompanyID uuid.UUID
	Name      string
	Path      string
	Size      int64
}

// CreateObservation attaches a new observation to a vehicle.
func (c *Core) CreateObservation(ctx context.Context, no NewObservation) (Observation, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.createObservation")
	defer span.End()

	obs := Observation{
		ID:        uuid.New(),
		VehicleID: no.VehicleID,
		CompanyID: no.CompanyID,
		AuthorID:  no.AuthorID,
		Text:      no.Text,
		CreatedAt: time.Now(),
	}

	if err := c.storer.CreateObservation(ctx, obs); err != nil {
		return Observation{}, fmt.Errorf("createobservation: %w", err)
	}

	return obs, nil
}

// QueryObservations returns the observations for a vehicle, newest first.
func (c *Core) QueryObservations(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]Observation, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.queryObservations")
	defer span.End()

	obs, err := c.storer.QueryObservations(ctx, companyID, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("queryobservations: %w", err)
	}

	return obs, nil
}

// QueryObservationByID finds a single observation within the company.
func (c *Core) QueryObservationByID(ctx context.Context, companyID uuid.UUID, observationID uuid.UUID) (Observation, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.queryObservationByID")
	defer span.End()

	obs, err := c.storer.QueryObservationByID(ctx, companyID, observationID)
	if err != nil {
		return Observation{}, fmt.Errorf("queryobservationbyid: observationID[%s]: %w", observationID, err)
	}

	return obs, nil
}

// DeleteObservation removes an observation from a vehicle.
func (c *Core) DeleteObservation(ctx context.Context, obs Observation) error {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.deleteObservation")
	defer span.End()

	if err := c.storer.DeleteObservation(ctx, obs); err != nil {
		return fmt.Errorf("deleteobservation: %w", err)
	}

	return nil
}

// CreateImage stores a new vehicle photo.
func (c *Core) CreateImage(ctx context.Context, ni NewImage) (Image, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.createImage")
	defer span.End()

	img := Image{
		ID:          uuid.New(),
		VehicleID:   ni.VehicleID,
		CompanyID:   ni.CompanyID,
		Name:        ni.Name,
		ContentType: ni.ContentType,
		Data:        ni.Data,
		CreatedAt:   time.Now(),
	}

	if err := c.storer.CreateImage(ctx, img); err != nil {
		return Image{}, fmt.Errorf("createimage: %w", err)
	}

	return img, nil
}

// QueryImages returns the photos stored for a vehicle.
func (c *Core) QueryImages(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]Image, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.queryImages")
	defer span.End()

	imgs, err := c.storer.QueryImages(ctx, companyID, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("queryimages: %w", err)
	}

	return imgs, nil
}

// CreateDocument registers a document persisted on disk.
func (c *Core) CreateDocument(ctx context.Context, nd NewDocument) (Document, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.createDocument")
	defer span.End()

	doc := Document{
		ID:        uuid.New(),
		VehicleID: nd.VehicleID,
		CompanyID: nd.CompanyID,
		Name:      nd.Name,
		Path:      nd.Path,
		Size:      nd.Size,
		CreatedAt: time.Now(),
	}

	if err := c.storer.CreateDocument(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("createdocument: %w", err)
	}

	return doc, nil
}

// QueryDocuments returns the documents registered for a vehicle.
func (c *Core) QueryDocuments(ctx context.Context, companyID uuid.UUID, vehicleID uuid.UUID) ([]Document, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.queryDocuments")
	defer span.End()

	docs, err := c.storer.QueryDocuments(ctx, companyID, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("querydocuments: %w", err)
	}

	return docs, nil
}
