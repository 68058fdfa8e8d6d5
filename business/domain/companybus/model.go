package companybus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/types/name"
)

// Branding and alerting defaults applied at signup.
const (
	defaultPrimaryColor   = "#1E3A5F"
	defaultSecondaryColor = "#F2B705"
	defaultStaleAlertDays = 15
)

// Company represents a dealership account in the system.
type Company struct {
	ID                uuid.UUID
	Name              name.Name
	Slug              string
	PrimaryColor      string
	SecondaryColor    string
	StaleAlertDays    int
	CommissionPercent float64
	SalesInbox        mail.Address
	Enabled           bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewCompany contains information needed to create a new company.
type NewCompany struct {
	Name              name.Name
	Slug              string
	CommissionPercent float64
	SalesInbox        mail.Address
}

// UpdateCompany contains information needed to update a company.
type UpdateCompany struct {
	Name              *name.Name
	PrimaryColor      *string
	SecondaryColor    *string
	StaleAlertDays    *int
	CommissionPercent *float64
	SalesInbox        *mail.Address
	Enabled           *bool
}
