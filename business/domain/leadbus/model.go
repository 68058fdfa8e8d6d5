package leadbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/velostock/velostock/business/types/name"
	"github.com/velostock/velostock/business/types/phone"
)

// Set of funnel stages a lead moves through. These are labels, not a state
// machine, sellers reclassify freely.
const (
	StatusNew        = "Novo"
	StatusInProgress = "Em Atendimento"
	StatusProposal   = "Proposta"
	StatusWon        = "Fechado"
	StatusLost       = "Perdido"
)

// Lead represents a prospective buyer, optionally tied to the vehicle they
// asked about.
type Lead struct {
	ID         uuid.UUID
	CompanyID  uuid.UUID
	Name       name.Name
	Phone      phone.Null
	Email      string
	VehicleID  *uuid.UUID
	Source     string
	Status     string
	Notes      string
	AssignedTo *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewLead contains information needed to create a new lead.
type NewLead struct {
	CompanyID  uuid.UUID
	Name       name.Name
	Phone      phone.Null
	Email      string
	VehicleID  *uuid.UUID
	Source     string
	Status     string
	Notes      string
	AssignedTo *uuid.UUID
}

// UpdateLead contains information needed to update a lead.
type UpdateLead struct {
	Name       *name.Name
	Phone      *phone.Null
	Email      *string
	VehicleID  *uuid.UUID
	Source     *string
	Status     *string
	Notes      *string
	AssignedTo *uuid.UUID
}

// EmailAddress parses the stored email, reporting whether one is present.
func (l Lead) EmailAddress() (mail.Address, bool) {
	if l.Email == "" {
		return mail.Address{}, false
	}

	addr, err := mail.ParseAddress(l.Email)
	if err != nil {
		return mail.Address{}, false
	}

	return *addr, true
}
