// Package capability represents the set of named permissions a user can
// hold. Resolution is two tier: a per-user override wins, otherwise the
// static role default applies. Unknown capability names never parse, so the
// set is closed.
package capability

import (
	"fmt"

	"github.com/velostock/velostock/business/types/role"
)

// The set of capabilities that can be checked.
var (
	ManageUsers    = newCapability("manage-users")
	ManageCompany  = newCapability("manage-company")
	ViewFinancials = newCapability("view-financials")
	EditPrices     = newCapability("edit-prices")
	DeleteVehicles = newCapability("delete-vehicles")
	ManageCosts    = newCapability("manage-costs")
	ViewBills      = newCapability("view-bills")
	ManageBills    = newCapability("manage-bills")
	ManageLeads    = newCapability("manage-leads")
	MoveVehicles   = newCapability("move-vehicles")
	GenerateAds    = newCapability("generate-ads")
)

// =============================================================================

// Set of known capabilities.
var capabilities = make(map[string]Capability)

// Capability represents a named permission in the system.
type Capability struct {
	value string
}

func newCapability(capability string) Capability {
	c := Capability{capability}
	capabilities[capability] = c
	return c
}

// String returns the name of the capability.
func (c Capability) String() string {
	return c.value
}

// Equal provides support for the go-cmp package and testing.
func (c Capability) Equal(c2 Capability) bool {
	return c.value == c2.value
}

// MarshalText provides support for logging and any marshal needs.
func (c Capability) MarshalText() ([]byte, error) {
	return []byte(c.value), nil
}

// =============================================================================

// Parse parses the string value and returns a capability if one exists.
func Parse(value string) (Capability, error) {
	capability, exists := capabilities[value]
	if !exists {
		return Capability{}, fmt.Errorf("invalid capability %q", value)
	}

	return capability, nil
}

// MustParse parses the string value and returns a capability if one exists.
// If an error occurs the function panics.
func MustParse(value string) Capability {
	capability, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return capability
}

// =============================================================================

// defaults is the static role to capability table. Anything not listed
// is denied.
var defaults = map[role.Role]map[Capability]bool{
	role.Owner: {
		ManageUsers:    true,
		ManageCompany:  true,
		ViewFinancials: true,
		EditPrices:     true,
		DeleteVehicles: true,
		ManageCosts:    true,
		ViewBills:      true,
		ManageBills:    true,
		ManageLeads:    true,
		MoveVehicles:   true,
		GenerateAds:    true,
	},
	role.Manager: {
		ManageUsers:    true,
		ViewFinancials: true,
		EditPrices:     true,
		DeleteVehicles: true,
		ManageCosts:    true,
		ViewBills:      true,
		ManageLeads:    true,
		MoveVehicles:   true,
		GenerateAds:    true,
	},
	role.Financial: {
		ViewFinancials: true,
		ManageCosts:    true,
		ViewBills:      true,
		ManageBills:    true,
	},
	role.Seller: {
		ManageLeads:  true,
		MoveVehicles: true,
		GenerateAds:  true,
	},
	role.Driver: {
		MoveVehicles: true,
	},
}

// Resolve reports whether the capability is granted for the role taking the
// per-user overrides into account. An override for the capability wins over
// the role default.
func Resolve(c Capability, r role.Role, overrides map[string]bool) bool {
	if v, exists := overrides[c.value]; exists {
		return v
	}

	return defaults[r][c]
}
