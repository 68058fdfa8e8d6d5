package capability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velostock/velostock/business/types/capability"
	"github.com/velostock/velostock/business/types/role"
)

func Test_Parse(t *testing.T) {
	c, err := capability.Parse("manage-users")
	require.NoError(t, err)
	assert.Equal(t, "manage-users", c.String())

	_, err = capability.Parse("manage-everything")
	assert.Error(t, err)

	_, err = capability.Parse("")
	assert.Error(t, err)
}

func Test_RoleDefaults(t *testing.T) {
	tests := []struct {
		name    string
		cap     capability.Capability
		role    role.Role
		granted bool
	}{
		{"owner manages company", capability.ManageCompany, role.Owner, true},
		{"owner manages bills", capability.ManageBills, role.Owner, true},
		{"manager cannot manage company", capability.ManageCompany, role.Manager, false},
		{"manager manages users", capability.ManageUsers, role.Manager, true},
		{"manager cannot manage bills", capability.ManageBills, role.Manager, false},
		{"financial views financials", capability.ViewFinancials, role.Financial, true},
		{"financial manages bills", capability.ManageBills, role.Financial, true},
		{"financial cannot move vehicles", capability.MoveVehicles, role.Financial, false},
		{"seller manages leads", capability.ManageLeads, role.Seller, true},
		{"seller generates ads", capability.GenerateAds, role.Seller, true},
		{"seller cannot view financials", capability.ViewFinancials, role.Seller, false},
		{"seller cannot delete vehicles", capability.DeleteVehicles, role.Seller, false},
		{"driver moves vehicles", capability.MoveVehicles, role.Driver, true},
		{"driver cannot manage leads", capability.ManageLeads, role.Driver, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := capability.Resolve(tt.cap, tt.role, nil)
			assert.Equal(t, tt.granted, got)
		})
	}
}

func Test_Resolve_OverrideWins(t *testing.T) {
	grant := map[string]bool{"view-financials": true}
	deny := map[string]bool{"move-vehicles": false}

	// A grant override opens a capability the role lacks.
	assert.True(t, capability.Resolve(capability.ViewFinancials, role.Seller, grant))

	// A deny override closes a capability the role has.
	assert.False(t, capability.Resolve(capability.MoveVehicles, role.Driver, deny))

	// Unrelated overrides leave the role default in place.
	assert.True(t, capability.Resolve(capability.ManageLeads, role.Seller, grant))
	assert.False(t, capability.Resolve(capability.ManageBills, role.Seller, deny))
}

func Test_Resolve_ClosedWorld(t *testing.T) {
	// An override naming an unknown capability never resolves anything.
	overrides := map[string]bool{"unknown-capability": true}

	for _, c := range []capability.Capability{
		capability.ManageUsers,
		capability.ManageCompany,
		capability.ViewFinancials,
		capability.DeleteVehicles,
		capability.ManageBills,
	} {
		assert.False(t, capability.Resolve(c, role.Driver, overrides), c.String())
	}
}
