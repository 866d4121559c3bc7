package permissions_test

import (
	"net/http"
	"testing"

	"bistro/permissions"
	"bistro/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllows_RoleMatrix(t *testing.T) {
	tests := []struct {
		capability permissions.Capability
		admin      bool
		waiter     bool
		client     bool
	}{
		{capability: permissions.ViewTables, admin: true, waiter: true, client: true},
		{capability: permissions.ViewReservations, admin: true, waiter: true, client: true},
		{capability: permissions.CreateReservation, admin: true, waiter: true, client: true},
		{capability: permissions.ManageReservation, admin: true, waiter: true, client: false},
		{capability: permissions.CreateOrder, admin: true, waiter: true, client: true},
		{capability: permissions.SettleOrder, admin: true, waiter: true, client: false},
		{capability: permissions.ManageMenu, admin: true, waiter: false, client: false},
		{capability: permissions.ViewStatistics, admin: true, waiter: false, client: false},
		{capability: permissions.ManageShift, admin: false, waiter: true, client: false},
		{capability: permissions.ManageTables, admin: true, waiter: false, client: false},
		{capability: permissions.ManageUsers, admin: true, waiter: false, client: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.capability), func(t *testing.T) {
			assert.Equal(t, tt.admin, permissions.Allows(constant.RoleAdmin, tt.capability))
			assert.Equal(t, tt.waiter, permissions.Allows(constant.RoleWaiter, tt.capability))
			assert.Equal(t, tt.client, permissions.Allows(constant.RoleClient, tt.capability))
		})
	}
}

func TestAllows_UnknownRole(t *testing.T) {
	assert.False(t, permissions.Allows("guest", permissions.ViewTables))
	assert.Empty(t, permissions.CapabilitiesOf("guest"))
}

func TestCapabilitiesOf_ReturnsCopy(t *testing.T) {
	caps := permissions.CapabilitiesOf(constant.RoleClient)
	caps[0] = permissions.ManageMenu

	assert.False(t, permissions.Allows(constant.RoleClient, permissions.ManageMenu))
}

func TestGet_Authorize(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name    string
		role    string
		path    string
		method  string
		allowed bool
	}{
		{name: "login is public", role: "", path: "/v1/auth/login", method: http.MethodPost, allowed: true},
		{name: "profile for any session", role: constant.RoleClient, path: "/v1/auth/me", method: http.MethodGet, allowed: true},
		{name: "client books table", role: constant.RoleClient, path: "/v1/reservations", method: http.MethodPost, allowed: true},
		{name: "client cannot list all reservations", role: constant.RoleClient, path: "/v1/reservations", method: http.MethodGet, allowed: false},
		{name: "client cannot pay", role: constant.RoleClient, path: "/v1/orders/{id}/pay", method: http.MethodPost, allowed: false},
		{name: "waiter pays", role: constant.RoleWaiter, path: "/v1/orders/{id}/pay", method: http.MethodPost, allowed: true},
		{name: "waiter cannot edit menu", role: constant.RoleWaiter, path: "/v1/menu/dishes", method: http.MethodPost, allowed: false},
		{name: "admin cannot start shift", role: constant.RoleAdmin, path: "/v1/shifts/start", method: http.MethodPost, allowed: false},
		{name: "admin reads statistics", role: constant.RoleAdmin, path: "/v1/statistics/sales", method: http.MethodGet, allowed: true},
		{name: "unlisted route is denied", role: constant.RoleAdmin, path: "/v1/unknown", method: http.MethodGet, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, data.Authorize(tt.role, tt.path, tt.method))
		})
	}
}

func TestGet_EveryCapabilityKnown(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	for _, endpoint := range data.Endpoints {
		if endpoint.Skip || endpoint.Capability == "" {
			continue
		}

		assert.True(t, endpoint.Capability.Known(), endpoint.Path)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]string{
		"malformed":          `{"endpoints":`,
		"unknown capability": `{"endpoints":[{"path":"/v1/x","method":"GET","capability":"x.fly"}]}`,
		"duplicate route": `{"endpoints":[
			{"path":"/v1/x","method":"GET"},
			{"path":"/v1/x","method":"GET","capability":"menu.view"}
		]}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := permissions.Parse([]byte(raw))

			assert.Error(t, err)
			assert.Nil(t, data)
		})
	}
}

func TestParse_SamePathOtherMethod(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[
		{"path":"/v1/x","method":"GET","capability":"menu.view"},
		{"path":"/v1/x","method":"POST","capability":"menu.manage"}
	]}`))
	require.NoError(t, err)

	assert.True(t, data.Authorize(constant.RoleWaiter, "/v1/x", http.MethodGet))
	assert.False(t, data.Authorize(constant.RoleWaiter, "/v1/x", http.MethodPost))
}
