package permissions

import (
	"slices"

	"bistro/shared/constant"
)

type Capability string

const (
	ViewTables        Capability = "tables.view"
	ManageTables      Capability = "tables.manage"
	ViewReservations  Capability = "reservations.view"
	ManageReservation Capability = "reservations.manage"
	CreateReservation Capability = "reservations.create"
	ViewMenu          Capability = "menu.view"
	ManageMenu        Capability = "menu.manage"
	CreateOrder       Capability = "orders.create"
	ViewOrders        Capability = "orders.view"
	SettleOrder       Capability = "orders.settle"
	ViewReceipts      Capability = "receipts.view"
	ManageShift       Capability = "shifts.manage"
	ViewStatistics    Capability = "statistics.view"
	ManageUsers       Capability = "users.manage"
)

var matrix = map[string][]Capability{
	constant.RoleAdmin: {
		ViewTables, ManageTables,
		ViewReservations, CreateReservation, ManageReservation,
		ViewMenu, ManageMenu,
		CreateOrder, ViewOrders, SettleOrder, ViewReceipts,
		ViewStatistics, ManageUsers,
	},
	constant.RoleWaiter: {
		ViewTables,
		ViewReservations, CreateReservation, ManageReservation,
		ViewMenu,
		CreateOrder, ViewOrders, SettleOrder, ViewReceipts,
		ManageShift,
	},
	constant.RoleClient: {
		ViewTables,
		ViewReservations, CreateReservation,
		ViewMenu,
		CreateOrder, ViewOrders, ViewReceipts,
	},
}

// Allows reports whether the role holds the capability.
func Allows(role string, capability Capability) bool {
	return slices.Contains(matrix[role], capability)
}

// CapabilitiesOf returns a copy of the role's capability set.
func CapabilitiesOf(role string) []Capability {
	return slices.Clone(matrix[role])
}

func (c Capability) Known() bool {
	for _, caps := range matrix {
		if slices.Contains(caps, c) {
			return true
		}
	}

	return false
}
