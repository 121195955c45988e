// Package authz holds the role policy table. Every write route is gated
// by the same table the frontend uses to hide buttons, so the API is the
// single source of truth.
package authz

import "github.com/tewodrosm/sera-api/internal/models"

// Resource names a protected area of the API.
type Resource string

const (
	ResourceAssets    Resource = "assets"
	ResourceInventory Resource = "inventory"
	ResourceEmployees Resource = "employees"
	ResourceClients   Resource = "clients"
	ResourceRentals   Resource = "rentals"
	ResourcePayments  Resource = "payments"
	ResourceUsers     Resource = "users"
	ResourceSettings  Resource = "settings"
)

// mutators maps each resource to the non-admin roles allowed to mutate it.
// Admin is implicit everywhere and never listed.
var mutators = map[Resource][]string{
	ResourceAssets:    {models.RoleAssetManager},
	ResourceInventory: {models.RoleInventoryManager},
	ResourceEmployees: {models.RoleHRManager},
	ResourceClients:   {models.RoleClientManager},
	ResourceRentals:   {models.RoleAssetManager},
	ResourcePayments:  {models.RoleAssetManager, models.RoleAccountant},
	ResourceUsers:     {},
	ResourceSettings:  {},
}

// CanMutate reports whether role may create, update, or delete within
// the given resource.
func CanMutate(role string, resource Resource) bool {
	if role == models.RoleAdmin {
		return true
	}
	for _, r := range mutators[resource] {
		if r == role {
			return true
		}
	}
	return false
}

// Permissions returns the mutable resources for a role, for the
// /auth/me payload so clients can drive their UI off the same table.
func Permissions(role string) []Resource {
	resources := []Resource{
		ResourceAssets,
		ResourceInventory,
		ResourceEmployees,
		ResourceClients,
		ResourceRentals,
		ResourcePayments,
		ResourceUsers,
		ResourceSettings,
	}
	allowed := make([]Resource, 0, len(resources))
	for _, res := range resources {
		if CanMutate(role, res) {
			allowed = append(allowed, res)
		}
	}
	return allowed
}
