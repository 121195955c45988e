package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tewodrosm/sera-api/internal/models"
)

func TestCanMutate_AdminEverywhere(t *testing.T) {
	for _, res := range []Resource{
		ResourceAssets, ResourceInventory, ResourceEmployees, ResourceClients,
		ResourceRentals, ResourcePayments, ResourceUsers, ResourceSettings,
	} {
		assert.True(t, CanMutate(models.RoleAdmin, res), string(res))
	}
}

func TestCanMutate_RoleBoundaries(t *testing.T) {
	cases := []struct {
		role     string
		resource Resource
		allowed  bool
	}{
		{models.RoleAssetManager, ResourceAssets, true},
		{models.RoleAssetManager, ResourceRentals, true},
		{models.RoleAssetManager, ResourcePayments, true},
		{models.RoleAssetManager, ResourceInventory, false},
		{models.RoleAssetManager, ResourceUsers, false},
		{models.RoleInventoryManager, ResourceInventory, true},
		{models.RoleInventoryManager, ResourceAssets, false},
		{models.RoleHRManager, ResourceEmployees, true},
		{models.RoleHRManager, ResourceClients, false},
		{models.RoleClientManager, ResourceClients, true},
		{models.RoleClientManager, ResourceEmployees, false},
		{models.RoleAccountant, ResourcePayments, true},
		{models.RoleAccountant, ResourceRentals, false},
		{models.RoleAccountant, ResourceSettings, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanMutate(tc.role, tc.resource),
			"%s on %s", tc.role, tc.resource)
	}
}

func TestCanMutate_UnknownRole(t *testing.T) {
	assert.False(t, CanMutate("intern", ResourceAssets))
	assert.False(t, CanMutate("", ResourceAssets))
}

func TestPermissions(t *testing.T) {
	admin := Permissions(models.RoleAdmin)
	assert.Len(t, admin, 8)

	accountant := Permissions(models.RoleAccountant)
	assert.Equal(t, []Resource{ResourcePayments}, accountant)

	assert.Empty(t, Permissions("intern"))
}
