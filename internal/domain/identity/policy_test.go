package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func principal(role Role) Principal {
	return Principal{UserID: uuid.New(), Username: "tester", Role: role}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		role    Role
		action  Action
		allowed bool
	}{
		// Vendor can run the counter but not the day lifecycle
		{RoleVendor, ActionBillingCreate, true},
		{RoleVendor, ActionDueClear, true},
		{RoleVendor, ActionLedgerRead, true},
		{RoleVendor, ActionStockRead, true},
		{RoleVendor, ActionDayOpen, false},
		{RoleVendor, ActionDayClose, false},
		{RoleVendor, ActionDayLock, false},
		{RoleVendor, ActionStockEntry, false},
		{RoleVendor, ActionShortageJustify, false},
		{RoleVendor, ActionPricingSet, false},
		{RoleVendor, ActionUserManage, false},
		// Admin runs the day
		{RoleAdmin, ActionDayOpen, true},
		{RoleAdmin, ActionDayClose, true},
		{RoleAdmin, ActionDayLock, true},
		{RoleAdmin, ActionStockEntry, true},
		{RoleAdmin, ActionShortageJustify, true},
		{RoleAdmin, ActionPricingSet, true},
		{RoleAdmin, ActionBillingCreate, true},
		{RoleAdmin, ActionUserManage, false},
		// Super admin additionally manages users
		{RoleSuperAdmin, ActionUserManage, true},
		{RoleSuperAdmin, ActionDayOpen, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.allowed, Authorize(principal(tt.role), tt.action))
		})
	}
}

func TestAuthorize_InvalidRole(t *testing.T) {
	assert.False(t, Authorize(principal(Role("guest")), ActionLedgerRead))
	assert.False(t, Authorize(principal(Role("")), ActionBillingCreate))
}

func TestAuthorize_UnknownAction(t *testing.T) {
	assert.False(t, Authorize(principal(RoleSuperAdmin), Action("day:reopen")))
}
