package services_test

import (
	"testing"

	"parcels/internal/core/domain/model/user"
	"parcels/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestCanPerform(t *testing.T) {
	admin, reception, employee := user.RoleAdmin, user.RoleReceptionist, user.RoleEmployee

	testCases := []struct {
		op      services.Operation
		allowed []user.Role
		denied  []user.Role
	}{
		{services.OpRegisterParcel, []user.Role{admin, reception}, []user.Role{employee}},
		{services.OpDeliverParcel, []user.Role{admin, reception}, []user.Role{employee}},
		{services.OpEditParcel, []user.Role{admin, reception}, []user.Role{employee}},
		{services.OpDeleteParcel, []user.Role{admin, reception}, []user.Role{employee}},
		{services.OpReportProblem, []user.Role{admin, employee}, []user.Role{reception}},
		{services.OpListProblems, []user.Role{admin, reception}, []user.Role{employee}},
		{services.OpReceptionistStats, []user.Role{admin, reception}, []user.Role{employee}},
		{services.OpAdminStats, []user.Role{admin}, []user.Role{reception, employee}},
		{services.OpManagePickupPoints, []user.Role{admin}, []user.Role{reception, employee}},
		{services.OpManageUsers, []user.Role{admin}, []user.Role{reception, employee}},
		{services.OpFindNearestPoint, []user.Role{admin, reception, employee}, nil},
		{services.OpListParcels, []user.Role{admin, reception, employee}, nil},
	}

	for _, tc := range testCases {
		t.Run(string(tc.op), func(t *testing.T) {
			for _, r := range tc.allowed {
				assert.True(t, services.CanPerform(r, tc.op), r)
			}
			for _, r := range tc.denied {
				assert.False(t, services.CanPerform(r, tc.op), r)
			}
		})
	}

	t.Run("unknown role or operation is denied", func(t *testing.T) {
		assert.False(t, services.CanPerform(user.Role("GUEST"), services.OpListParcels))
		assert.False(t, services.CanPerform(user.Role(""), services.OpFindNearestPoint))
		assert.False(t, services.CanPerform(admin, services.Operation("parcel.teleport")))
	})
}

func TestCanViewParcel(t *testing.T) {
	assert.True(t, services.CanViewParcel(user.RoleEmployee, true))
	assert.False(t, services.CanViewParcel(user.RoleEmployee, false))
	assert.True(t, services.CanViewParcel(user.RoleReceptionist, false))
	assert.True(t, services.CanViewParcel(user.RoleAdmin, false))
}

func TestCanViewPickupCode(t *testing.T) {
	assert.True(t, services.CanViewPickupCode(user.RoleAdmin, false))
	assert.True(t, services.CanViewPickupCode(user.RoleEmployee, true))
	assert.False(t, services.CanViewPickupCode(user.RoleReceptionist, false))
	assert.False(t, services.CanViewPickupCode(user.RoleEmployee, false))
}

func TestCanViewUser(t *testing.T) {
	assert.True(t, services.CanViewUser(user.RoleAdmin, false))
	assert.True(t, services.CanViewUser(user.RoleEmployee, true))
	assert.False(t, services.CanViewUser(user.RoleReceptionist, false))
}
