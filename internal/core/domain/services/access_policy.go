package services

import (
	"parcels/internal/core/domain/model/user"
)

// Operation names an action guarded by the authorization policy.
type Operation string

const (
	OpRegisterParcel     Operation = "parcel.register"
	OpListParcels        Operation = "parcel.list"
	OpViewParcel         Operation = "parcel.view"
	OpEditParcel         Operation = "parcel.edit"
	OpDeleteParcel       Operation = "parcel.delete"
	OpDeliverParcel      Operation = "parcel.deliver"
	OpReportProblem      Operation = "parcel.report_problem"
	OpListProblems       Operation = "parcel.list_problems"
	OpReceptionistStats  Operation = "stats.receptionist"
	OpAdminStats         Operation = "stats.admin"
	OpFindNearestPoint   Operation = "pickup_point.find_nearest"
	OpViewPickupPoints   Operation = "pickup_point.view"
	OpManagePickupPoints Operation = "pickup_point.manage"
	OpManageUsers        Operation = "user.manage"
	OpViewUser           Operation = "user.view"
	OpViewAnyParcel      Operation = "parcel.view_any"
	OpViewAnyPickupCode  Operation = "parcel.view_any_pickup_code"
	OpViewAnyUserProfile Operation = "user.view_any"
)

var (
	staff      = []user.Role{user.RoleAdmin, user.RoleReceptionist}
	reporters  = []user.Role{user.RoleAdmin, user.RoleEmployee}
	adminsOnly = []user.Role{user.RoleAdmin}
	everyone   = user.Roles()
)

// permissions is the role table consulted by CanPerform.
var permissions = map[Operation][]user.Role{
	OpRegisterParcel:     staff,
	OpListParcels:        everyone,
	OpViewParcel:         everyone,
	OpEditParcel:         staff,
	OpDeleteParcel:       staff,
	OpDeliverParcel:      staff,
	OpReportProblem:      reporters,
	OpListProblems:       staff,
	OpReceptionistStats:  staff,
	OpAdminStats:         adminsOnly,
	OpFindNearestPoint:   everyone,
	OpViewPickupPoints:   everyone,
	OpManagePickupPoints: adminsOnly,
	OpManageUsers:        adminsOnly,
	OpViewUser:           everyone,
	OpViewAnyParcel:      staff,
	OpViewAnyPickupCode:  adminsOnly,
	OpViewAnyUserProfile: adminsOnly,
}

// CanPerform is the single authorization decision for role-gated operations.
// Unknown roles and unknown operations are denied.
func CanPerform(role user.Role, op Operation) bool {
	for _, allowed := range permissions[op] {
		if allowed == role {
			return true
		}
	}
	return false
}

// CanViewParcel decides access to a single parcel. Staff see every parcel; other
// roles only see parcels addressed to them.
func CanViewParcel(role user.Role, isRecipient bool) bool {
	if !CanPerform(role, OpViewParcel) {
		return false
	}
	return isRecipient || CanPerform(role, OpViewAnyParcel)
}

// CanViewPickupCode decides whether a parcel's pickup code may be shown to the caller.
func CanViewPickupCode(role user.Role, isRecipient bool) bool {
	return isRecipient || CanPerform(role, OpViewAnyPickupCode)
}

// CanViewUser allows administrators to read any profile and everyone to read their own.
func CanViewUser(role user.Role, isSelf bool) bool {
	if !CanPerform(role, OpViewUser) {
		return false
	}
	return isSelf || CanPerform(role, OpViewAnyUserProfile)
}
