// Package services holds domain logic that does not belong to a single aggregate.
//
//   - PickupPointLocator: nearest pickup point search over a directory of points
//   - CanPerform and friends: the single role based authorization policy
//
// Both are pure; callers load the data and act on the answers.
package services
