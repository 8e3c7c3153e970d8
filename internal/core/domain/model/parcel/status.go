package parcel

import (
	"fmt"
	"strings"

	"parcels/internal/pkg/errs"
)

// Status is the lifecycle state of a parcel.
//
//	REGISTERED ──> DELIVERED
//	     │             │
//	     └──> PROBLEM <┘ (only under the permissive problem report policy)
//	            │  ▲
//	            │  └─ re-reported (description overwritten)
//	            └──> DELIVERED
//
// Nothing ever transitions back to REGISTERED.
type Status int

const (
	// Unknown is the zero value and never a valid state.
	Unknown Status = iota
	Registered
	Delivered
	Problem
)

var statusNames = map[Status]string{
	Unknown:    "UNKNOWN",
	Registered: "REGISTERED",
	Delivered:  "DELIVERED",
	Problem:    "PROBLEM",
}

// transitions is the single source of truth for legal status changes.
var transitions = map[Status]map[Status]struct{}{
	Registered: {Delivered: {}, Problem: {}},
	Problem:    {Delivered: {}, Problem: {}},
	Delivered:  {Problem: {}},
}

// ParseStatus converts the persisted or wire name of a status. Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if status != Unknown && strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a parcel status", s))
}

// String returns the upper-case name used in storage and JSON.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s Status) CanTransitionTo(target Status) bool {
	_, ok := transitions[s][target]
	return ok
}

// TransitionTo returns target when the transition is part of the lifecycle and an
// InvalidOperationError otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return s, errs.NewInvalidOperationError(fmt.Sprintf("parcel status %s -> %s", s, target))
	}
	return target, nil
}
