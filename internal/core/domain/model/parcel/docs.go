// Package parcel contains the Parcel aggregate, its lifecycle state machine and
// the pickup code contract.
//
// A parcel is registered by a receptionist with a freshly generated six digit
// pickup code and status REGISTERED. It leaves REGISTERED exactly once: either it
// is delivered after the recipient presents the code, or a problem is reported.
// Status.TransitionTo is the single transition table; everything the aggregate
// does goes through it.
//
// Concurrent deliveries are not serialised here. The repository loads the parcel
// under a row lock and updates it conditionally on its version.
package parcel
