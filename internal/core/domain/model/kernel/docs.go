// Package kernel holds the value objects shared by every aggregate of the parcel
// tracking domain.
//
//   - UUID: identifier for parcels, users and pickup points
//   - GeoPoint: a validated latitude/longitude pair
//   - Distance / HaversineMeters: great-circle distance in meters
//
// Values are immutable. Constructors validate their input and embed a
// guard.ConstructorGuard so that zero values fail Validate.
package kernel
