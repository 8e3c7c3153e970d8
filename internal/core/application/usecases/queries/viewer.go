// Package queries contains read operations. Handlers read through the
// repository ports without a transaction and return read models shaped for the
// caller: pickup codes and other users' data are filtered by the Viewer.
package queries

import (
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
)

// Viewer is the authenticated caller a read model is prepared for.
type Viewer struct {
	UserID kernel.UUID
	Role   user.Role
}

// NewViewer builds a viewer from the token claims.
func NewViewer(userID kernel.UUID, role user.Role) Viewer {
	return Viewer{UserID: userID, Role: role}
}
