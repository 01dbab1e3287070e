// Package integrity enforces cross-entity consistency that the storage layer
// cannot. Projects and transactions live in separate tables with no foreign
// keys between them, so the payer-membership invariant is checked here at
// write time, against project state read within the same operation.
//
// There is no atomic cross-entity transaction: a project can be deleted
// between this check and the transaction write. That window is an accepted,
// documented race, not an error condition.
package integrity

import (
	"errors"

	"github.com/khata-app/khata/internal/project"
)

// ErrPayerNotParticipant indicates the proposed payer is neither the owner
// nor a member of the target project.
var ErrPayerNotParticipant = errors.New("payer must be a member of the project")

// ValidatePayer fails unless payerID is the owner or a member of p. Callers
// must pass a freshly read project, not a cached snapshot, since membership
// can change between reads.
func ValidatePayer(p project.Project, payerID string) error {
	if p.RoleOf(payerID) == project.RoleNone {
		return ErrPayerNotParticipant
	}
	return nil
}
