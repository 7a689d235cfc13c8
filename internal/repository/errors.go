package repository

import (
	"errors"

	"github.com/kickoff-hub/service-users/pkg/domain"
	"gorm.io/gorm"
)

// Conflict messages shared by the pre-checks in the application layer and the
// unique-index guard here, so callers see the same failure either way.
const (
	MsgUserExists        = "user already exists"
	MsgAlreadySubscribed = "user is already subscribed to this team and league"
)

// classify maps a GORM error onto the store-layer taxonomy: not found,
// unique violation, or unavailable.
func classify(err error, what, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NewNotFoundError(what)
	case errors.Is(err, gorm.ErrDuplicatedKey) && conflictMsg != "":
		return domain.NewConflictError(conflictMsg)
	default:
		return domain.NewStoreUnavailableError(err)
	}
}
