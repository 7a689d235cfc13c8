package profile

import (
	"context"

	"github.com/google/uuid"
)

// ProfileRepository defines the persistence contract for user profiles.
type ProfileRepository interface {
	// FindByID returns a NotFound domain error when no profile has the id.
	FindByID(ctx context.Context, id uuid.UUID) (*UserProfile, error)

	// FindByEmail returns a NotFound domain error when no profile has the email.
	FindByEmail(ctx context.Context, email string) (*UserProfile, error)

	// ExistsByID reports whether a profile with the id exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Save inserts a new profile; a duplicate email yields a Conflict domain error.
	Save(ctx context.Context, p *UserProfile) error

	// ListAll returns every profile ordered by creation time. Unpaginated.
	ListAll(ctx context.Context) ([]*UserProfile, error)
}
