package profile

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is a registered user. Email is unique and compared exactly as stored.
type UserProfile struct {
	id        uuid.UUID
	email     string
	name      string
	address   *string
	createdAt time.Time
	updatedAt time.Time
}

// NewUserProfile creates a profile with a fresh id. address may be nil.
func NewUserProfile(email, name string, address *string) *UserProfile {
	now := time.Now().UTC()
	return &UserProfile{
		id:        uuid.New(),
		email:     email,
		name:      name,
		address:   address,
		createdAt: now,
		updatedAt: now,
	}
}

// Reconstruct rebuilds a UserProfile from persistence.
func Reconstruct(id uuid.UUID, email, name string, address *string, createdAt, updatedAt time.Time) *UserProfile {
	return &UserProfile{
		id: id, email: email, name: name, address: address,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// Getters.
func (p *UserProfile) ID() uuid.UUID        { return p.id }
func (p *UserProfile) Email() string        { return p.email }
func (p *UserProfile) Name() string         { return p.name }
func (p *UserProfile) Address() *string     { return p.address }
func (p *UserProfile) CreatedAt() time.Time { return p.createdAt }
func (p *UserProfile) UpdatedAt() time.Time { return p.updatedAt }
