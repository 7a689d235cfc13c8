package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	profileDomain "github.com/kickoff-hub/service-users/internal/domain/profile"
	"gorm.io/gorm"
)

// ProfileModel is the GORM model for the user_profiles table.
type ProfileModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(320);not null;uniqueIndex:idx_user_profiles_email"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Address   *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (ProfileModel) TableName() string { return "user_profiles" }

// GormProfileRepository implements ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository.
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByID returns a profile by id.
func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*profileDomain.UserProfile, error) {
	var model ProfileModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, classify(err, "user", "")
	}
	return toProfileDomain(&model), nil
}

// FindByEmail returns a profile by exact email.
func (r *GormProfileRepository) FindByEmail(ctx context.Context, email string) (*profileDomain.UserProfile, error) {
	var model ProfileModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		return nil, classify(err, "user", "")
	}
	return toProfileDomain(&model), nil
}

// ExistsByID reports whether a profile with the id exists.
func (r *GormProfileRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ProfileModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, classify(err, "user", "")
	}
	return count > 0, nil
}

// Save inserts a new profile.
func (r *GormProfileRepository) Save(ctx context.Context, p *profileDomain.UserProfile) error {
	model := toProfileModel(p)
	return classify(r.db.WithContext(ctx).Create(&model).Error, "user", MsgUserExists)
}

// ListAll returns every profile, oldest first.
func (r *GormProfileRepository) ListAll(ctx context.Context) ([]*profileDomain.UserProfile, error) {
	var models []ProfileModel
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, classify(err, "user", "")
	}

	profiles := make([]*profileDomain.UserProfile, len(models))
	for i := range models {
		profiles[i] = toProfileDomain(&models[i])
	}
	return profiles, nil
}

func toProfileModel(p *profileDomain.UserProfile) ProfileModel {
	return ProfileModel{
		ID: p.ID(), Email: p.Email(), Name: p.Name(), Address: p.Address(),
		CreatedAt: p.CreatedAt(), UpdatedAt: p.UpdatedAt(),
	}
}

func toProfileDomain(m *ProfileModel) *profileDomain.UserProfile {
	return profileDomain.Reconstruct(m.ID, m.Email, m.Name, m.Address, m.CreatedAt, m.UpdatedAt)
}
