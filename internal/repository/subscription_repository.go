package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	subDomain "github.com/kickoff-hub/service-users/internal/domain/subscription"
	"gorm.io/gorm"
)

// SubscriptionModel is the GORM model for the subscriptions table.
// The composite unique index is the authoritative guard against two
// concurrent requests subscribing the same triple.
type SubscriptionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_subscriptions_user_id;uniqueIndex:idx_subscriptions_triple,priority:1"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_triple,priority:2"`
	LeagueID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_triple,priority:3"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (SubscriptionModel) TableName() string { return "subscriptions" }

// GormSubscriptionRepository implements SubscriptionRepository using GORM.
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository.
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// Save persists a new subscription.
func (r *GormSubscriptionRepository) Save(ctx context.Context, s *subDomain.Subscription) error {
	model := toSubModel(s)
	// Select("*") so a false Active is written rather than replaced by the column default.
	return classify(r.db.WithContext(ctx).Select("*").Create(&model).Error, "subscription", MsgAlreadySubscribed)
}

// FindByKey returns the subscription matching the exact triple.
func (r *GormSubscriptionRepository) FindByKey(ctx context.Context, key subDomain.Key) (*subDomain.Subscription, error) {
	var model SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND team_id = ? AND league_id = ?", key.UserID, key.TeamID, key.LeagueID).
		First(&model).Error; err != nil {
		return nil, classify(err, "subscription", "")
	}
	return toSubDomain(&model), nil
}

// FindByTeamLeague returns subscriptions for a team within a league.
func (r *GormSubscriptionRepository) FindByTeamLeague(ctx context.Context, teamID, leagueID uuid.UUID, activeOnly bool) ([]*subDomain.Subscription, error) {
	q := r.db.WithContext(ctx).Where("team_id = ? AND league_id = ?", teamID, leagueID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	return r.find(q)
}

// FindByUserID returns every subscription of a user.
func (r *GormSubscriptionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*subDomain.Subscription, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *GormSubscriptionRepository) find(q *gorm.DB) ([]*subDomain.Subscription, error) {
	var models []SubscriptionModel
	if err := q.Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, classify(err, "subscription", "")
	}

	subs := make([]*subDomain.Subscription, len(models))
	for i := range models {
		subs[i] = toSubDomain(&models[i])
	}
	return subs, nil
}

func toSubModel(s *subDomain.Subscription) SubscriptionModel {
	return SubscriptionModel{
		ID: s.ID(), UserID: s.UserID(), TeamID: s.TeamID(), LeagueID: s.LeagueID(),
		Active: s.Active(), CreatedAt: s.CreatedAt(), UpdatedAt: s.UpdatedAt(),
	}
}

func toSubDomain(m *SubscriptionModel) *subDomain.Subscription {
	return subDomain.Reconstruct(m.ID, m.UserID, m.TeamID, m.LeagueID, m.Active, m.CreatedAt, m.UpdatedAt)
}
