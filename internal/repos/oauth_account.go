package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
)

type OAuthAccountRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.OAuthAccount) error
	// GetByProviderUser looks an account up by its natural key and preloads
	// the owning user.
	GetByProviderUser(ctx context.Context, tx *gorm.DB, provider, providerUserID string) (*domain.OAuthAccount, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.OAuthAccount, error)
	Update(ctx context.Context, tx *gorm.DB, row *domain.OAuthAccount) error
}

type oauthAccountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOAuthAccountRepo(db *gorm.DB, baseLog *logger.Logger) OAuthAccountRepo {
	return &oauthAccountRepo{db: db, log: baseLog.With("repo", "OAuthAccountRepo")}
}

func (r *oauthAccountRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.OAuthAccount) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *oauthAccountRepo) GetByProviderUser(ctx context.Context, tx *gorm.DB, provider, providerUserID string) (*domain.OAuthAccount, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if provider == "" || providerUserID == "" {
		return nil, nil
	}
	var out []*domain.OAuthAccount
	if err := t.WithContext(ctx).
		Preload("User").
		Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *oauthAccountRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.OAuthAccount, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.OAuthAccount
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *oauthAccountRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.OAuthAccount) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil
	}
	return t.WithContext(ctx).Save(row).Error
}
