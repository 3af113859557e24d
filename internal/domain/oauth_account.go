package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type OAuthAccount struct {
	ID               uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	User             *User             `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Provider         string            `gorm:"size:50;not null;uniqueIndex:uq_oauth_provider_user" json:"provider"`
	ProviderUserID   string            `gorm:"size:255;not null;uniqueIndex:uq_oauth_provider_user" json:"provider_user_id"`
	ProviderEmail    *string           `gorm:"size:255" json:"provider_email,omitempty"`
	ProviderUsername *string           `gorm:"size:255" json:"provider_username,omitempty"`
	DisplayName      *string           `gorm:"size:200" json:"display_name,omitempty"`
	AvatarURL        *string           `gorm:"size:500" json:"avatar_url,omitempty"`
	AccessToken      *string           `gorm:"type:text" json:"-"`
	RefreshToken     *string           `gorm:"type:text" json:"-"`
	TokenExpiresAt   *time.Time        `json:"token_expires_at,omitempty"`
	Scopes           pq.StringArray    `gorm:"type:text[]" json:"scopes,omitempty"`
	RawData          datatypes.JSONMap `gorm:"type:jsonb" json:"raw_data,omitempty"`
	LastUsedAt       time.Time         `gorm:"not null;default:now()" json:"last_used_at"`
	CreatedAt        time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (OAuthAccount) TableName() string { return "oauth_accounts" }
