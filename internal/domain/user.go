package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type User struct {
	ID              uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email           string            `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username        string            `gorm:"size:100;not null" json:"username"`
	Password        *string           `gorm:"size:255" json:"-"`
	FirstName       *string           `gorm:"size:100" json:"first_name,omitempty"`
	LastName        *string           `gorm:"size:100" json:"last_name,omitempty"`
	DisplayName     *string           `gorm:"size:200" json:"display_name,omitempty"`
	AvatarURL       *string           `gorm:"size:500" json:"avatar_url,omitempty"`
	Language        string            `gorm:"size:10;not null;default:en" json:"language"`
	IsActive        bool              `gorm:"not null;default:true" json:"is_active"`
	IsEmailVerified bool              `gorm:"not null;default:false" json:"is_email_verified"`
	Roles           pq.StringArray    `gorm:"type:text[];not null;default:'{user}'" json:"roles"`
	Metadata        datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	LastLoginAt     *time.Time        `json:"last_login_at,omitempty"`
	CreatedAt       time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// PublicName is what goes into JWT claims and creator summaries.
func (u *User) PublicName() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.Username
}
