package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Domain is a named, owned namespace partitioning node types, edge types and
// nodes. Deleting the creator cascades to the domain; deleting the domain
// cascades to everything inside it.
type Domain struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	Slug         string            `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description  *string           `gorm:"type:text" json:"description,omitempty"`
	Translations datatypes.JSONMap `gorm:"type:jsonb" json:"translations"`
	IsPublic     bool              `gorm:"not null;default:true" json:"is_public"`
	IsActive     bool              `gorm:"not null;default:true" json:"is_active"`
	Settings     datatypes.JSONMap `gorm:"type:jsonb" json:"settings"`
	CreatorID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator      *User             `gorm:"foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (Domain) TableName() string { return "domains" }
