package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NodeType describes the allowed shape of nodes within one domain. Schema is
// an opaque JSON document describing custom fields; it is validated only
// structurally at the boundary.
type NodeType struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	Slug         string            `gorm:"size:255;not null;uniqueIndex:uq_node_types_domain_slug" json:"slug"`
	Description  *string           `gorm:"type:text" json:"description,omitempty"`
	Translations datatypes.JSONMap `gorm:"type:jsonb" json:"translations"`
	Icon         *string           `gorm:"size:100" json:"icon,omitempty"`
	Color        string            `gorm:"size:20;not null;default:#1890ff" json:"color"`
	Schema       datatypes.JSONMap `gorm:"type:jsonb" json:"schema"`
	Order        int               `gorm:"column:order;not null;default:0" json:"order"`
	DomainID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uq_node_types_domain_slug;index" json:"domain_id"`
	Domain       *Domain           `gorm:"foreignKey:DomainID;references:ID" json:"domain,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (NodeType) TableName() string { return "node_types" }
