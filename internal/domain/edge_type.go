package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SemanticType classifies what an edge of this type means. The sign of the
// edge type's weight encodes relationship polarity (negative for contradicts).
type SemanticType string

const (
	SemanticSupports    SemanticType = "supports"
	SemanticContradicts SemanticType = "contradicts"
	SemanticDerivesFrom SemanticType = "derives_from"
	SemanticPartOf      SemanticType = "part_of"
	SemanticRequires    SemanticType = "requires"
	SemanticCustom      SemanticType = "custom"
)

func (s SemanticType) Valid() bool {
	switch s {
	case SemanticSupports, SemanticContradicts, SemanticDerivesFrom,
		SemanticPartOf, SemanticRequires, SemanticCustom:
		return true
	}
	return false
}

type EdgeType struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	Slug         string            `gorm:"size:255;not null;uniqueIndex:uq_edge_types_domain_slug" json:"slug"`
	Description  *string           `gorm:"type:text" json:"description,omitempty"`
	Translations datatypes.JSONMap `gorm:"type:jsonb" json:"translations"`
	SemanticType SemanticType      `gorm:"size:50;not null;default:custom" json:"semantic_type"`
	Icon         *string           `gorm:"size:100" json:"icon,omitempty"`
	Color        string            `gorm:"size:20;not null;default:#52c41a" json:"color"`
	Weight       float64           `gorm:"not null;default:0" json:"weight"`
	IsDirected   bool              `gorm:"not null;default:true" json:"is_directed"`
	DomainID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uq_edge_types_domain_slug;index" json:"domain_id"`
	Domain       *Domain           `gorm:"foreignKey:DomainID;references:ID" json:"domain,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (EdgeType) TableName() string { return "edge_types" }
