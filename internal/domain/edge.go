package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Edge is a directed relationship between two nodes, classified by an edge
// type. The (source, target, type) triple is unique; self-loops are rejected
// before the row ever reaches the store.
type Edge struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SourceID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uq_edges_source_target_type;index" json:"source_id"`
	Source      *Node             `gorm:"foreignKey:SourceID;references:ID" json:"source,omitempty"`
	TargetID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uq_edges_source_target_type;index" json:"target_id"`
	Target      *Node             `gorm:"foreignKey:TargetID;references:ID" json:"target,omitempty"`
	TypeID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uq_edges_source_target_type" json:"type_id"`
	Type        *EdgeType         `gorm:"foreignKey:TypeID;references:ID" json:"type,omitempty"`
	Description *string           `gorm:"type:text" json:"description,omitempty"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt   time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (Edge) TableName() string { return "edges" }
