package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type NodeStatus string

const (
	NodeStatusDraft     NodeStatus = "draft"
	NodeStatusPublished NodeStatus = "published"
	NodeStatusArchived  NodeStatus = "archived"
)

func (s NodeStatus) Valid() bool {
	switch s {
	case NodeStatusDraft, NodeStatusPublished, NodeStatusArchived:
		return true
	}
	return false
}

// Node is a content entity belonging to one domain and one node type. Slug is
// globally unique across domains. PublishedAt is stamped only on the
// transition to published.
type Node struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string            `gorm:"size:500;not null" json:"title"`
	Slug         string            `gorm:"size:500;uniqueIndex;not null" json:"slug"`
	Excerpt      *string           `gorm:"type:text" json:"excerpt,omitempty"`
	CoverImage   *string           `gorm:"size:500" json:"cover_image,omitempty"`
	Content      datatypes.JSONMap `gorm:"type:jsonb" json:"content"`
	ContentHTML  *string           `gorm:"type:text" json:"content_html,omitempty"`
	ReadingTime  int               `gorm:"not null;default:0" json:"reading_time"`
	Translations datatypes.JSONMap `gorm:"type:jsonb" json:"translations"`
	Data         datatypes.JSONMap `gorm:"type:jsonb" json:"data"`
	Tags         pq.StringArray    `gorm:"type:text[]" json:"tags"`
	Status       NodeStatus        `gorm:"size:20;not null;default:draft" json:"status"`
	DomainID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"domain_id"`
	Domain       *Domain           `gorm:"foreignKey:DomainID;references:ID" json:"domain,omitempty"`
	TypeID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"type_id"`
	Type         *NodeType         `gorm:"foreignKey:TypeID;references:ID" json:"type,omitempty"`
	CreatorID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator      *User             `gorm:"foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	PublishedAt  *time.Time        `json:"published_at,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (Node) TableName() string { return "nodes" }

// DefaultNodeContent is the editor document shape stored when a node is
// created without content.
func DefaultNodeContent() datatypes.JSONMap {
	return datatypes.JSONMap{
		"blocks":  []interface{}{},
		"version": "2.28.0",
	}
}
