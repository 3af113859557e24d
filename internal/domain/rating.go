package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MetricType string

const (
	MetricConsistency  MetricType = "consistency"
	MetricCoherence    MetricType = "coherence"
	MetricConnectivity MetricType = "connectivity"
	MetricOverall      MetricType = "overall"
)

func (m MetricType) Valid() bool {
	switch m {
	case MetricConsistency, MetricCoherence, MetricConnectivity, MetricOverall:
		return true
	}
	return false
}

// Rating stores a computed score for one node and one metric. There is no
// uniqueness across (node, metric): historical scores accumulate. Details is
// the computation provenance bag (edge counts, algorithm tag, factor weights).
type Rating struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	NodeID     uuid.UUID         `gorm:"type:uuid;not null;index:idx_ratings_node_metric" json:"node_id"`
	Node       *Node             `gorm:"foreignKey:NodeID;references:ID" json:"node,omitempty"`
	MetricType MetricType        `gorm:"size:20;not null;index:idx_ratings_node_metric" json:"metric_type"`
	Score      float64           `gorm:"not null" json:"score"`
	Details    datatypes.JSONMap `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (Rating) TableName() string { return "ratings" }
