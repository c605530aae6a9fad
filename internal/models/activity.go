package models

import (
	"encoding/json"
	"time"
)

// ActivityAction enumerates mutating operations written to the activity log.
type ActivityAction string

const (
	ActivityCreate     ActivityAction = "create"
	ActivityUpdate     ActivityAction = "update"
	ActivityDelete     ActivityAction = "delete"
	ActivityDeactivate ActivityAction = "deactivate"
	ActivityRelease    ActivityAction = "release"
	ActivityCancel     ActivityAction = "cancel"
)

// Entity types recorded in the activity log.
const (
	EntityVoucher = "voucher"
	EntityBenefit = "benefit"
)

// ActivityLog is one audit trail record.
type ActivityLog struct {
	ID         string          `db:"id" json:"id"`
	ActorID    string          `db:"actor_id" json:"actorId"`
	ActorName  string          `db:"actor_name" json:"actorName"`
	Action     ActivityAction  `db:"action" json:"action"`
	EntityType string          `db:"entity_type" json:"entityType"`
	EntityID   string          `db:"entity_id" json:"entityId"`
	EntityName string          `db:"entity_name" json:"entityName"`
	Changes    json.RawMessage `db:"changes" json:"changes,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
}
