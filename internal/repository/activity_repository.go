package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lgu-benefits-api/internal/models"
)

// ActivityRepository writes the audit trail.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository constructs the repository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Record inserts one activity log entry.
func (r *ActivityRepository) Record(ctx context.Context, log *models.ActivityLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	changes := "{}"
	if len(log.Changes) > 0 {
		changes = string(log.Changes)
	}
	const query = `INSERT INTO activity_logs (id, actor_id, actor_name, action, entity_type, entity_id, entity_name, changes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.ActorID,
		log.ActorName,
		log.Action,
		log.EntityType,
		log.EntityID,
		log.EntityName,
		changes,
		log.CreatedAt,
	); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}
