package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lgu-benefits-api/internal/models"
)

// BenefitRepository persists benefits and their provider/releaser assignments.
type BenefitRepository struct {
	db *sqlx.DB
}

// NewBenefitRepository constructs the repository.
func NewBenefitRepository(db *sqlx.DB) *BenefitRepository {
	return &BenefitRepository{db: db}
}

// GetByID loads a benefit together with its assignment lists.
func (r *BenefitRepository) GetByID(ctx context.Context, id string) (*models.Benefit, error) {
	if !validIDs(id) {
		return nil, sql.ErrNoRows
	}
	const query = `SELECT id, department_id, name, description, value, quantity, is_active, eligibility, created_at, updated_at
FROM benefits WHERE id = $1`
	var benefit models.Benefit
	if err := r.db.GetContext(ctx, &benefit, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get benefit: %w", err)
	}

	assignments, err := r.ListAssignments(ctx, id)
	if err != nil {
		return nil, err
	}
	benefit.Providers = []string{}
	benefit.Releasers = []string{}
	for _, a := range assignments {
		switch a.Role {
		case models.AssignmentProvider:
			benefit.Providers = append(benefit.Providers, a.UserID)
		case models.AssignmentReleaser:
			benefit.Releasers = append(benefit.Releasers, a.UserID)
		}
	}
	return &benefit, nil
}

// ListAssignments returns every assignment row of a benefit.
func (r *BenefitRepository) ListAssignments(ctx context.Context, benefitID string) ([]models.BenefitAssignment, error) {
	if !validIDs(benefitID) {
		return []models.BenefitAssignment{}, nil
	}
	const query = `SELECT benefit_id, user_id, role, created_at FROM benefit_assignments WHERE benefit_id = $1 ORDER BY role, created_at`
	var assignments []models.BenefitAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, benefitID); err != nil {
		return nil, fmt.Errorf("list benefit assignments: %w", err)
	}
	return assignments, nil
}

// FindAssignment returns the matching assignment or sql.ErrNoRows.
func (r *BenefitRepository) FindAssignment(ctx context.Context, benefitID, userID string, role models.AssignmentRole) (*models.BenefitAssignment, error) {
	if !validIDs(benefitID, userID) {
		return nil, sql.ErrNoRows
	}
	const query = `SELECT benefit_id, user_id, role, created_at FROM benefit_assignments
WHERE benefit_id = $1 AND user_id = $2 AND role = $3 LIMIT 1`
	var assignment models.BenefitAssignment
	if err := r.db.GetContext(ctx, &assignment, query, benefitID, userID, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find benefit assignment: %w", err)
	}
	return &assignment, nil
}

// Create inserts the benefit and its assignments in one transaction.
func (r *BenefitRepository) Create(ctx context.Context, benefit *models.Benefit) (err error) {
	if benefit.ID == "" {
		benefit.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	benefit.CreatedAt = now
	benefit.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin benefit transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO benefits (id, department_id, name, description, value, quantity, is_active, eligibility, created_at, updated_at)
VALUES (:id, :department_id, :name, :description, :value, :quantity, :is_active, :eligibility, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, query, benefit); err != nil {
		return fmt.Errorf("create benefit: %w", err)
	}
	if err = replaceAssignments(ctx, tx, benefit.ID, benefit.Providers, benefit.Releasers, now); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit benefit: %w", err)
	}
	return nil
}

// Update writes mutable fields and replaces the assignments atomically so the
// benefit is never observed without providers or releasers mid-update.
func (r *BenefitRepository) Update(ctx context.Context, benefit *models.Benefit) (err error) {
	if !validIDs(benefit.ID) {
		return sql.ErrNoRows
	}
	now := time.Now().UTC()
	benefit.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin benefit transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `UPDATE benefits SET name = :name, description = :description, value = :value, quantity = :quantity,
is_active = :is_active, eligibility = :eligibility, updated_at = :updated_at WHERE id = :id`
	result, err := tx.NamedExecContext(ctx, query, benefit)
	if err != nil {
		return fmt.Errorf("update benefit: %w", err)
	}
	if err = expectOneRow(result, "update benefit"); err != nil {
		return err
	}
	if err = replaceAssignments(ctx, tx, benefit.ID, benefit.Providers, benefit.Releasers, now); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit benefit: %w", err)
	}
	return nil
}

// SetActive toggles the benefit's active flag.
func (r *BenefitRepository) SetActive(ctx context.Context, id string, active bool) error {
	if !validIDs(id) {
		return sql.ErrNoRows
	}
	const query = `UPDATE benefits SET is_active = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set benefit active: %w", err)
	}
	return expectOneRow(result, "set benefit active")
}

func replaceAssignments(ctx context.Context, tx *sqlx.Tx, benefitID string, providers, releasers []string, now time.Time) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM benefit_assignments WHERE benefit_id = $1`, benefitID); err != nil {
		return fmt.Errorf("clear benefit assignments: %w", err)
	}
	rows := make([]models.BenefitAssignment, 0, len(providers)+len(releasers))
	for _, userID := range providers {
		rows = append(rows, models.BenefitAssignment{BenefitID: benefitID, UserID: userID, Role: models.AssignmentProvider, CreatedAt: now})
	}
	for _, userID := range releasers {
		rows = append(rows, models.BenefitAssignment{BenefitID: benefitID, UserID: userID, Role: models.AssignmentReleaser, CreatedAt: now})
	}
	if len(rows) == 0 {
		return nil
	}
	const insert = `INSERT INTO benefit_assignments (benefit_id, user_id, role, created_at)
VALUES (:benefit_id, :user_id, :role, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insert, rows); err != nil {
		return fmt.Errorf("insert benefit assignments: %w", err)
	}
	return nil
}
