package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lgu-benefits-api/internal/models"
)

// PersonRepository reads beneficiary records for eligibility checks.
type PersonRepository struct {
	db *sqlx.DB
}

// NewPersonRepository constructs the repository.
func NewPersonRepository(db *sqlx.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// GetByID returns a person or sql.ErrNoRows.
func (r *PersonRepository) GetByID(ctx context.Context, id string) (*models.Person, error) {
	if !validIDs(id) {
		return nil, sql.ErrNoRows
	}
	const query = `SELECT id, first_name, middle_name, last_name, barangay, purok, street, birthdate, gender,
       monthly_income, residency_status
FROM people WHERE id = $1`
	var person models.Person
	if err := r.db.GetContext(ctx, &person, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get person: %w", err)
	}
	return &person, nil
}

// ListIdentifications returns the person's government-service records.
func (r *PersonRepository) ListIdentifications(ctx context.Context, personID string) ([]models.IdentificationRecord, error) {
	if !validIDs(personID) {
		return []models.IdentificationRecord{}, nil
	}
	const query = `SELECT person_id, category, registered, id_number, issue_date, expiry_date
FROM person_identifications WHERE person_id = $1`
	var records []models.IdentificationRecord
	if err := r.db.SelectContext(ctx, &records, query, personID); err != nil {
		return nil, fmt.Errorf("list person identifications: %w", err)
	}
	return records, nil
}
