package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/lgu-benefits-api/internal/models"
)

// ErrDuplicatePending is returned when a pending voucher already exists for
// the benefit/person pair.
var ErrDuplicatePending = errors.New("pending voucher already exists")

const pgUniqueViolation = "23505"

// MaxVoucherListLimit caps one page of a voucher listing.
const MaxVoucherListLimit = 500

const defaultVoucherListLimit = 100

const voucherDetailSelect = `SELECT v.id, v.benefit_id, v.person_id, v.status, v.provided_by_id, v.provided_at,
       v.released_by_id, v.released_at, v.notes, v.created_at,
       COALESCE(b.name, '') AS benefit_name,
       COALESCE(p.first_name || ' ' || p.last_name, '') AS person_name,
       COALESCE(pu.full_name, '') AS provider_name,
       COALESCE(ru.full_name, '') AS releaser_name
FROM vouchers v
LEFT JOIN benefits b ON b.id = v.benefit_id
LEFT JOIN people p ON p.id = v.person_id
LEFT JOIN users pu ON pu.id = v.provided_by_id
LEFT JOIN users ru ON ru.id = v.released_by_id`

// VoucherRepository persists vouchers and serves the read projections.
type VoucherRepository struct {
	db *sqlx.DB
}

// NewVoucherRepository constructs the repository.
func NewVoucherRepository(db *sqlx.DB) *VoucherRepository {
	return &VoucherRepository{db: db}
}

// Create inserts a pending voucher unless one is already pending for the same
// benefit and person. The NOT EXISTS guard and the partial unique index
// vouchers_one_pending_idx together make the check atomic.
func (r *VoucherRepository) Create(ctx context.Context, voucher *models.Voucher) error {
	if voucher.ID == "" {
		voucher.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if voucher.ProvidedAt.IsZero() {
		voucher.ProvidedAt = now
	}
	if voucher.CreatedAt.IsZero() {
		voucher.CreatedAt = voucher.ProvidedAt
	}
	voucher.Status = models.VoucherStatusPending

	const query = `INSERT INTO vouchers (id, benefit_id, person_id, status, provided_by_id, provided_at, notes, created_at)
SELECT $1::uuid, $2::uuid, $3::uuid, 'pending', $4::uuid, $5::timestamptz, $6::text, $7::timestamptz
WHERE NOT EXISTS (
	SELECT 1 FROM vouchers WHERE benefit_id = $2::uuid AND person_id = $3::uuid AND status = 'pending'
)`
	result, err := r.db.ExecContext(ctx, query,
		voucher.ID,
		voucher.BenefitID,
		voucher.PersonID,
		voucher.ProvidedByID,
		voucher.ProvidedAt,
		voucher.Notes,
		voucher.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return ErrDuplicatePending
		}
		return fmt.Errorf("create voucher: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check created voucher rows: %w", err)
	}
	if rows == 0 {
		return ErrDuplicatePending
	}
	return nil
}

// GetByID fetches a voucher with display names.
func (r *VoucherRepository) GetByID(ctx context.Context, id string) (*models.VoucherDetail, error) {
	if !validIDs(id) {
		return nil, sql.ErrNoRows
	}
	query := voucherDetailSelect + ` WHERE v.id = $1`
	var voucher models.VoucherDetail
	if err := r.db.GetContext(ctx, &voucher, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get voucher: %w", err)
	}
	return &voucher, nil
}

// FindPending returns the pending voucher for the pair or sql.ErrNoRows.
func (r *VoucherRepository) FindPending(ctx context.Context, benefitID, personID string) (*models.VoucherDetail, error) {
	if !validIDs(benefitID, personID) {
		return nil, sql.ErrNoRows
	}
	query := voucherDetailSelect + ` WHERE v.benefit_id = $1 AND v.person_id = $2 AND v.status = 'pending'
ORDER BY v.provided_at DESC LIMIT 1`
	var voucher models.VoucherDetail
	if err := r.db.GetContext(ctx, &voucher, query, benefitID, personID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find pending voucher: %w", err)
	}
	return &voucher, nil
}

// HasPending reports whether a pending voucher exists for the pair.
func (r *VoucherRepository) HasPending(ctx context.Context, benefitID, personID string) (bool, error) {
	if !validIDs(benefitID, personID) {
		return false, nil
	}
	const query = `SELECT EXISTS (SELECT 1 FROM vouchers WHERE benefit_id = $1 AND person_id = $2 AND status = 'pending')`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, benefitID, personID); err != nil {
		return false, fmt.Errorf("check pending voucher: %w", err)
	}
	return exists, nil
}

// MarkReleased moves a pending voucher to released. It returns sql.ErrNoRows
// when the voucher is no longer pending or the releaser is its provider.
func (r *VoucherRepository) MarkReleased(ctx context.Context, id, releaserID string, releasedAt time.Time) error {
	if !validIDs(id, releaserID) {
		return sql.ErrNoRows
	}
	const query = `UPDATE vouchers SET status = 'released', released_by_id = $2, released_at = $3
WHERE id = $1 AND status = 'pending' AND provided_by_id <> $2`
	result, err := r.db.ExecContext(ctx, query, id, releaserID, releasedAt)
	if err != nil {
		return fmt.Errorf("release voucher: %w", err)
	}
	return expectOneRow(result, "release voucher")
}

// MarkCancelled moves a pending voucher to cancelled.
func (r *VoucherRepository) MarkCancelled(ctx context.Context, id string) error {
	if !validIDs(id) {
		return sql.ErrNoRows
	}
	const query = `UPDATE vouchers SET status = 'cancelled' WHERE id = $1 AND status = 'pending'`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("cancel voucher: %w", err)
	}
	return expectOneRow(result, "cancel voucher")
}

// List returns vouchers matching the filter, newest first.
func (r *VoucherRepository) List(ctx context.Context, filter models.VoucherFilter) ([]models.VoucherDetail, error) {
	if !validOptionalIDs(filter.BenefitID, filter.PersonID, filter.ProvidedByID, filter.ReleasedByID, filter.ReleaserUserID) {
		return []models.VoucherDetail{}, nil
	}
	builder := strings.Builder{}
	args := make([]interface{}, 0, 6)
	builder.WriteString(voucherDetailSelect)

	conditions := make([]string, 0, 5)
	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, status := range filter.Status {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conditions = append(conditions, fmt.Sprintf("v.status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.BenefitID != "" {
		args = append(args, filter.BenefitID)
		conditions = append(conditions, fmt.Sprintf("v.benefit_id = $%d", len(args)))
	}
	if filter.PersonID != "" {
		args = append(args, filter.PersonID)
		conditions = append(conditions, fmt.Sprintf("v.person_id = $%d", len(args)))
	}
	if filter.ProvidedByID != "" {
		args = append(args, filter.ProvidedByID)
		conditions = append(conditions, fmt.Sprintf("v.provided_by_id = $%d", len(args)))
	}
	if filter.ReleasedByID != "" {
		args = append(args, filter.ReleasedByID)
		conditions = append(conditions, fmt.Sprintf("v.released_by_id = $%d", len(args)))
	}
	if filter.ReleaserUserID != "" {
		args = append(args, filter.ReleaserUserID)
		conditions = append(conditions, fmt.Sprintf(
			"v.benefit_id IN (SELECT ba.benefit_id FROM benefit_assignments ba WHERE ba.user_id = $%d AND ba.role = 'releaser')",
			len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	switch filter.OrderBy {
	case models.OrderByReleasedAt:
		builder.WriteString(" ORDER BY v.released_at DESC NULLS LAST, v.provided_at DESC")
	default:
		builder.WriteString(" ORDER BY v.provided_at DESC")
	}

	limit := filter.Limit
	switch {
	case limit <= 0:
		limit = defaultVoucherListLimit
	case limit > MaxVoucherListLimit:
		limit = MaxVoucherListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	var vouchers []models.VoucherDetail
	if err := r.db.SelectContext(ctx, &vouchers, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list vouchers: %w", err)
	}
	return vouchers, nil
}

// CountByStatus aggregates a benefit's vouchers by status.
func (r *VoucherRepository) CountByStatus(ctx context.Context, benefitID string) (*models.VoucherStats, error) {
	if !validIDs(benefitID) {
		return &models.VoucherStats{BenefitID: benefitID}, nil
	}
	const query = `SELECT status, COUNT(*) AS total FROM vouchers WHERE benefit_id = $1 GROUP BY status`
	var rows []struct {
		Status models.VoucherStatus `db:"status"`
		Total  int                  `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, benefitID); err != nil {
		return nil, fmt.Errorf("count vouchers by status: %w", err)
	}
	stats := &models.VoucherStats{BenefitID: benefitID}
	for _, row := range rows {
		switch row.Status {
		case models.VoucherStatusPending:
			stats.Pending = row.Total
		case models.VoucherStatusReleased:
			stats.Released = row.Total
		case models.VoucherStatusCancelled:
			stats.Cancelled = row.Total
		}
		stats.Total += row.Total
	}
	return stats, nil
}

// validIDs reports whether every id parses as a UUID. Every key column is a
// UUID, so anything else cannot match a row and would only make Postgres
// reject the query.
func validIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}

// validOptionalIDs is validIDs for filters, where an empty id means unset.
func validOptionalIDs(ids ...string) bool {
	for _, id := range ids {
		if id != "" && !validIDs(id) {
			return false
		}
	}
	return true
}

func expectOneRow(result sql.Result, op string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check %s rows: %w", op, err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
