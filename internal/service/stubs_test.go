package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/lgu-benefits-api/internal/models"
	"github.com/noah-isme/lgu-benefits-api/internal/repository"
)

type assignmentStoreStub struct {
	rows map[string]bool
	err  error
}

func newAssignmentStoreStub() *assignmentStoreStub {
	return &assignmentStoreStub{rows: make(map[string]bool)}
}

func (s *assignmentStoreStub) grant(benefitID, userID string, role models.AssignmentRole) {
	s.rows[benefitID+"|"+userID+"|"+string(role)] = true
}

func (s *assignmentStoreStub) FindAssignment(ctx context.Context, benefitID, userID string, role models.AssignmentRole) (*models.BenefitAssignment, error) {
	if s.err != nil {
		return nil, s.err
	}
	if !s.rows[benefitID+"|"+userID+"|"+string(role)] {
		return nil, sql.ErrNoRows
	}
	return &models.BenefitAssignment{BenefitID: benefitID, UserID: userID, Role: role}, nil
}

type benefitStoreStub struct {
	benefits  map[string]*models.Benefit
	updateErr error
}

func newBenefitStoreStub(benefits ...models.Benefit) *benefitStoreStub {
	stub := &benefitStoreStub{benefits: make(map[string]*models.Benefit)}
	for i := range benefits {
		b := benefits[i]
		stub.benefits[b.ID] = &b
	}
	return stub
}

func (s *benefitStoreStub) GetByID(ctx context.Context, id string) (*models.Benefit, error) {
	b, ok := s.benefits[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *b
	copy.Providers = append([]string{}, b.Providers...)
	copy.Releasers = append([]string{}, b.Releasers...)
	return &copy, nil
}

func (s *benefitStoreStub) Create(ctx context.Context, benefit *models.Benefit) error {
	if benefit.ID == "" {
		benefit.ID = "benefit-new"
	}
	copy := *benefit
	s.benefits[benefit.ID] = &copy
	return nil
}

func (s *benefitStoreStub) Update(ctx context.Context, benefit *models.Benefit) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if _, ok := s.benefits[benefit.ID]; !ok {
		return sql.ErrNoRows
	}
	copy := *benefit
	s.benefits[benefit.ID] = &copy
	return nil
}

func (s *benefitStoreStub) SetActive(ctx context.Context, id string, active bool) error {
	b, ok := s.benefits[id]
	if !ok {
		return sql.ErrNoRows
	}
	b.Active = active
	return nil
}

type personStoreStub struct {
	people  map[string]models.Person
	records map[string][]models.IdentificationRecord
}

func newPersonStoreStub(people ...models.Person) *personStoreStub {
	stub := &personStoreStub{people: make(map[string]models.Person), records: make(map[string][]models.IdentificationRecord)}
	for _, p := range people {
		stub.people[p.ID] = p
	}
	return stub
}

func (s *personStoreStub) GetByID(ctx context.Context, id string) (*models.Person, error) {
	p, ok := s.people[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (s *personStoreStub) ListIdentifications(ctx context.Context, personID string) ([]models.IdentificationRecord, error) {
	return s.records[personID], nil
}

// voucherStoreStub mimics the guarded SQL updates of the voucher repository.
type voucherStoreStub struct {
	mu        sync.Mutex
	vouchers  map[string]*models.VoucherDetail
	seq       int
	lastQuery models.VoucherFilter
	// skipPendingCheck lets a test simulate a lost race on insert.
	skipPendingCheck bool
}

func newVoucherStoreStub() *voucherStoreStub {
	return &voucherStoreStub{vouchers: make(map[string]*models.VoucherDetail)}
}

func (s *voucherStoreStub) Create(ctx context.Context, voucher *models.Voucher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vouchers {
		if v.BenefitID == voucher.BenefitID && v.PersonID == voucher.PersonID && v.Status == models.VoucherStatusPending {
			return repository.ErrDuplicatePending
		}
	}
	s.seq++
	if voucher.ID == "" {
		voucher.ID = fmt.Sprintf("voucher-%d", s.seq)
	}
	voucher.Status = models.VoucherStatusPending
	s.vouchers[voucher.ID] = &models.VoucherDetail{Voucher: *voucher}
	return nil
}

func (s *voucherStoreStub) GetByID(ctx context.Context, id string) (*models.VoucherDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vouchers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *v
	return &copy, nil
}

func (s *voucherStoreStub) FindPending(ctx context.Context, benefitID, personID string) (*models.VoucherDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vouchers {
		if v.BenefitID == benefitID && v.PersonID == personID && v.Status == models.VoucherStatusPending {
			copy := *v
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *voucherStoreStub) HasPending(ctx context.Context, benefitID, personID string) (bool, error) {
	if s.skipPendingCheck {
		return false, nil
	}
	_, err := s.FindPending(ctx, benefitID, personID)
	return err == nil, nil
}

func (s *voucherStoreStub) MarkReleased(ctx context.Context, id, releaserID string, releasedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vouchers[id]
	if !ok || v.Status != models.VoucherStatusPending || v.ProvidedByID == releaserID {
		return sql.ErrNoRows
	}
	v.Status = models.VoucherStatusReleased
	v.ReleasedByID = &releaserID
	v.ReleasedAt = &releasedAt
	return nil
}

func (s *voucherStoreStub) MarkCancelled(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vouchers[id]
	if !ok || v.Status != models.VoucherStatusPending {
		return sql.ErrNoRows
	}
	v.Status = models.VoucherStatusCancelled
	return nil
}

func (s *voucherStoreStub) List(ctx context.Context, filter models.VoucherFilter) ([]models.VoucherDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuery = filter
	var out []models.VoucherDetail
	for _, v := range s.vouchers {
		if filter.BenefitID != "" && v.BenefitID != filter.BenefitID {
			continue
		}
		if filter.PersonID != "" && v.PersonID != filter.PersonID {
			continue
		}
		if filter.ProvidedByID != "" && v.ProvidedByID != filter.ProvidedByID {
			continue
		}
		if filter.ReleasedByID != "" && (v.ReleasedByID == nil || *v.ReleasedByID != filter.ReleasedByID) {
			continue
		}
		if len(filter.Status) > 0 && !hasStatus(filter.Status, v.Status) {
			continue
		}
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Offset >= len(out) {
		return nil, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *voucherStoreStub) CountByStatus(ctx context.Context, benefitID string) (*models.VoucherStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &models.VoucherStats{BenefitID: benefitID}
	for _, v := range s.vouchers {
		if v.BenefitID != benefitID {
			continue
		}
		switch v.Status {
		case models.VoucherStatusPending:
			stats.Pending++
		case models.VoucherStatusReleased:
			stats.Released++
		case models.VoucherStatusCancelled:
			stats.Cancelled++
		}
		stats.Total++
	}
	return stats, nil
}

func hasStatus(list []models.VoucherStatus, status models.VoucherStatus) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

type activityStub struct {
	mu   sync.Mutex
	logs []models.ActivityLog
	err  error
}

func (s *activityStub) Record(ctx context.Context, log *models.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.logs = append(s.logs, *log)
	return nil
}

func (s *activityStub) last() models.ActivityLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logs[len(s.logs)-1]
}
