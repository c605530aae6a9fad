package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/lgu-benefits-api/internal/dto"
	"github.com/noah-isme/lgu-benefits-api/internal/models"
	"github.com/noah-isme/lgu-benefits-api/internal/repository"
	appErrors "github.com/noah-isme/lgu-benefits-api/pkg/errors"
	"github.com/noah-isme/lgu-benefits-api/pkg/export"
)

const exportPageSize = 500

type voucherStore interface {
	Create(ctx context.Context, voucher *models.Voucher) error
	GetByID(ctx context.Context, id string) (*models.VoucherDetail, error)
	FindPending(ctx context.Context, benefitID, personID string) (*models.VoucherDetail, error)
	HasPending(ctx context.Context, benefitID, personID string) (bool, error)
	MarkReleased(ctx context.Context, id, releaserID string, releasedAt time.Time) error
	MarkCancelled(ctx context.Context, id string) error
	List(ctx context.Context, filter models.VoucherFilter) ([]models.VoucherDetail, error)
	CountByStatus(ctx context.Context, benefitID string) (*models.VoucherStats, error)
}

type benefitReader interface {
	GetByID(ctx context.Context, id string) (*models.Benefit, error)
}

type personReader interface {
	GetByID(ctx context.Context, id string) (*models.Person, error)
	ListIdentifications(ctx context.Context, personID string) ([]models.IdentificationRecord, error)
}

type activityRecorder interface {
	Record(ctx context.Context, log *models.ActivityLog) error
}

// VoucherService runs the voucher lifecycle: issue, release, cancel and the
// read projections built on the voucher store.
type VoucherService struct {
	vouchers  voucherStore
	benefits  benefitReader
	people    personReader
	auth      *AuthorizationService
	activity  activityRecorder
	validator *validator.Validate
	logger    *zap.Logger
	cache     *CacheService
	cacheTTL  time.Duration
	metrics   *MetricsService
	listLimit int
	location  *time.Location
	now       func() time.Time
}

// VoucherServiceOption configures the service.
type VoucherServiceOption func(*VoucherService)

// WithVoucherCache enables the per-benefit stats cache.
func WithVoucherCache(cache *CacheService, ttl time.Duration) VoucherServiceOption {
	return func(s *VoucherService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithVoucherMetrics records lifecycle metrics.
func WithVoucherMetrics(metrics *MetricsService) VoucherServiceOption {
	return func(s *VoucherService) {
		s.metrics = metrics
	}
}

// WithVoucherClock overrides the time source.
func WithVoucherClock(now func() time.Time) VoucherServiceOption {
	return func(s *VoucherService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithVoucherListLimit sets the default page size for listings, capped at
// repository.MaxVoucherListLimit.
func WithVoucherListLimit(limit int) VoucherServiceOption {
	return func(s *VoucherService) {
		if limit > 0 {
			s.listLimit = limit
		}
		if s.listLimit > repository.MaxVoucherListLimit {
			s.listLimit = repository.MaxVoucherListLimit
		}
	}
}

// WithVoucherLocation sets the office timezone that ages and registration
// expiries are evaluated in.
func WithVoucherLocation(loc *time.Location) VoucherServiceOption {
	return func(s *VoucherService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewVoucherService constructs the service with defaults.
func NewVoucherService(
	vouchers voucherStore,
	benefits benefitReader,
	people personReader,
	auth *AuthorizationService,
	activity activityRecorder,
	validate *validator.Validate,
	logger *zap.Logger,
	opts ...VoucherServiceOption,
) *VoucherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	svc := &VoucherService{
		vouchers:  vouchers,
		benefits:  benefits,
		people:    people,
		auth:      auth,
		activity:  activity,
		validator: validate,
		logger:    logger,
		listLimit: 100,
		location:  time.UTC,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// voucherSubject is everything creation and eligibility checks read.
type voucherSubject struct {
	benefit    *models.Benefit
	person     *models.Person
	categories []string
}

// Create issues a pending voucher for a person.
func (s *VoucherService) Create(ctx context.Context, actor models.Actor, req dto.CreateVoucherRequest) (*models.VoucherDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "benefitId and personId are required")
	}
	if err := s.auth.RequireProvider(ctx, actor, req.BenefitID); err != nil {
		return nil, s.reject("create", err)
	}

	now := s.now().In(s.location)
	subject, err := s.loadSubject(ctx, req.BenefitID, req.PersonID, now)
	if err != nil {
		return nil, err
	}
	if !subject.benefit.Active {
		return nil, s.reject("create", appErrors.ErrBenefitInactive)
	}

	var overridden []string
	if subject.benefit.Eligibility != nil {
		result := EvaluateEligibility(*subject.person, subject.categories, subject.benefit.Eligibility, now)
		switch {
		case result.Eligible:
			s.metrics.ObserveEligibility(EligibilityPassed)
		case req.OverrideEligibility:
			s.metrics.ObserveEligibility(EligibilityOverridden)
			overridden = result.Reasons
			s.logger.Info("eligibility overridden",
				zap.String("benefit_id", req.BenefitID),
				zap.String("person_id", req.PersonID),
				zap.String("actor_id", actor.ID),
				zap.Strings("reasons", result.Reasons))
		default:
			s.metrics.ObserveEligibility(EligibilityFailed)
			return nil, s.reject("create", appErrors.WithIssues(appErrors.ErrEligibilityFailed, result.Reasons))
		}
	}

	pending, err := s.vouchers.HasPending(ctx, req.BenefitID, req.PersonID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check pending vouchers")
	}
	if pending {
		return nil, s.reject("create", appErrors.ErrDuplicatePending)
	}

	voucher := models.Voucher{
		BenefitID:    req.BenefitID,
		PersonID:     req.PersonID,
		ProvidedByID: actor.ID,
		ProvidedAt:   now.UTC(),
		Notes:        trimmedOrNil(req.Notes),
		CreatedAt:    now.UTC(),
	}
	if err := s.vouchers.Create(ctx, &voucher); err != nil {
		if errors.Is(err, repository.ErrDuplicatePending) {
			return nil, s.reject("create", appErrors.ErrDuplicatePending)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create voucher")
	}

	snapshot := models.VoucherSnapshot{
		BenefitName:  subject.benefit.Name,
		PersonName:   subject.person.FullName(),
		ProviderName: actor.Name,
	}
	changes := map[string]interface{}{
		"benefitId":           voucher.BenefitID,
		"personId":            voucher.PersonID,
		"status":              voucher.Status,
		"overrideEligibility": req.OverrideEligibility,
	}
	if len(overridden) > 0 {
		changes["eligibilityIssues"] = overridden
	}
	s.emitAudit(ctx, actor, models.ActivityCreate, voucher.ID, snapshot, changes)
	s.afterTransition(ctx, voucher.BenefitID, voucher.Status)

	return &models.VoucherDetail{
		Voucher:      voucher,
		BenefitName:  snapshot.BenefitName,
		PersonName:   snapshot.PersonName,
		ProviderName: snapshot.ProviderName,
	}, nil
}

// Release confirms a pending voucher. The releaser must hold the releaser
// assignment and must not be the voucher's provider.
func (s *VoucherService) Release(ctx context.Context, actor models.Actor, voucherID string) (*models.VoucherDetail, error) {
	voucher, err := s.getVoucher(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status != models.VoucherStatusPending {
		return nil, s.reject("release", appErrors.ErrInvalidState)
	}
	if voucher.ProvidedByID == actor.ID {
		return nil, s.reject("release", appErrors.ErrSeparationOfDuties)
	}
	if err := s.auth.RequireReleaser(ctx, actor, voucher.BenefitID); err != nil {
		return nil, s.reject("release", err)
	}

	releasedAt := s.now().UTC()
	if err := s.vouchers.MarkReleased(ctx, voucher.ID, actor.ID, releasedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Lost a race with another transition.
			return nil, s.reject("release", appErrors.ErrInvalidState)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to release voucher")
	}

	voucher.Status = models.VoucherStatusReleased
	voucher.ReleasedByID = &actor.ID
	voucher.ReleasedAt = &releasedAt
	voucher.ReleaserName = actor.Name

	s.emitAudit(ctx, actor, models.ActivityRelease, voucher.ID, snapshotOf(voucher), map[string]interface{}{
		"status":       transition(models.VoucherStatusPending, models.VoucherStatusReleased),
		"releasedById": actor.ID,
		"releasedAt":   releasedAt,
	})
	s.afterTransition(ctx, voucher.BenefitID, voucher.Status)
	return voucher, nil
}

// Cancel withdraws a pending voucher. Allowed for the original provider and
// for administrators of the benefit's department.
func (s *VoucherService) Cancel(ctx context.Context, actor models.Actor, voucherID string) (*models.VoucherDetail, error) {
	voucher, err := s.getVoucher(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status != models.VoucherStatusPending {
		return nil, s.reject("cancel", appErrors.Clone(appErrors.ErrInvalidState, "Can only cancel pending vouchers"))
	}
	if err := s.authorizeCancel(ctx, actor, voucher); err != nil {
		return nil, s.reject("cancel", err)
	}

	if err := s.vouchers.MarkCancelled(ctx, voucher.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.reject("cancel", appErrors.Clone(appErrors.ErrInvalidState, "Can only cancel pending vouchers"))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel voucher")
	}
	voucher.Status = models.VoucherStatusCancelled

	s.emitAudit(ctx, actor, models.ActivityCancel, voucher.ID, snapshotOf(voucher), map[string]interface{}{
		"status": transition(models.VoucherStatusPending, models.VoucherStatusCancelled),
	})
	s.afterTransition(ctx, voucher.BenefitID, voucher.Status)
	return voucher, nil
}

// FindPendingForRelease returns the pending voucher the actor could release
// for the benefit and person.
func (s *VoucherService) FindPendingForRelease(ctx context.Context, actor models.Actor, benefitID, personID string) (*models.VoucherDetail, error) {
	if err := s.auth.RequireReleaser(ctx, actor, benefitID); err != nil {
		return nil, err
	}
	voucher, err := s.vouchers.FindPending(ctx, benefitID, personID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "No pending voucher found for this person")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to find pending voucher")
	}
	if voucher.ProvidedByID == actor.ID {
		return nil, appErrors.ErrSeparationOfDuties
	}
	return voucher, nil
}

// CheckEligibility previews the evaluator result for a provider before issuing.
func (s *VoucherService) CheckEligibility(ctx context.Context, actor models.Actor, benefitID string, req dto.EligibilityCheckRequest) (*dto.EligibilityCheckResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "personId is required")
	}
	if err := s.auth.RequireProvider(ctx, actor, benefitID); err != nil {
		return nil, err
	}
	now := s.now().In(s.location)
	subject, err := s.loadSubject(ctx, benefitID, req.PersonID, now)
	if err != nil {
		return nil, err
	}
	pending, err := s.vouchers.HasPending(ctx, benefitID, req.PersonID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check pending vouchers")
	}

	result := EvaluateEligibility(*subject.person, subject.categories, subject.benefit.Eligibility, now)
	return &dto.EligibilityCheckResponse{
		BenefitID:     benefitID,
		PersonID:      req.PersonID,
		Restricted:    subject.benefit.Eligibility != nil,
		Eligible:      result.Eligible,
		Reasons:       result.Reasons,
		HasPending:    pending,
		BenefitActive: subject.benefit.Active,
	}, nil
}

// PendingForReleaser lists pending vouchers of every benefit the actor
// releases, newest issued first.
func (s *VoucherService) PendingForReleaser(ctx context.Context, actor models.Actor, query dto.VoucherListQuery) ([]models.VoucherDetail, error) {
	return s.list(ctx, models.VoucherFilter{
		Status:         []models.VoucherStatus{models.VoucherStatusPending},
		ReleaserUserID: actor.ID,
		OrderBy:        models.OrderByProvidedAt,
	}, query)
}

// IssuedBy lists vouchers the actor provided, newest issued first.
func (s *VoucherService) IssuedBy(ctx context.Context, actor models.Actor, query dto.VoucherListQuery) ([]models.VoucherDetail, error) {
	return s.list(ctx, models.VoucherFilter{
		Status:       query.Status,
		ProvidedByID: actor.ID,
		OrderBy:      models.OrderByProvidedAt,
	}, query)
}

// ReleasedBy lists vouchers the actor released, newest released first.
// Vouchers whose benefit or person was removed keep empty display names.
func (s *VoucherService) ReleasedBy(ctx context.Context, actor models.Actor, query dto.VoucherListQuery) ([]models.VoucherDetail, error) {
	return s.list(ctx, models.VoucherFilter{
		ReleasedByID: actor.ID,
		OrderBy:      models.OrderByReleasedAt,
	}, query)
}

// ListForBenefit lists a benefit's vouchers for its administrators and
// assigned staff.
func (s *VoucherService) ListForBenefit(ctx context.Context, actor models.Actor, benefitID string, query dto.VoucherListQuery) ([]models.VoucherDetail, error) {
	benefit, err := s.getBenefit(ctx, benefitID)
	if err != nil {
		return nil, err
	}
	if err := s.requireBenefitAccess(ctx, actor, benefit); err != nil {
		return nil, err
	}
	return s.list(ctx, models.VoucherFilter{
		Status:    query.Status,
		BenefitID: benefitID,
		OrderBy:   models.OrderByProvidedAt,
	}, query)
}

// ListForPerson lists every voucher issued to a person.
func (s *VoucherService) ListForPerson(ctx context.Context, actor models.Actor, personID string, query dto.VoucherListQuery) ([]models.VoucherDetail, error) {
	if actor.ID == "" {
		return nil, appErrors.ErrUnauthenticated
	}
	if _, err := s.people.GetByID(ctx, personID); err != nil {
		return nil, lookupError(err, "Person not found", "failed to load person")
	}
	return s.list(ctx, models.VoucherFilter{
		Status:   query.Status,
		PersonID: personID,
		OrderBy:  models.OrderByProvidedAt,
	}, query)
}

// StatsForBenefit counts a benefit's vouchers by status. Administrators only.
func (s *VoucherService) StatsForBenefit(ctx context.Context, actor models.Actor, benefitID string) (*models.VoucherStats, error) {
	benefit, err := s.getBenefit(ctx, benefitID)
	if err != nil {
		return nil, err
	}
	if err := s.auth.RequireAdmin(actor, benefit.DepartmentID); err != nil {
		return nil, err
	}

	key := statsCacheKey(benefitID)
	var cached models.VoucherStats
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}
	stats, err := s.vouchers.CountByStatus(ctx, benefitID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count vouchers")
	}
	s.cache.Set(ctx, key, stats, s.cacheTTL)
	return stats, nil
}

// ExportForBenefit renders every voucher of a benefit as CSV. Administrators only.
func (s *VoucherService) ExportForBenefit(ctx context.Context, actor models.Actor, benefitID string) ([]byte, string, error) {
	benefit, err := s.getBenefit(ctx, benefitID)
	if err != nil {
		return nil, "", err
	}
	if err := s.auth.RequireAdmin(actor, benefit.DepartmentID); err != nil {
		return nil, "", err
	}

	table := export.Table{Columns: []string{
		"Voucher ID", "Person", "Status", "Provided By", "Provided At", "Released By", "Released At", "Notes",
	}}
	for offset := 0; ; offset += exportPageSize {
		page, err := s.vouchers.List(ctx, models.VoucherFilter{
			BenefitID: benefitID,
			OrderBy:   models.OrderByProvidedAt,
			Limit:     exportPageSize,
			Offset:    offset,
		})
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list vouchers")
		}
		for _, v := range page {
			table.AddRow(
				v.ID,
				v.PersonName,
				string(v.Status),
				v.ProviderName,
				v.ProvidedAt.Format(time.RFC3339),
				v.ReleaserName,
				formatOptionalTime(v.ReleasedAt),
				derefString(v.Notes),
			)
		}
		if len(page) < exportPageSize {
			break
		}
	}

	payload, err := export.RenderCSV(table)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	filename := fmt.Sprintf("vouchers-%s-%s.csv", benefitID, s.now().In(s.location).Format("20060102"))
	return payload, filename, nil
}

func (s *VoucherService) list(ctx context.Context, filter models.VoucherFilter, query dto.VoucherListQuery) ([]models.VoucherDetail, error) {
	filter.Limit = query.Limit
	if filter.Limit <= 0 {
		filter.Limit = s.listLimit
	}
	filter.Offset = query.Offset
	vouchers, err := s.vouchers.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list vouchers")
	}
	if vouchers == nil {
		vouchers = []models.VoucherDetail{}
	}
	return vouchers, nil
}

func (s *VoucherService) loadSubject(ctx context.Context, benefitID, personID string, now time.Time) (*voucherSubject, error) {
	g, gctx := errgroup.WithContext(ctx)
	subject := &voucherSubject{}
	var records []models.IdentificationRecord

	g.Go(func() error {
		benefit, err := s.benefits.GetByID(gctx, benefitID)
		if err != nil {
			return lookupError(err, "Benefit not found", "failed to load benefit")
		}
		subject.benefit = benefit
		return nil
	})
	g.Go(func() error {
		person, err := s.people.GetByID(gctx, personID)
		if err != nil {
			return lookupError(err, "Person not found", "failed to load person")
		}
		subject.person = person
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = s.people.ListIdentifications(gctx, personID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load identification records")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	subject.categories = PersonCategories(records, now)
	return subject, nil
}

func (s *VoucherService) authorizeCancel(ctx context.Context, actor models.Actor, voucher *models.VoucherDetail) error {
	if actor.ID != "" && actor.ID == voucher.ProvidedByID {
		return nil
	}
	if actor.Role == models.RoleSuperuser {
		return nil
	}
	if actor.Role != models.RoleDepartmentAdmin {
		return appErrors.Clone(appErrors.ErrNotAuthorized, "Only the provider or an administrator can cancel this voucher")
	}
	benefit, err := s.getBenefit(ctx, voucher.BenefitID)
	if err != nil {
		return err
	}
	if !s.auth.CanAdminister(actor, benefit.DepartmentID) {
		return appErrors.Clone(appErrors.ErrNotAuthorized, "Only the provider or an administrator can cancel this voucher")
	}
	return nil
}

func (s *VoucherService) requireBenefitAccess(ctx context.Context, actor models.Actor, benefit *models.Benefit) error {
	if s.auth.CanAdminister(actor, benefit.DepartmentID) {
		return nil
	}
	for _, check := range []func(context.Context, models.Actor, string) (bool, error){s.auth.IsProvider, s.auth.IsReleaser} {
		ok, err := check(ctx, actor, benefit.ID)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotAuthorized, "You are not assigned to this benefit")
}

func (s *VoucherService) getVoucher(ctx context.Context, id string) (*models.VoucherDetail, error) {
	voucher, err := s.vouchers.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Voucher not found", "failed to load voucher")
	}
	return voucher, nil
}

func (s *VoucherService) getBenefit(ctx context.Context, id string) (*models.Benefit, error) {
	benefit, err := s.benefits.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Benefit not found", "failed to load benefit")
	}
	return benefit, nil
}

func (s *VoucherService) reject(operation string, err error) error {
	if appErr := appErrors.FromError(err); appErr != nil && appErr.Status < 500 {
		s.metrics.RecordVoucherRejection(operation, appErr.Code)
	}
	return err
}

func (s *VoucherService) afterTransition(ctx context.Context, benefitID string, status models.VoucherStatus) {
	s.metrics.RecordVoucherTransition(string(status))
	s.cache.Invalidate(ctx, statsCacheKey(benefitID))
}

func (s *VoucherService) emitAudit(ctx context.Context, actor models.Actor, action models.ActivityAction, voucherID string, snapshot models.VoucherSnapshot, changes map[string]interface{}) {
	if s.activity == nil {
		return
	}
	log := &models.ActivityLog{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     action,
		EntityType: models.EntityVoucher,
		EntityID:   voucherID,
		EntityName: snapshot.Label(),
	}
	if len(changes) > 0 {
		raw, err := json.Marshal(changes)
		if err != nil {
			s.logger.Warn("failed to encode voucher audit changes", zap.String("voucher_id", voucherID), zap.Error(err))
		} else {
			log.Changes = raw
		}
	}
	if err := s.activity.Record(ctx, log); err != nil {
		s.logger.Warn("failed to persist voucher activity",
			zap.String("voucher_id", voucherID),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

func snapshotOf(v *models.VoucherDetail) models.VoucherSnapshot {
	return models.VoucherSnapshot{BenefitName: v.BenefitName, PersonName: v.PersonName, ProviderName: v.ProviderName}
}

func transition(from, to models.VoucherStatus) map[string]models.VoucherStatus {
	return map[string]models.VoucherStatus{"from": from, "to": to}
}

func statsCacheKey(benefitID string) string {
	return "vouchers:stats:" + benefitID
}

func lookupError(err error, notFound, failure string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, failure)
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatOptionalTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(time.RFC3339)
}
