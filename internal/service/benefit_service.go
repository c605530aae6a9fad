package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lgu-benefits-api/internal/dto"
	"github.com/noah-isme/lgu-benefits-api/internal/models"
	appErrors "github.com/noah-isme/lgu-benefits-api/pkg/errors"
)

type benefitStore interface {
	GetByID(ctx context.Context, id string) (*models.Benefit, error)
	Create(ctx context.Context, benefit *models.Benefit) error
	Update(ctx context.Context, benefit *models.Benefit) error
	SetActive(ctx context.Context, id string, active bool) error
}

// BenefitService manages benefits and their provider/releaser assignments
// for department administrators.
type BenefitService struct {
	repo      benefitStore
	auth      *AuthorizationService
	activity  activityRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBenefitService constructs the service.
func NewBenefitService(repo benefitStore, auth *AuthorizationService, activity activityRecorder, validate *validator.Validate, logger *zap.Logger) *BenefitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &BenefitService{repo: repo, auth: auth, activity: activity, validator: validate, logger: logger}
}

// Get returns a benefit. Administrators and assigned staff may read it.
func (s *BenefitService) Get(ctx context.Context, actor models.Actor, id string) (*models.Benefit, error) {
	benefit, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.auth.CanAdminister(actor, benefit.DepartmentID) || containsID(benefit.Providers, actor.ID) || containsID(benefit.Releasers, actor.ID) {
		return benefit, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotAuthorized, "You are not assigned to this benefit")
}

// Create defines a benefit in the actor's department, or in the requested
// department for superusers.
func (s *BenefitService) Create(ctx context.Context, actor models.Actor, req dto.CreateBenefitRequest) (*models.Benefit, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid benefit payload")
	}
	departmentID := strings.TrimSpace(req.DepartmentID)
	if departmentID == "" {
		departmentID = actor.DepartmentID
	}
	if departmentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "departmentId is required")
	}
	if err := s.auth.RequireAdmin(actor, departmentID); err != nil {
		return nil, err
	}
	providers, releasers, err := normalizeAssignments(req.Providers, req.Releasers)
	if err != nil {
		return nil, err
	}
	if err := validateEligibility(req.Eligibility); err != nil {
		return nil, err
	}

	benefit := &models.Benefit{
		DepartmentID: departmentID,
		Name:         strings.TrimSpace(req.Name),
		Description:  trimmedOrNil(req.Description),
		Value:        req.Value,
		Quantity:     req.Quantity,
		Active:       true,
		Eligibility:  req.Eligibility,
		Providers:    providers,
		Releasers:    releasers,
	}
	if err := s.repo.Create(ctx, benefit); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create benefit")
	}
	s.emitAudit(ctx, actor, models.ActivityCreate, benefit, map[string]interface{}{
		"providers": providers,
		"releasers": releasers,
	})
	return benefit, nil
}

// Update replaces a benefit's mutable fields and assignment lists.
func (s *BenefitService) Update(ctx context.Context, actor models.Actor, id string, req dto.UpdateBenefitRequest) (*models.Benefit, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid benefit payload")
	}
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.auth.RequireAdmin(actor, existing.DepartmentID); err != nil {
		return nil, err
	}
	providers, releasers, err := normalizeAssignments(req.Providers, req.Releasers)
	if err != nil {
		return nil, err
	}
	if err := validateEligibility(req.Eligibility); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = strings.TrimSpace(req.Name)
	updated.Description = trimmedOrNil(req.Description)
	updated.Value = req.Value
	updated.Quantity = req.Quantity
	updated.Eligibility = req.Eligibility
	updated.Providers = providers
	updated.Releasers = releasers
	if req.Active != nil {
		updated.Active = *req.Active
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Benefit not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update benefit")
	}
	s.emitAudit(ctx, actor, models.ActivityUpdate, &updated, benefitChanges(existing, &updated))
	return &updated, nil
}

// Deactivate stops new vouchers from being issued for the benefit. Pending
// vouchers stay releasable.
func (s *BenefitService) Deactivate(ctx context.Context, actor models.Actor, id string) (*models.Benefit, error) {
	benefit, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.auth.RequireAdmin(actor, benefit.DepartmentID); err != nil {
		return nil, err
	}
	if !benefit.Active {
		return benefit, nil
	}
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Benefit not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate benefit")
	}
	benefit.Active = false
	s.emitAudit(ctx, actor, models.ActivityDeactivate, benefit, map[string]interface{}{
		"isActive": map[string]bool{"from": true, "to": false},
	})
	return benefit, nil
}

func (s *BenefitService) load(ctx context.Context, id string) (*models.Benefit, error) {
	benefit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Benefit not found", "failed to load benefit")
	}
	return benefit, nil
}

func (s *BenefitService) emitAudit(ctx context.Context, actor models.Actor, action models.ActivityAction, benefit *models.Benefit, changes map[string]interface{}) {
	if s.activity == nil {
		return
	}
	log := &models.ActivityLog{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     action,
		EntityType: models.EntityBenefit,
		EntityID:   benefit.ID,
		EntityName: benefit.Name,
	}
	if raw, err := json.Marshal(changes); err == nil {
		log.Changes = raw
	}
	if err := s.activity.Record(ctx, log); err != nil {
		s.logger.Warn("failed to persist benefit activity",
			zap.String("benefit_id", benefit.ID),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

// normalizeAssignments trims and de-duplicates the id lists and rejects any
// user present in both.
func normalizeAssignments(providers, releasers []string) ([]string, []string, error) {
	p := uniqueIDs(providers)
	r := uniqueIDs(releasers)
	for _, id := range r {
		if containsID(p, id) {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "A user cannot be both provider and releaser for the same benefit")
		}
	}
	return p, r, nil
}

func validateEligibility(rules *models.Eligibility) error {
	if rules == nil {
		return nil
	}
	for _, category := range rules.RequiredCategories {
		if !models.IsCategory(category) {
			return appErrors.Clone(appErrors.ErrUnsupportedCategory, "Unknown identification category: "+category)
		}
	}
	switch rules.CategoryMode {
	case "", models.CategoryModeAny, models.CategoryModeAll:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "categoryMode must be any or all")
	}
	if rules.MinAge != nil && rules.MaxAge != nil && *rules.MinAge > *rules.MaxAge {
		return appErrors.Clone(appErrors.ErrValidation, "minAge cannot exceed maxAge")
	}
	if rules.MaxMonthlyIncome != nil && *rules.MaxMonthlyIncome < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "maxMonthlyIncome cannot be negative")
	}
	if rules.ResidencyStatus != nil {
		switch *rules.ResidencyStatus {
		case models.ResidencyResident, models.ResidencyNonResident:
		default:
			return appErrors.Clone(appErrors.ErrValidation, "residencyStatus must be resident or nonResident")
		}
	}
	return nil
}

func benefitChanges(before, after *models.Benefit) map[string]interface{} {
	changes := map[string]interface{}{}
	if before.Name != after.Name {
		changes["name"] = map[string]string{"from": before.Name, "to": after.Name}
	}
	if before.Active != after.Active {
		changes["isActive"] = map[string]bool{"from": before.Active, "to": after.Active}
	}
	if !sameIDs(before.Providers, after.Providers) {
		changes["providers"] = after.Providers
	}
	if !sameIDs(before.Releasers, after.Releasers) {
		changes["releasers"] = after.Releasers
	}
	beforeRules, _ := json.Marshal(before.Eligibility)
	afterRules, _ := json.Marshal(after.Eligibility)
	if string(beforeRules) != string(afterRules) {
		changes["eligibility"] = after.Eligibility
	}
	return changes
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || containsID(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
