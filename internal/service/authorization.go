package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/lgu-benefits-api/internal/models"
	appErrors "github.com/noah-isme/lgu-benefits-api/pkg/errors"
)

type assignmentStore interface {
	FindAssignment(ctx context.Context, benefitID, userID string, role models.AssignmentRole) (*models.BenefitAssignment, error)
}

// AuthorizationService answers capability questions for an actor. Provider
// and releaser capabilities come only from assignment rows, for every role.
type AuthorizationService struct {
	assignments assignmentStore
	logger      *zap.Logger
}

// NewAuthorizationService constructs the guard.
func NewAuthorizationService(assignments assignmentStore, logger *zap.Logger) *AuthorizationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthorizationService{assignments: assignments, logger: logger}
}

// ActorFromClaims converts verified token claims into an actor.
func ActorFromClaims(claims *models.JWTClaims) (models.Actor, error) {
	if claims == nil || strings.TrimSpace(claims.UserID) == "" {
		return models.Actor{}, appErrors.ErrUnauthenticated
	}
	role, ok := models.ParseRole(string(claims.Role))
	if !ok {
		return models.Actor{}, appErrors.ErrInvalidRole
	}
	actor := claims.Actor()
	actor.Role = role
	return actor, nil
}

// IsProvider reports whether the actor may issue vouchers for the benefit.
func (s *AuthorizationService) IsProvider(ctx context.Context, actor models.Actor, benefitID string) (bool, error) {
	return s.hasAssignment(ctx, actor, benefitID, models.AssignmentProvider)
}

// IsReleaser reports whether the actor may release vouchers for the benefit.
func (s *AuthorizationService) IsReleaser(ctx context.Context, actor models.Actor, benefitID string) (bool, error) {
	return s.hasAssignment(ctx, actor, benefitID, models.AssignmentReleaser)
}

// CanAdminister reports whether the actor administers the department.
func (s *AuthorizationService) CanAdminister(actor models.Actor, departmentID string) bool {
	switch actor.Role {
	case models.RoleSuperuser:
		return true
	case models.RoleDepartmentAdmin:
		return actor.DepartmentID != "" && actor.DepartmentID == departmentID
	default:
		return false
	}
}

// RequireProvider fails with NotAuthorized unless the actor is a provider.
func (s *AuthorizationService) RequireProvider(ctx context.Context, actor models.Actor, benefitID string) error {
	ok, err := s.IsProvider(ctx, actor, benefitID)
	if err != nil {
		return err
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrNotAuthorized, "You are not assigned as a provider for this benefit")
	}
	return nil
}

// RequireReleaser fails with NotAuthorized unless the actor is a releaser.
func (s *AuthorizationService) RequireReleaser(ctx context.Context, actor models.Actor, benefitID string) error {
	ok, err := s.IsReleaser(ctx, actor, benefitID)
	if err != nil {
		return err
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrNotAuthorized, "You are not assigned as a releaser for this benefit")
	}
	return nil
}

// RequireAdmin fails with NotAuthorized unless the actor administers the department.
func (s *AuthorizationService) RequireAdmin(actor models.Actor, departmentID string) error {
	if !s.CanAdminister(actor, departmentID) {
		return appErrors.Clone(appErrors.ErrNotAuthorized, "You cannot administer this department")
	}
	return nil
}

func (s *AuthorizationService) hasAssignment(ctx context.Context, actor models.Actor, benefitID string, role models.AssignmentRole) (bool, error) {
	if actor.ID == "" {
		return false, appErrors.ErrUnauthenticated
	}
	if benefitID == "" {
		return false, nil
	}
	if _, err := s.assignments.FindAssignment(ctx, benefitID, actor.ID, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		s.logger.Error("assignment lookup failed",
			zap.String("benefit_id", benefitID),
			zap.String("user_id", actor.ID),
			zap.String("role", string(role)),
			zap.Error(err))
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check benefit assignment")
	}
	return true, nil
}
