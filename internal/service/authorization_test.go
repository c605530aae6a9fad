package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lgu-benefits-api/internal/models"
	appErrors "github.com/noah-isme/lgu-benefits-api/pkg/errors"
)

func TestActorFromClaims(t *testing.T) {
	_, err := ActorFromClaims(nil)
	require.ErrorIs(t, err, appErrors.ErrUnauthenticated)

	_, err = ActorFromClaims(&models.JWTClaims{Role: models.RoleUser})
	require.ErrorIs(t, err, appErrors.ErrUnauthenticated)

	_, err = ActorFromClaims(&models.JWTClaims{UserID: "u-1", Role: "barangay_admin"})
	require.ErrorIs(t, err, appErrors.ErrInvalidRole)

	actor, err := ActorFromClaims(&models.JWTClaims{UserID: "u-1", FullName: "Ana", Role: "admin", DepartmentID: "dept-1"})
	require.NoError(t, err)
	assert.Equal(t, models.Actor{ID: "u-1", Name: "Ana", Role: models.RoleDepartmentAdmin, DepartmentID: "dept-1"}, actor)
}

func TestCanAdminister(t *testing.T) {
	auth := NewAuthorizationService(newAssignmentStoreStub(), nil)
	assert.True(t, auth.CanAdminister(superuser, "dept-9"))
	assert.True(t, auth.CanAdminister(deptAdmin, "dept-1"))
	assert.False(t, auth.CanAdminister(deptAdmin, "dept-2"))
	assert.False(t, auth.CanAdminister(models.Actor{ID: "x", Role: models.RoleDepartmentAdmin}, ""))
	assert.False(t, auth.CanAdminister(providerA, "dept-1"))

	require.NoError(t, auth.RequireAdmin(deptAdmin, "dept-1"))
	require.ErrorIs(t, auth.RequireAdmin(otherAdmin, "dept-1"), appErrors.ErrNotAuthorized)
}

func TestProviderAndReleaserPredicates(t *testing.T) {
	store := newAssignmentStoreStub()
	store.grant("benefit-1", "user-a", models.AssignmentProvider)
	store.grant("benefit-1", "user-b", models.AssignmentReleaser)
	auth := NewAuthorizationService(store, nil)
	ctx := context.Background()

	ok, err := auth.IsProvider(ctx, providerA, "benefit-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.IsReleaser(ctx, providerA, "benefit-1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Capabilities are never implied by role.
	ok, err = auth.IsProvider(ctx, superuser, "benefit-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, auth.RequireReleaser(ctx, releaserB, "benefit-1"))
	err = auth.RequireProvider(ctx, releaserB, "benefit-1")
	require.ErrorIs(t, err, appErrors.ErrNotAuthorized)
	assert.Equal(t, "You are not assigned as a provider for this benefit", appErrors.FromError(err).Message)

	_, err = auth.IsProvider(ctx, models.Actor{}, "benefit-1")
	require.ErrorIs(t, err, appErrors.ErrUnauthenticated)
}

func TestAssignmentLookupFailureIsNotDowngraded(t *testing.T) {
	store := newAssignmentStoreStub()
	store.err = errors.New("connection reset")
	auth := NewAuthorizationService(store, nil)

	err := auth.RequireProvider(context.Background(), providerA, "benefit-1")
	require.ErrorIs(t, err, appErrors.ErrInternal)
}
