package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lgu-benefits-api/internal/models"
	appErrors "github.com/noah-isme/lgu-benefits-api/pkg/errors"
)

type userFinderStub struct {
	users map[string]models.User
}

func (s userFinderStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func newTokenFixture() *TokenService {
	dept := "dept-1"
	users := userFinderStub{users: map[string]models.User{
		"admin-1": {ID: "admin-1", FullName: "Dept Admin", Role: "admin", DepartmentID: &dept, Active: true},
		"retired": {ID: "retired", FullName: "Former Staff", Role: models.RoleUser, Active: false},
	}}
	return NewTokenService(users, TokenConfig{Secret: "test-secret", Issuer: "lgu-benefits", Expiry: time.Hour})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTokenFixture()

	token, expiresAt, err := svc.IssueForUser(context.Background(), "admin-1", 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, models.RoleDepartmentAdmin, claims.Role)
	assert.Equal(t, "dept-1", claims.DepartmentID)

	actor, err := ActorFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "Dept Admin", actor.Name)
}

func TestTokenRejections(t *testing.T) {
	svc := newTokenFixture()

	token, _, err := svc.IssueForUser(context.Background(), "admin-1", time.Minute)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = svc.ValidateToken(token)
	require.ErrorIs(t, err, appErrors.ErrUnauthenticated)

	other := NewTokenService(nil, TokenConfig{Secret: "different", Issuer: "lgu-benefits"})
	_, err = other.ValidateToken(token)
	require.ErrorIs(t, err, appErrors.ErrUnauthenticated)

	_, _, err = svc.IssueForUser(context.Background(), "retired", 0)
	require.ErrorIs(t, err, appErrors.ErrNotAuthorized)

	_, _, err = svc.IssueForUser(context.Background(), "ghost", 0)
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}
