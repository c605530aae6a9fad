package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/lgu-benefits-api/internal/models"
	appErrors "github.com/noah-isme/lgu-benefits-api/pkg/errors"
)

type userFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// TokenConfig contains JWT signing parameters.
type TokenConfig struct {
	Secret string
	Issuer string
	Expiry time.Duration
}

// TokenService verifies access tokens issued by the session provider and
// mints development tokens for stored users.
type TokenService struct {
	users  userFinder
	config TokenConfig
	now    func() time.Time
}

// NewTokenService constructs the service. users may be nil when only
// validation is needed.
func NewTokenService(users userFinder, config TokenConfig) *TokenService {
	if config.Expiry <= 0 {
		config.Expiry = 12 * time.Hour
	}
	return &TokenService{users: users, config: config, now: time.Now}
}

// ValidateToken parses and validates an access token returning the claims.
func (s *TokenService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now)}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthenticated.Code, appErrors.ErrUnauthenticated.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "invalid token claims")
	}
	return claims, nil
}

// IssueForUser loads an active user and signs an access token for them.
func (s *TokenService) IssueForUser(ctx context.Context, userID string, ttl time.Duration) (string, time.Time, error) {
	if s.users == nil {
		return "", time.Time{}, appErrors.Clone(appErrors.ErrServiceUnavailable, "user store not configured")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, appErrors.Clone(appErrors.ErrNotFound, "User not found")
		}
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if !user.Active {
		return "", time.Time{}, appErrors.Clone(appErrors.ErrNotAuthorized, "User is inactive")
	}
	return s.IssueAccessToken(user, ttl)
}

// IssueAccessToken signs claims for the user. A non-positive ttl uses the
// configured expiry.
func (s *TokenService) IssueAccessToken(user *models.User, ttl time.Duration) (string, time.Time, error) {
	role, ok := models.ParseRole(string(user.Role))
	if !ok {
		return "", time.Time{}, appErrors.ErrInvalidRole
	}
	if ttl <= 0 {
		ttl = s.config.Expiry
	}
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(ttl)
	claims := &models.JWTClaims{
		UserID:   user.ID,
		FullName: user.FullName,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	if user.DepartmentID != nil {
		claims.DepartmentID = *user.DepartmentID
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expiresAt, nil
}
