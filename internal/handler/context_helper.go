package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lgu-benefits-api/internal/dto"
	"github.com/noah-isme/lgu-benefits-api/internal/middleware"
	"github.com/noah-isme/lgu-benefits-api/internal/models"
	"github.com/noah-isme/lgu-benefits-api/internal/repository"
	"github.com/noah-isme/lgu-benefits-api/internal/service"
)

const (
	defaultListLimit = 100
	maxListLimit     = repository.MaxVoucherListLimit
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func actorFromContext(c *gin.Context) (models.Actor, error) {
	return service.ActorFromClaims(claimsFromContext(c))
}

// listQuery reads ?limit=&offset=&status=a,b. Unknown statuses are ignored
// and limit is capped at maxListLimit.
func listQuery(c *gin.Context) dto.VoucherListQuery {
	query := dto.VoucherListQuery{}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		query.Limit = v
		if query.Limit > maxListLimit {
			query.Limit = maxListLimit
		}
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		query.Offset = v
	}
	for _, raw := range strings.Split(c.Query("status"), ",") {
		switch status := models.VoucherStatus(strings.TrimSpace(raw)); status {
		case models.VoucherStatusPending, models.VoucherStatusReleased, models.VoucherStatusCancelled:
			query.Status = append(query.Status, status)
		}
	}
	return query
}

func pagination(query dto.VoucherListQuery, count int) *models.Pagination {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	return &models.Pagination{Limit: limit, Offset: query.Offset, Count: count}
}
