package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lgu-benefits-api/internal/dto"
	"github.com/noah-isme/lgu-benefits-api/internal/models"
	appErrors "github.com/noah-isme/lgu-benefits-api/pkg/errors"
	"github.com/noah-isme/lgu-benefits-api/pkg/response"
)

type benefitService interface {
	Get(ctx context.Context, actor models.Actor, id string) (*models.Benefit, error)
	Create(ctx context.Context, actor models.Actor, req dto.CreateBenefitRequest) (*models.Benefit, error)
	Update(ctx context.Context, actor models.Actor, id string, req dto.UpdateBenefitRequest) (*models.Benefit, error)
	Deactivate(ctx context.Context, actor models.Actor, id string) (*models.Benefit, error)
}

// BenefitHandler exposes benefit administration endpoints.
type BenefitHandler struct {
	service benefitService
}

// NewBenefitHandler constructs the handler.
func NewBenefitHandler(service benefitService) *BenefitHandler {
	return &BenefitHandler{service: service}
}

// Get godoc
// @Summary Get a benefit with its assignments
// @Tags Benefits
// @Produce json
// @Param id path string true "Benefit ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /benefits/{id} [get]
func (h *BenefitHandler) Get(c *gin.Context) {
	actor, ok := h.begin(c)
	if !ok {
		return
	}
	benefit, err := h.service.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, benefit, nil)
}

// Create godoc
// @Summary Define a benefit
// @Tags Benefits
// @Accept json
// @Produce json
// @Param payload body dto.CreateBenefitRequest true "Benefit payload"
// @Success 201 {object} response.Envelope
// @Router /benefits [post]
func (h *BenefitHandler) Create(c *gin.Context) {
	actor, ok := h.begin(c)
	if !ok {
		return
	}
	var req dto.CreateBenefitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid benefit payload"))
		return
	}
	benefit, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, benefit)
}

// Update godoc
// @Summary Replace a benefit's fields and assignments
// @Tags Benefits
// @Accept json
// @Produce json
// @Param id path string true "Benefit ID"
// @Param payload body dto.UpdateBenefitRequest true "Benefit payload"
// @Success 200 {object} response.Envelope
// @Router /benefits/{id} [put]
func (h *BenefitHandler) Update(c *gin.Context) {
	actor, ok := h.begin(c)
	if !ok {
		return
	}
	var req dto.UpdateBenefitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid benefit payload"))
		return
	}
	benefit, err := h.service.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, benefit, nil)
}

// Deactivate godoc
// @Summary Stop issuing vouchers for a benefit
// @Tags Benefits
// @Produce json
// @Param id path string true "Benefit ID"
// @Success 200 {object} response.Envelope
// @Router /benefits/{id}/deactivate [post]
func (h *BenefitHandler) Deactivate(c *gin.Context) {
	actor, ok := h.begin(c)
	if !ok {
		return
	}
	benefit, err := h.service.Deactivate(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, benefit, nil)
}

func (h *BenefitHandler) begin(c *gin.Context) (models.Actor, bool) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "benefit service not configured"))
		return models.Actor{}, false
	}
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return models.Actor{}, false
	}
	return actor, true
}
