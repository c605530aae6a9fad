package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lgu-benefits-api/internal/dto"
	"github.com/noah-isme/lgu-benefits-api/internal/models"
	appErrors "github.com/noah-isme/lgu-benefits-api/pkg/errors"
	"github.com/noah-isme/lgu-benefits-api/pkg/response"
)

type voucherService interface {
	Create(ctx context.Context, actor models.Actor, req dto.CreateVoucherRequest) (*models.VoucherDetail, error)
	Release(ctx context.Context, actor models.Actor, voucherID string) (*models.VoucherDetail, error)
	Cancel(ctx context.Context, actor models.Actor, voucherID string) (*models.VoucherDetail, error)
	FindPendingForRelease(ctx context.Context, actor models.Actor, benefitID, personID string) (*models.VoucherDetail, error)
	CheckEligibility(ctx context.Context, actor models.Actor, benefitID string, req dto.EligibilityCheckRequest) (*dto.EligibilityCheckResponse, error)
	PendingForReleaser(ctx context.Context, actor models.Actor, query dto.VoucherListQuery) ([]models.VoucherDetail, error)
	IssuedBy(ctx context.Context, actor models.Actor, query dto.VoucherListQuery) ([]models.VoucherDetail, error)
	ReleasedBy(ctx context.Context, actor models.Actor, query dto.VoucherListQuery) ([]models.VoucherDetail, error)
	ListForBenefit(ctx context.Context, actor models.Actor, benefitID string, query dto.VoucherListQuery) ([]models.VoucherDetail, error)
	ListForPerson(ctx context.Context, actor models.Actor, personID string, query dto.VoucherListQuery) ([]models.VoucherDetail, error)
	StatsForBenefit(ctx context.Context, actor models.Actor, benefitID string) (*models.VoucherStats, error)
	ExportForBenefit(ctx context.Context, actor models.Actor, benefitID string) ([]byte, string, error)
}

// VoucherHandler exposes the voucher lifecycle over REST.
type VoucherHandler struct {
	service voucherService
}

// NewVoucherHandler constructs the handler.
func NewVoucherHandler(service voucherService) *VoucherHandler {
	return &VoucherHandler{service: service}
}

func (h *VoucherHandler) begin(c *gin.Context) (models.Actor, bool) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "voucher service not configured"))
		return models.Actor{}, false
	}
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return models.Actor{}, false
	}
	return actor, true
}

// Create godoc
// @Summary Issue a voucher
// @Description Fails with ELIGIBILITY_FAILED and the full list of reasons unless overrideEligibility is set.
// @Tags Vouchers
// @Accept json
// @Produce json
// @Param payload body dto.CreateVoucherRequest true "Voucher payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /vouchers [post]
func (h *VoucherHandler) Create(c *gin.Context) {
	actor, ok := h.begin(c)
	if !ok {
		return
	}
	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid voucher payload"))
		return
	}
	voucher, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, voucher)
}

// Release godoc
// @Summary Release a pending voucher
// @Tags Vouchers
// @Produce json
// @Param id path string true "Voucher ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /vouchers/{id}/release [post]
func (h *VoucherHandler) Release(c *gin.Context) {
	h.transition(c, voucherService.Release)
}

// Cancel godoc
// @Summary Cancel a pending voucher
// @Tags Vouchers
// @Produce json
// @Param id path string true "Voucher ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /vouchers/{id}/cancel [post]
func (h *VoucherHandler) Cancel(c *gin.Context) {
	h.transition(c, voucherService.Cancel)
}

func (h *VoucherHandler) transition(c *gin.Context, fn func(voucherService, context.Context, models.Actor, string) (*models.VoucherDetail, error)) {
	actor, ok := h.begin(c)
	if !ok {
		return
	}
	voucher, err := fn(h.service, c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, voucher, nil)
}

// PendingForRelease godoc
// @Summary Find the releasable pending voucher for a person
// @Tags Vouchers
// @Produce json
// @Param id path string true "Benefit ID"
// @Param personId query string true "Person ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /benefits/{id}/vouchers/pending-release [get]
func (h *VoucherHandler) PendingForRelease(c *gin.Context) {
	actor, ok := h.begin(c)
	if !ok {
		return
	}
	personID := strings.TrimSpace(c.Query("personId"))
	if personID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "personId is required"))
		return
	}
	voucher, err := h.service.FindPendingForRelease(c.Request.Context(), actor, c.Param("id"), personID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, voucher, nil)
}

// CheckEligibility godoc
// @Summary Preview eligibility of a person for a benefit
// @Tags Vouchers
// @Accept json
// @Produce json
// @Param id path string true "Benefit ID"
// @Param payload body dto.EligibilityCheckRequest true "Person"
// @Success 200 {object} response.Envelope
// @Router /benefits/{id}/eligibility-check [post]
func (h *VoucherHandler) CheckEligibility(c *gin.Context) {
	actor, ok := h.begin(c)
	if !ok {
		return
	}
	var req dto.EligibilityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid eligibility payload"))
		return
	}
	result, err := h.service.CheckEligibility(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Pending godoc
// @Summary Pending vouchers awaiting the caller's release
// @Tags Vouchers
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Router /vouchers/pending [get]
func (h *VoucherHandler) Pending(c *gin.Context) {
	h.listForActor(c, voucherService.PendingForReleaser)
}

// Issued godoc
// @Summary Vouchers issued by the caller
// @Tags Vouchers
// @Produce json
// @Param status query string false "Comma separated statuses"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Router /vouchers/issued [get]
func (h *VoucherHandler) Issued(c *gin.Context) {
	h.listForActor(c, voucherService.IssuedBy)
}

// Released godoc
// @Summary Vouchers released by the caller
// @Tags Vouchers
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Router /vouchers/released [get]
func (h *VoucherHandler) Released(c *gin.Context) {
	h.listForActor(c, voucherService.ReleasedBy)
}

func (h *VoucherHandler) listForActor(c *gin.Context, fn func(voucherService, context.Context, models.Actor, dto.VoucherListQuery) ([]models.VoucherDetail, error)) {
	actor, ok := h.begin(c)
	if !ok {
		return
	}
	query := listQuery(c)
	items, err := fn(h.service, c.Request.Context(), actor, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination(query, len(items)))
}

// ListForBenefit godoc
// @Summary All vouchers of a benefit
// @Tags Vouchers
// @Produce json
// @Param id path string true "Benefit ID"
// @Param status query string false "Comma separated statuses"
// @Success 200 {object} response.Envelope
// @Router /benefits/{id}/vouchers [get]
func (h *VoucherHandler) ListForBenefit(c *gin.Context) {
	h.listForEntity(c, voucherService.ListForBenefit)
}

// ListForPerson godoc
// @Summary All vouchers of a person
// @Tags Vouchers
// @Produce json
// @Param id path string true "Person ID"
// @Param status query string false "Comma separated statuses"
// @Success 200 {object} response.Envelope
// @Router /people/{id}/vouchers [get]
func (h *VoucherHandler) ListForPerson(c *gin.Context) {
	h.listForEntity(c, voucherService.ListForPerson)
}

func (h *VoucherHandler) listForEntity(c *gin.Context, fn func(voucherService, context.Context, models.Actor, string, dto.VoucherListQuery) ([]models.VoucherDetail, error)) {
	actor, ok := h.begin(c)
	if !ok {
		return
	}
	query := listQuery(c)
	items, err := fn(h.service, c.Request.Context(), actor, c.Param("id"), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination(query, len(items)))
}

// Stats godoc
// @Summary Voucher counts by status for a benefit
// @Tags Vouchers
// @Produce json
// @Param id path string true "Benefit ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /benefits/{id}/vouchers/stats [get]
func (h *VoucherHandler) Stats(c *gin.Context) {
	actor, ok := h.begin(c)
	if !ok {
		return
	}
	stats, err := h.service.StatsForBenefit(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Export godoc
// @Summary Download a benefit's vouchers as CSV
// @Tags Vouchers
// @Produce text/csv
// @Param id path string true "Benefit ID"
// @Success 200 {file} file
// @Router /benefits/{id}/vouchers/export [get]
func (h *VoucherHandler) Export(c *gin.Context) {
	actor, ok := h.begin(c)
	if !ok {
		return
	}
	payload, filename, err := h.service.ExportForBenefit(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, filename, "text/csv; charset=utf-8", payload)
}
