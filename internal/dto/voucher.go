package dto

import "github.com/noah-isme/lgu-benefits-api/internal/models"

// CreateVoucherRequest issues a voucher for a person.
type CreateVoucherRequest struct {
	BenefitID           string  `json:"benefitId" validate:"required"`
	PersonID            string  `json:"personId" validate:"required"`
	Notes               *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	OverrideEligibility bool    `json:"overrideEligibility"`
}

// EligibilityCheckRequest previews eligibility before issuing.
type EligibilityCheckRequest struct {
	PersonID string `json:"personId" validate:"required"`
}

// EligibilityCheckResponse carries the evaluator outcome for a benefit.
type EligibilityCheckResponse struct {
	BenefitID     string   `json:"benefitId"`
	PersonID      string   `json:"personId"`
	Restricted    bool     `json:"restricted"`
	Eligible      bool     `json:"eligible"`
	Reasons       []string `json:"reasons"`
	HasPending    bool     `json:"hasPendingVoucher"`
	BenefitActive bool     `json:"benefitActive"`
}

// VoucherListQuery mirrors supported paging parameters.
type VoucherListQuery struct {
	Status []models.VoucherStatus
	Limit  int
	Offset int
}
