package dto

import "github.com/noah-isme/lgu-benefits-api/internal/models"

// CreateBenefitRequest defines a benefit and its assignments.
type CreateBenefitRequest struct {
	DepartmentID string              `json:"departmentId"`
	Name         string              `json:"name" validate:"required,max=200"`
	Description  *string             `json:"description,omitempty"`
	Value        *float64            `json:"value,omitempty" validate:"omitempty,gte=0"`
	Quantity     *int                `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Eligibility  *models.Eligibility `json:"eligibility,omitempty"`
	Providers    []string            `json:"providers"`
	Releasers    []string            `json:"releasers"`
}

// UpdateBenefitRequest replaces a benefit's mutable fields and assignments.
type UpdateBenefitRequest struct {
	Name        string              `json:"name" validate:"required,max=200"`
	Description *string             `json:"description,omitempty"`
	Value       *float64            `json:"value,omitempty" validate:"omitempty,gte=0"`
	Quantity    *int                `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Active      *bool               `json:"isActive,omitempty"`
	Eligibility *models.Eligibility `json:"eligibility,omitempty"`
	Providers   []string            `json:"providers"`
	Releasers   []string            `json:"releasers"`
}
