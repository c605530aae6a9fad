package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CategoryMode decides how required identification categories combine.
type CategoryMode string

const (
	CategoryModeAny CategoryMode = "any"
	CategoryModeAll CategoryMode = "all"
)

// Eligibility restricts who may receive a benefit without an override.
// Nil fields impose no restriction on their dimension.
type Eligibility struct {
	Barangays          []string         `json:"barangays,omitempty"`
	MaxMonthlyIncome   *int64           `json:"maxMonthlyIncome,omitempty"`
	MinAge             *int             `json:"minAge,omitempty"`
	MaxAge             *int             `json:"maxAge,omitempty"`
	Gender             *string          `json:"gender,omitempty"`
	ResidencyStatus    *ResidencyStatus `json:"residencyStatus,omitempty"`
	RequiredCategories []string         `json:"requiredCategories,omitempty"`
	CategoryMode       CategoryMode     `json:"categoryMode,omitempty"`
}

// Value stores the ruleset as JSONB. lib/pq sends []byte as bytea, so the
// payload is passed as text.
func (e Eligibility) Value() (driver.Value, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan loads the ruleset from a JSONB column.
func (e *Eligibility) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*e = Eligibility{}
		return nil
	default:
		return fmt.Errorf("scan eligibility: unsupported type %T", src)
	}
	return json.Unmarshal(raw, e)
}

// EligibilityResult is the outcome of evaluating a person against a ruleset.
type EligibilityResult struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
}

// Benefit is a department programme distributed through vouchers.
type Benefit struct {
	ID           string       `db:"id" json:"id"`
	DepartmentID string       `db:"department_id" json:"departmentId"`
	Name         string       `db:"name" json:"name"`
	Description  *string      `db:"description" json:"description,omitempty"`
	Value        *float64     `db:"value" json:"value,omitempty"`
	Quantity     *int         `db:"quantity" json:"quantity,omitempty"`
	Active       bool         `db:"is_active" json:"isActive"`
	Eligibility  *Eligibility `db:"eligibility" json:"eligibility,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`

	Providers []string `db:"-" json:"providers"`
	Releasers []string `db:"-" json:"releasers"`
}

// AssignmentRole is the capability granted by a benefit assignment.
type AssignmentRole string

const (
	AssignmentProvider AssignmentRole = "provider"
	AssignmentReleaser AssignmentRole = "releaser"
)

// BenefitAssignment grants a user a capability on one benefit.
type BenefitAssignment struct {
	BenefitID string         `db:"benefit_id" json:"benefitId"`
	UserID    string         `db:"user_id" json:"userId"`
	Role      AssignmentRole `db:"role" json:"role"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}
