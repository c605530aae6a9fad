package models

import "time"

// VoucherStatus captures the lifecycle state of a voucher.
type VoucherStatus string

const (
	VoucherStatusPending   VoucherStatus = "pending"
	VoucherStatusReleased  VoucherStatus = "released"
	VoucherStatusCancelled VoucherStatus = "cancelled"
)

// Terminal reports whether no further transition is possible.
func (s VoucherStatus) Terminal() bool {
	return s == VoucherStatusReleased || s == VoucherStatusCancelled
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s VoucherStatus) CanTransitionTo(next VoucherStatus) bool {
	return s == VoucherStatusPending && next.Terminal()
}

// Voucher records a single distribution of a benefit to a person.
type Voucher struct {
	ID           string        `db:"id" json:"id"`
	BenefitID    string        `db:"benefit_id" json:"benefitId"`
	PersonID     string        `db:"person_id" json:"personId"`
	Status       VoucherStatus `db:"status" json:"status"`
	ProvidedByID string        `db:"provided_by_id" json:"providedById"`
	ProvidedAt   time.Time     `db:"provided_at" json:"providedAt"`
	ReleasedByID *string       `db:"released_by_id" json:"releasedById,omitempty"`
	ReleasedAt   *time.Time    `db:"released_at" json:"releasedAt,omitempty"`
	Notes        *string       `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"createdAt"`
}

// VoucherDetail enriches a voucher with display names.
type VoucherDetail struct {
	Voucher
	BenefitName  string `db:"benefit_name" json:"benefitName"`
	PersonName   string `db:"person_name" json:"personName"`
	ProviderName string `db:"provider_name" json:"providerName"`
	ReleaserName string `db:"releaser_name" json:"releaserName,omitempty"`
}

// VoucherFilter constrains voucher listing queries.
type VoucherFilter struct {
	Status       []VoucherStatus
	BenefitID    string
	PersonID     string
	ProvidedByID string
	ReleasedByID string
	// ReleaserUserID limits results to benefits the user may release.
	ReleaserUserID string
	OrderBy        VoucherOrder
	Limit          int
	Offset         int
}

// VoucherOrder selects the timestamp a listing is sorted by (newest first).
type VoucherOrder string

const (
	OrderByProvidedAt VoucherOrder = "provided_at"
	OrderByReleasedAt VoucherOrder = "released_at"
)

// VoucherStats counts a benefit's vouchers grouped by status.
type VoucherStats struct {
	BenefitID string `json:"benefitId"`
	Pending   int    `json:"pending"`
	Released  int    `json:"released"`
	Cancelled int    `json:"cancelled"`
	Total     int    `json:"total"`
}

// VoucherSnapshot freezes the display names of a voucher at write time so
// later renames do not rewrite history.
type VoucherSnapshot struct {
	BenefitName  string
	PersonName   string
	ProviderName string
}

// Label renders the human readable entity name used in activity logs.
func (s VoucherSnapshot) Label() string {
	switch {
	case s.BenefitName == "":
		return s.PersonName
	case s.PersonName == "":
		return s.BenefitName
	}
	return s.BenefitName + " - " + s.PersonName
}
