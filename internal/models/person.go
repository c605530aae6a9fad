package models

import "time"

// ResidencyStatus distinguishes registered residents from visitors.
type ResidencyStatus string

const (
	ResidencyResident    ResidencyStatus = "resident"
	ResidencyNonResident ResidencyStatus = "nonResident"
)

// Category keys for government-service identification records.
const (
	CategoryVoter             = "voter"
	CategoryPhilhealth        = "philhealth"
	CategorySSS               = "sss"
	CategoryFourPs            = "fourPs"
	CategoryPWD               = "pwd"
	CategorySoloParent        = "soloParent"
	CategoryPagibig           = "pagibig"
	CategoryTIN               = "tin"
	CategoryBarangayClearance = "barangayClearance"
)

// Categories lists every identification category in display order.
var Categories = []string{
	CategoryVoter,
	CategoryPhilhealth,
	CategorySSS,
	CategoryFourPs,
	CategoryPWD,
	CategorySoloParent,
	CategoryPagibig,
	CategoryTIN,
	CategoryBarangayClearance,
}

// IsCategory reports whether key is a known identification category.
func IsCategory(key string) bool {
	for _, c := range Categories {
		if c == key {
			return true
		}
	}
	return false
}

// Person is a registered beneficiary.
type Person struct {
	ID              string          `db:"id" json:"id"`
	FirstName       string          `db:"first_name" json:"firstName"`
	MiddleName      *string         `db:"middle_name" json:"middleName,omitempty"`
	LastName        string          `db:"last_name" json:"lastName"`
	Barangay        string          `db:"barangay" json:"barangay"`
	Purok           *string         `db:"purok" json:"purok,omitempty"`
	Street          *string         `db:"street" json:"street,omitempty"`
	Birthdate       time.Time       `db:"birthdate" json:"birthdate"`
	Gender          string          `db:"gender" json:"gender"`
	MonthlyIncome   *int64          `db:"monthly_income" json:"monthlyIncome,omitempty"`
	ResidencyStatus ResidencyStatus `db:"residency_status" json:"residencyStatus"`
}

// FullName renders "First Last" for labels and listings.
func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// IdentificationRecord is one government-service registration of a person.
type IdentificationRecord struct {
	PersonID   string     `db:"person_id" json:"personId"`
	Category   string     `db:"category" json:"category"`
	Registered bool       `db:"registered" json:"registered"`
	IDNumber   *string    `db:"id_number" json:"idNumber,omitempty"`
	IssuedAt   *time.Time `db:"issue_date" json:"issueDate,omitempty"`
	ExpiresAt  *time.Time `db:"expiry_date" json:"expiryDate,omitempty"`
}

// ActiveAt reports whether the registration counts toward eligibility at t.
// The expiry is a calendar date compared against t's date in t's location,
// and the registration lapses on that date.
func (r IdentificationRecord) ActiveAt(t time.Time) bool {
	if !r.Registered {
		return false
	}
	return r.ExpiresAt == nil || CalendarDate(*r.ExpiresAt).After(CalendarDate(t))
}

// CalendarDate drops the clock and zone from t, keeping the year, month and
// day as read in t's own location. DATE columns scan as UTC midnight, so
// they keep their stored day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
