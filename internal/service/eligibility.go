package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/lgu-benefits-api/internal/models"
)

// EvaluateEligibility checks a person against a benefit's ruleset and returns
// every failing dimension. A nil ruleset is unrestricted. The function reads
// nothing but its arguments, so repeated or concurrent calls agree.
func EvaluateEligibility(person models.Person, categories []string, rules *models.Eligibility, now time.Time) models.EligibilityResult {
	result := models.EligibilityResult{Eligible: true, Reasons: []string{}}
	if rules == nil {
		return result
	}

	if reason, ok := checkBarangay(person, rules.Barangays); !ok {
		result.Reasons = append(result.Reasons, reason)
	}
	if reason, ok := checkIncome(person.MonthlyIncome, rules.MaxMonthlyIncome); !ok {
		result.Reasons = append(result.Reasons, reason)
	}
	result.Reasons = append(result.Reasons, checkAge(person.Birthdate, rules.MinAge, rules.MaxAge, now)...)
	if rules.Gender != nil && strings.TrimSpace(*rules.Gender) != "" {
		if !strings.EqualFold(strings.TrimSpace(person.Gender), strings.TrimSpace(*rules.Gender)) {
			result.Reasons = append(result.Reasons, "Must be "+strings.TrimSpace(*rules.Gender))
		}
	}
	if rules.ResidencyStatus != nil && *rules.ResidencyStatus != "" && person.ResidencyStatus != *rules.ResidencyStatus {
		result.Reasons = append(result.Reasons, fmt.Sprintf("Must be %s (is %s)", *rules.ResidencyStatus, displayOrUnknown(string(person.ResidencyStatus))))
	}
	if reason, ok := checkCategories(categories, rules.RequiredCategories, rules.CategoryMode); !ok {
		result.Reasons = append(result.Reasons, reason)
	}

	result.Eligible = len(result.Reasons) == 0
	return result
}

// AgeAt returns completed years between birthdate and now. The birthdate is
// a calendar date and now is read in its own location, so callers pass now in
// the office timezone. The anniversary only counts once its month and day
// have been reached.
func AgeAt(birthdate, now time.Time) int {
	if birthdate.IsZero() {
		return 0
	}
	years := now.Year() - birthdate.Year()
	if now.Month() < birthdate.Month() || (now.Month() == birthdate.Month() && now.Day() < birthdate.Day()) {
		years--
	}
	return years
}

// PersonCategories returns the sorted category keys that are registered and
// unexpired at now.
func PersonCategories(records []models.IdentificationRecord, now time.Time) []string {
	seen := make(map[string]struct{}, len(records))
	categories := make([]string, 0, len(records))
	for _, record := range records {
		if !record.ActiveAt(now) {
			continue
		}
		if _, dup := seen[record.Category]; dup {
			continue
		}
		seen[record.Category] = struct{}{}
		categories = append(categories, record.Category)
	}
	sort.Strings(categories)
	return categories
}

func checkBarangay(person models.Person, allowed []string) (string, bool) {
	if len(allowed) == 0 {
		return "", true
	}
	current := strings.TrimSpace(person.Barangay)
	for _, name := range allowed {
		if strings.EqualFold(strings.TrimSpace(name), current) {
			return "", true
		}
	}
	return fmt.Sprintf("Must reside in one of: %s (lives in %s)", strings.Join(allowed, ", "), displayOrUnknown(current)), false
}

// Unknown income fails closed against a ceiling.
func checkIncome(income, ceiling *int64) (string, bool) {
	if ceiling == nil {
		return "", true
	}
	if income == nil {
		return "Monthly income unknown; benefit requires at most " + formatPesos(*ceiling), false
	}
	if *income > *ceiling {
		return fmt.Sprintf("Monthly income %s exceeds limit of %s", formatPesos(*income), formatPesos(*ceiling)), false
	}
	return "", true
}

func checkAge(birthdate time.Time, minAge, maxAge *int, now time.Time) []string {
	if minAge == nil && maxAge == nil {
		return nil
	}
	if birthdate.IsZero() {
		return []string{"Birthdate unknown; benefit requires an age check"}
	}
	age := AgeAt(birthdate, now)
	var reasons []string
	if minAge != nil && age < *minAge {
		reasons = append(reasons, fmt.Sprintf("Must be at least %d years old (is %d)", *minAge, age))
	}
	if maxAge != nil && age > *maxAge {
		reasons = append(reasons, fmt.Sprintf("Must be at most %d years old (is %d)", *maxAge, age))
	}
	return reasons
}

func checkCategories(held, required []string, mode models.CategoryMode) (string, bool) {
	if len(required) == 0 {
		return "", true
	}
	has := make(map[string]struct{}, len(held))
	for _, category := range held {
		has[category] = struct{}{}
	}

	if mode == models.CategoryModeAll {
		var missing []string
		for _, category := range required {
			if _, ok := has[category]; !ok {
				missing = append(missing, category)
			}
		}
		if len(missing) > 0 {
			return "Missing required categories: " + strings.Join(missing, ", "), false
		}
		return "", true
	}

	for _, category := range required {
		if _, ok := has[category]; ok {
			return "", true
		}
	}
	return "Must have at least one of: " + strings.Join(required, ", "), false
}

func formatPesos(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "₱" + b.String()
}

func displayOrUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
