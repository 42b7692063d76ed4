package referral

import (
	"time"

	"github.com/shopspring/decimal"
)

// Referrer is one row of the referral table.
type Referrer struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	UserCode     string          `json:"user_code"`
	NoOfReferral int             `json:"no_of_referral"`
	AmountEarned decimal.Decimal `json:"amount_earned"`
	DateJoined   string          `json:"date_joined"`
}

// JoinedAt parses DateJoined, returning the zero time when it is not a known layout.
func (r Referrer) JoinedAt() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, r.DateJoined); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ReferredUser is someone who signed up with a referrer's code.
type ReferredUser struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Commission decimal.Decimal `json:"commission"`
	DateJoined string          `json:"date_joined"`
}

// Detail is the per-user referral breakdown.
type Detail struct {
	Referrer
	ReferredUsers []ReferredUser `json:"referred_users"`
}

// Settings holds the program-wide commission rules.
type Settings struct {
	CommissionPercentage decimal.Decimal `json:"commission_percentage"`
	MinimumWithdrawal    decimal.Decimal `json:"minimum_withdrawal"`
}

// SettingsUpdate is the PUT body; nil fields are left unchanged by the backend.
type SettingsUpdate struct {
	CommissionPercentage *decimal.Decimal `json:"commission_percentage,omitempty"`
	MinimumWithdrawal    *decimal.Decimal `json:"minimum_withdrawal,omitempty"`
}

// Empty reports whether the update carries no fields.
func (u SettingsUpdate) Empty() bool {
	return u.CommissionPercentage == nil && u.MinimumWithdrawal == nil
}

// PageInfo is the pagination state of a referral listing.
type PageInfo struct {
	CurrentPage int
	PerPage     int
	Total       int
	LastPage    int
}

// List is one page of referrers.
type List struct {
	Referrers []Referrer
	Page      PageInfo
}
