package domain

import "time"

// UserAccount is the single per-device account record.
type UserAccount struct {
	Credits int

	// LastDailyClaim is nil until the first reward claim.
	LastDailyClaim *time.Time
	Streak         int
	IsPremium      bool
}

// Clone returns a copy that does not share the LastDailyClaim pointer.
func (a UserAccount) Clone() UserAccount {
	if a.LastDailyClaim != nil {
		last := *a.LastDailyClaim
		a.LastDailyClaim = &last
	}

	return a
}

// QuotaStatus summarizes free-tier usage.
type QuotaStatus struct {
	Used      int
	Limit     int
	Remaining int
	Premium   bool
}
