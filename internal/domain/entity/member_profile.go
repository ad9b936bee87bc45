package entity

import "time"

// MemberProfile is the community profile of a user account.
// SavedEventIDs is a weak relation: events can disappear from it at any time.
type MemberProfile struct {
	ID            int64
	UserID        int64
	HomeCity      string
	Interests     []string
	SavedEventIDs []int64 // Ascending.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
