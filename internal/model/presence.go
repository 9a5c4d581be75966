// Package model defines the data structures shared across the site.
//
// Snapshot types (PresenceSnapshot, RepositorySummary) are produced fresh by
// each poll or fetch and never mutated afterwards; readers may share them
// between goroutines without copying.
package model

import "time"

// Status is the presence state reported for the user.
type Status string

const (
	StatusOnline       Status = "online"
	StatusIdle         Status = "idle"
	StatusDoNotDisturb Status = "dnd"
	StatusOffline      Status = "offline"
)

// ParseStatus maps a wire value onto a Status. Anything unrecognised is
// treated as offline.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusOnline, StatusIdle, StatusDoNotDisturb:
		return Status(s)
	default:
		return StatusOffline
	}
}

// ActivityKind is the numeric activity type used by the presence API.
type ActivityKind int

const (
	ActivityGame      ActivityKind = 0
	ActivityStream    ActivityKind = 1
	ActivityListening ActivityKind = 2
	ActivityWatching  ActivityKind = 3
	ActivityCustom    ActivityKind = 4
	ActivityCompeting ActivityKind = 5
)

// Activity is one entry of the user's activity list.
//
// Start and End are epoch milliseconds, as sent on the wire.
type Activity struct {
	Name          string       `json:"name"`
	Kind          ActivityKind `json:"kind"`
	Details       *string      `json:"details,omitempty"`
	State         *string      `json:"state,omitempty"`
	Start         *int64       `json:"start,omitempty"`
	End           *int64       `json:"end,omitempty"`
	ApplicationID string       `json:"applicationId,omitempty"`
}

// PresenceSnapshot is the result of one successful presence poll.
type PresenceSnapshot struct {
	UserID        string     `json:"userId"`
	Username      string     `json:"username"`
	AvatarHash    *string    `json:"avatarHash,omitempty"`
	Discriminator string     `json:"discriminator"`
	Status        Status     `json:"status"`
	PublicFlags   *uint64    `json:"publicFlags,omitempty"`
	PremiumTier   *int       `json:"premiumTier,omitempty"`
	Activities    []Activity `json:"activities"`
	FetchedAt     time.Time  `json:"fetchedAt"`
}

// Badge is a derived indicator for one decoded capability or premium tier.
// Badges are computed on every render and never stored.
type Badge struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	IconRef     string `json:"iconRef"`
	ColorClass  string `json:"colorClass"`
	BgClass     string `json:"bgClass"`
}
