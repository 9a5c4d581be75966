package presence

import (
	"time"

	"github.com/devraikou/portfolio/internal/model"
)

// State is where the poller is in its lifecycle.
type State string

const (
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateErrored State = "errored"
)

// UnavailableMessage is shown on the card when the last poll failed.
const UnavailableMessage = "Could not load Discord status"

// Card is everything the presence widget needs to render. It is built from
// the current snapshot and never mutated after construction.
type Card struct {
	State         State         `json:"state"`
	Message       string        `json:"message,omitempty"`
	UserID        string        `json:"userId,omitempty"`
	Username      string        `json:"username,omitempty"`
	AvatarURL     string        `json:"avatarUrl,omitempty"`
	Status        model.Status  `json:"status,omitempty"`
	StatusLabel   string        `json:"statusLabel,omitempty"`
	StatusColor   string        `json:"statusColor,omitempty"`
	Badges        []model.Badge `json:"badges"`
	ShowAllBadges bool          `json:"showAllBadges"`
	Activity      *ActivityView `json:"activity,omitempty"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// ActivityView is the current activity as displayed on the card.
type ActivityView struct {
	Name       string `json:"name"`
	Label      string `json:"label"`
	Icon       string `json:"icon"`
	Details    string `json:"details,omitempty"`
	State      string `json:"state,omitempty"`
	Elapsed    string `json:"elapsed,omitempty"`
	HasElapsed bool   `json:"hasElapsed"`
	NowPlaying bool   `json:"nowPlaying"`
}

// HasDetails reports whether the details box should be drawn.
func (a *ActivityView) HasDetails() bool {
	return a.Details != "" || a.State != ""
}

// BuildCard assembles a Card. snap may be nil for the loading and errored
// states; elapsed is the most recently computed elapsed-time string.
func BuildCard(state State, snap *model.PresenceSnapshot, elapsed string) Card {
	card := Card{
		State:  state,
		Badges: []model.Badge{},
	}

	switch state {
	case StateErrored:
		card.Message = UnavailableMessage
		return card
	case StateLoading:
		return card
	}
	if snap == nil {
		card.State = StateErrored
		card.Message = UnavailableMessage
		return card
	}

	card.UserID = snap.UserID
	card.Username = snap.Username
	card.AvatarURL = AvatarURL(snap.UserID, snap.AvatarHash, snap.Discriminator)
	card.Status = snap.Status
	card.StatusLabel = StatusLabel(snap.Status)
	card.StatusColor = StatusColor(snap.Status)
	card.Badges = Badges(snap.PublicFlags, snap.PremiumTier)
	card.ShowAllBadges = len(card.Badges) > badgeRowLimit
	card.UpdatedAt = snap.FetchedAt

	if act, ok := CurrentActivity(snap.Activities); ok {
		view := &ActivityView{
			Name:       act.Name,
			Label:      KindLabel(act.Kind, act.Name),
			Icon:       ActivityIcon(act.Kind, act.Name),
			NowPlaying: IsMusicService(act.Name),
		}
		if act.Details != nil {
			view.Details = *act.Details
		}
		if act.State != nil {
			view.State = *act.State
		}
		if act.Start != nil {
			view.HasElapsed = true
			view.Elapsed = elapsed
		}
		card.Activity = view
	}

	return card
}

// elapsedFor computes the elapsed string for the snapshot's current
// activity, or "" when there is nothing to time.
func elapsedFor(snap *model.PresenceSnapshot, now time.Time) (string, bool) {
	if snap == nil {
		return "", false
	}
	act, ok := CurrentActivity(snap.Activities)
	if !ok || act.Start == nil {
		return "", false
	}
	return FormatElapsed(Elapsed(*act.Start, now)), true
}
