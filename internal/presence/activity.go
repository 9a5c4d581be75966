package presence

import (
	"fmt"
	"strings"
	"time"

	"github.com/devraikou/portfolio/internal/model"
)

// musicService is matched case-insensitively against the activity name and
// overrides the kind-based label and icon.
const musicService = "Spotify"

// CurrentActivity returns the first activity that is a game, listening or
// watching entry. Streams and custom statuses never count as current.
func CurrentActivity(activities []model.Activity) (model.Activity, bool) {
	for _, a := range activities {
		switch a.Kind {
		case model.ActivityGame, model.ActivityListening, model.ActivityWatching:
			return a, true
		}
	}
	return model.Activity{}, false
}

// IsMusicService reports whether the activity name is the music service.
func IsMusicService(name string) bool {
	return strings.EqualFold(name, musicService)
}

// KindLabel is the verb shown above the activity name.
func KindLabel(kind model.ActivityKind, name string) string {
	if IsMusicService(name) {
		return "Listening to " + musicService
	}

	switch kind {
	case model.ActivityGame:
		return "Playing"
	case model.ActivityStream:
		return "Streaming"
	case model.ActivityListening:
		return "Listening to"
	case model.ActivityWatching:
		return "Watching"
	default:
		return ""
	}
}

// ActivityIcon returns the icon reference for an activity.
func ActivityIcon(kind model.ActivityKind, name string) string {
	if IsMusicService(name) {
		return "si-spotify"
	}

	switch kind {
	case model.ActivityGame:
		return "fa-gamepad"
	case model.ActivityListening:
		return "fa-music"
	case model.ActivityWatching:
		return "fa-video"
	default:
		return "fa-discord"
	}
}

// Elapsed returns the time since startMs (epoch milliseconds) at now.
func Elapsed(startMs int64, now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(startMs))
}

// FormatElapsed renders d as "<H>h <M>m" from one hour up, otherwise "<M>m".
// Negative durations (clock skew) render as "0m".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	hours := int64(d / time.Hour)
	minutes := int64((d % time.Hour) / time.Minute)

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
