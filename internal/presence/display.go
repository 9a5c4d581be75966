package presence

import (
	"fmt"
	"strconv"

	"github.com/devraikou/portfolio/internal/model"
)

const (
	avatarCDN = "https://cdn.discordapp.com"

	// defaultAvatarCount is how many default avatars the CDN serves.
	defaultAvatarCount = 5

	// badgeRowLimit is how many badges fit next to the username before the
	// card offers "Show all badges".
	badgeRowLimit = 5
)

// AvatarURL builds the avatar image URL for a user. Without an avatar hash
// the CDN's default avatar is chosen by discriminator mod 5.
func AvatarURL(userID string, avatarHash *string, discriminator string) string {
	if avatarHash != nil && *avatarHash != "" {
		return fmt.Sprintf("%s/avatars/%s/%s.webp?size=256", avatarCDN, userID, *avatarHash)
	}

	// Accounts migrated to unique usernames report "0"; garbage also lands on 0.
	n, err := strconv.Atoi(discriminator)
	if err != nil || n < 0 {
		n = 0
	}
	return fmt.Sprintf("%s/embed/avatars/%d.png", avatarCDN, n%defaultAvatarCount)
}

// StatusLabel is the human-readable presence status.
func StatusLabel(s model.Status) string {
	switch s {
	case model.StatusOnline:
		return "Online"
	case model.StatusIdle:
		return "Idle"
	case model.StatusDoNotDisturb:
		return "Do Not Disturb"
	default:
		return "Offline"
	}
}

// StatusColor is the CSS class of the status dot.
func StatusColor(s model.Status) string {
	switch s {
	case model.StatusOnline:
		return "bg-green-500"
	case model.StatusIdle:
		return "bg-yellow-500"
	case model.StatusDoNotDisturb:
		return "bg-red-500"
	default:
		return "bg-gray-500"
	}
}
