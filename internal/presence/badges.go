// Package presence polls the Lanyard presence API and turns each snapshot
// into a renderable card: decoded badges, the current activity with its
// elapsed time, status and avatar.
package presence

import "github.com/devraikou/portfolio/internal/model"

// Capability is one named bit of the public flags bitmask.
type Capability int

const (
	CapEmployee Capability = iota
	CapPartner
	CapHypeSquadEvents
	CapHouseBravery
	CapHouseBrilliance
	CapHouseBalance
	CapEarlySupporter
	CapBugHunter
	CapActiveDeveloper
)

// Flag bit positions on the wire. Bug hunter has two levels that decode to
// the same capability.
const (
	flagEmployee        uint64 = 1 << 0
	flagPartner         uint64 = 1 << 1
	flagHypeSquadEvents uint64 = 1 << 2
	flagBugHunterL1     uint64 = 1 << 3
	flagHouseBravery    uint64 = 1 << 6
	flagHouseBrilliance uint64 = 1 << 7
	flagHouseBalance    uint64 = 1 << 8
	flagEarlySupporter  uint64 = 1 << 9
	flagBugHunterL2     uint64 = 1 << 14
	flagActiveDeveloper uint64 = 1 << 22
)

// Premium tiers. Tier 3 (basic) renders the same badge as tier 2.
const (
	PremiumNone    = 0
	PremiumClassic = 1
	PremiumNitro   = 2
	PremiumBasic   = 3
)

// capabilityChecks is evaluated in order; the order is the output order.
var capabilityChecks = []struct {
	cap  Capability
	mask uint64
}{
	{CapEmployee, flagEmployee},
	{CapPartner, flagPartner},
	{CapHypeSquadEvents, flagHypeSquadEvents},
	{CapHouseBravery, flagHouseBravery},
	{CapHouseBrilliance, flagHouseBrilliance},
	{CapHouseBalance, flagHouseBalance},
	{CapEarlySupporter, flagEarlySupporter},
	{CapBugHunter, flagBugHunterL1 | flagBugHunterL2},
	{CapActiveDeveloper, flagActiveDeveloper},
}

var capabilityBadges = map[Capability]model.Badge{
	CapEmployee:        {ID: "staff", DisplayName: "Discord Staff", IconRef: "fa-discord", ColorClass: "text-indigo-400", BgClass: "bg-indigo-500/20"},
	CapPartner:         {ID: "partner", DisplayName: "Partnered Server Owner", IconRef: "ri-verified-badge", ColorClass: "text-blue-400", BgClass: "bg-blue-500/20"},
	CapHypeSquadEvents: {ID: "hypesquad", DisplayName: "HypeSquad Events", IconRef: "hi-sparkles", ColorClass: "text-yellow-400", BgClass: "bg-yellow-500/20"},
	CapHouseBravery:    {ID: "bravery", DisplayName: "HypeSquad Bravery", IconRef: "hi-shield-check", ColorClass: "text-purple-400", BgClass: "bg-purple-500/20"},
	CapHouseBrilliance: {ID: "brilliance", DisplayName: "HypeSquad Brilliance", IconRef: "hi-sparkles", ColorClass: "text-pink-400", BgClass: "bg-pink-500/20"},
	CapHouseBalance:    {ID: "balance", DisplayName: "HypeSquad Balance", IconRef: "hi-star", ColorClass: "text-cyan-400", BgClass: "bg-cyan-500/20"},
	CapEarlySupporter:  {ID: "early_supporter", DisplayName: "Early Supporter", IconRef: "fa-crown", ColorClass: "text-pink-400", BgClass: "bg-pink-500/20"},
	CapBugHunter:       {ID: "bug_hunter", DisplayName: "Bug Hunter", IconRef: "fa-check", ColorClass: "text-yellow-400", BgClass: "bg-yellow-500/20"},
	CapActiveDeveloper: {ID: "active_dev", DisplayName: "Active Developer", IconRef: "ri-vip-crown", ColorClass: "text-green-400", BgClass: "bg-green-500/20"},
}

var (
	nitroClassicBadge = model.Badge{ID: "nitro_classic", DisplayName: "Nitro Classic", IconRef: "fa-gem", ColorClass: "text-purple-400", BgClass: "bg-purple-500/20"}
	nitroBadge        = model.Badge{ID: "nitro", DisplayName: "Nitro", IconRef: "ri-rocket", ColorClass: "text-indigo-400", BgClass: "bg-indigo-500/20"}
)

// DecodeCapabilities returns the capabilities set in flags, in check order.
func DecodeCapabilities(flags uint64) []Capability {
	caps := make([]Capability, 0, len(capabilityChecks))
	for _, c := range capabilityChecks {
		if flags&c.mask != 0 {
			caps = append(caps, c.cap)
		}
	}
	return caps
}

// Badges derives the badge list for a user. The premium badge, if any,
// comes first, followed by capability badges in check order. Flags and tier
// are evaluated independently; nil means absent.
func Badges(flags *uint64, premiumTier *int) []model.Badge {
	badges := []model.Badge{}

	if premiumTier != nil {
		switch *premiumTier {
		case PremiumClassic:
			badges = append(badges, nitroClassicBadge)
		case PremiumNitro, PremiumBasic:
			badges = append(badges, nitroBadge)
		}
	}

	if flags != nil {
		for _, c := range DecodeCapabilities(*flags) {
			badges = append(badges, capabilityBadges[c])
		}
	}

	return badges
}

// String returns the badge id for the capability.
func (c Capability) String() string {
	if b, ok := capabilityBadges[c]; ok {
		return b.ID
	}
	return "unknown"
}
