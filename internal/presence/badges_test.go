package presence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devraikou/portfolio/internal/model"
)

func u64(v uint64) *uint64 { return &v }
func intp(v int) *int      { return &v }

func badgeIDs(badges []model.Badge) []string {
	ids := make([]string, 0, len(badges))
	for _, b := range badges {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestBadges_BothAbsent(t *testing.T) {
	got := Badges(nil, nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBadges_PremiumTiers(t *testing.T) {
	tests := []struct {
		name string
		tier *int
		want []string
	}{
		{"absent", nil, []string{}},
		{"none", intp(PremiumNone), []string{}},
		{"classic", intp(PremiumClassic), []string{"nitro_classic"}},
		{"nitro", intp(PremiumNitro), []string{"nitro"}},
		{"basic collapses to nitro", intp(PremiumBasic), []string{"nitro"}},
		{"unknown tier ignored", intp(7), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, badgeIDs(Badges(nil, tt.tier)))
		})
	}
}

func TestBadges_Tier2And3Identical(t *testing.T) {
	assert.Equal(t, Badges(nil, intp(2)), Badges(nil, intp(3)))
	assert.NotEqual(t, Badges(nil, intp(1)), Badges(nil, intp(2)))
}

func TestBadges_SingleFlags(t *testing.T) {
	tests := []struct {
		bit  uint
		want string
	}{
		{0, "staff"},
		{1, "partner"},
		{2, "hypesquad"},
		{3, "bug_hunter"},
		{6, "bravery"},
		{7, "brilliance"},
		{8, "balance"},
		{9, "early_supporter"},
		{14, "bug_hunter"},
		{22, "active_dev"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := Badges(u64(1<<tt.bit), nil)
			assert.Equal(t, []string{tt.want}, badgeIDs(got))
		})
	}
}

func TestBadges_UnknownBitsIgnored(t *testing.T) {
	// team user, verified bot, certified moderator, bot http interactions
	flags := uint64(1<<10 | 1<<16 | 1<<17 | 1<<18 | 1<<19)
	assert.Empty(t, Badges(u64(flags), nil))
}

func TestBadges_BugHunterLevelsCollapse(t *testing.T) {
	both := Badges(u64(1<<3|1<<14), nil)
	require.Len(t, both, 1)
	assert.Equal(t, "Bug Hunter", both[0].DisplayName)

	assert.Equal(t, Badges(u64(1<<3), nil), both)
	assert.Equal(t, Badges(u64(1<<14), nil), both)
}

func TestBadges_FixedOrder(t *testing.T) {
	// Every known bit, plus premium. Output follows check order, not bit order
	// (bug hunter level 1 is bit 3 but comes after early supporter).
	all := uint64(1<<0 | 1<<1 | 1<<2 | 1<<3 | 1<<6 | 1<<7 | 1<<8 | 1<<9 | 1<<14 | 1<<22)

	got := badgeIDs(Badges(u64(all), intp(PremiumNitro)))

	assert.Equal(t, []string{
		"nitro",
		"staff",
		"partner",
		"hypesquad",
		"bravery",
		"brilliance",
		"balance",
		"early_supporter",
		"bug_hunter",
		"active_dev",
	}, got)
}

func TestBadges_Deterministic(t *testing.T) {
	flags := u64(1<<22 | 1<<7 | 1<<3)
	first := Badges(flags, intp(PremiumClassic))
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Badges(flags, intp(PremiumClassic)))
	}
}

func TestBadges_FlagsAndPremiumIndependent(t *testing.T) {
	// Zero flags still yields the premium badge; zero premium still yields flags.
	assert.Equal(t, []string{"nitro_classic"}, badgeIDs(Badges(u64(0), intp(PremiumClassic))))
	assert.Equal(t, []string{"active_dev"}, badgeIDs(Badges(u64(1<<22), intp(PremiumNone))))
}

func TestDecodeCapabilities(t *testing.T) {
	got := DecodeCapabilities(1<<7 | 1<<14 | 1<<3 | 1<<0)
	assert.Equal(t, []Capability{CapEmployee, CapHouseBrilliance, CapBugHunter}, got)
	assert.Empty(t, DecodeCapabilities(0))
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "active_dev", CapActiveDeveloper.String())
	assert.Equal(t, "unknown", Capability(99).String())
}
