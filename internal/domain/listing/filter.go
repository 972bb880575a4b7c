package listing

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/lft-board/internal/domain/player"
	"github.com/riskibarqy/lft-board/internal/domain/rank"
)

// FilterSpec narrows the board. The zero value matches every listing.
type FilterSpec struct {
	Title                  string
	RecruitCount           int
	Mode                   Mode
	MinRequirementTier     rank.TierFilter
	MinRequirementDivision rank.DivisionFilter
	VoiceChat              VoiceChat
	AllowedAgeGroup        player.AgeGroup
	PlayStyle              string
	OtherText              string
	CurrentRankTier        rank.TierFilter
	CurrentRankDivision    rank.DivisionFilter
	MaxRankTier            rank.TierFilter
	MaxRankDivision        rank.DivisionFilter
	OwnerAgeGroup          player.AgeGroup
	OwnerPlatform          player.Platform
}

type predicate func(Listing, FilterSpec) bool

var predicates = []predicate{
	matchTitle,
	matchRecruitCount,
	matchMode,
	matchMinRequirement,
	matchVoiceChat,
	matchAllowedAgeGroup,
	matchPlayStyle,
	matchOtherText,
	matchCurrentRank,
	matchMaxRank,
	matchOwnerAgeGroup,
	matchOwnerPlatform,
}

// Matches applies every predicate of spec to l.
func (spec FilterSpec) Matches(l Listing) bool {
	for _, p := range predicates {
		if !p(l, spec) {
			return false
		}
	}
	return true
}

// Filter returns the visible listings matching spec. Listings owned by
// viewerID come first; the input order is kept otherwise.
func Filter(listings []Listing, spec FilterSpec, viewerID string, now time.Time, window time.Duration) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if !l.IsVisible(now, window) {
			continue
		}
		if spec.Matches(l) {
			out = append(out, l)
		}
	}

	if viewerID != "" {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].IsOwnedBy(viewerID) && !out[j].IsOwnedBy(viewerID)
		})
	}
	return out
}

func containsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func matchTitle(l Listing, spec FilterSpec) bool {
	return containsFold(l.Title, spec.Title)
}

func matchRecruitCount(l Listing, spec FilterSpec) bool {
	return spec.RecruitCount == 0 || l.RecruitCount == spec.RecruitCount
}

func matchMode(l Listing, spec FilterSpec) bool {
	return spec.Mode == ModeUnset || l.Mode == spec.Mode
}

func matchMinRequirement(l Listing, spec FilterSpec) bool {
	return rank.MatchesRequirementFilter(l.MinRequirement, spec.MinRequirementTier, spec.MinRequirementDivision)
}

func matchVoiceChat(l Listing, spec FilterSpec) bool {
	return spec.VoiceChat == VoiceChatUnset || l.VoiceChat == spec.VoiceChat
}

func matchAllowedAgeGroup(l Listing, spec FilterSpec) bool {
	if spec.AllowedAgeGroup == player.AgeGroupUnset {
		return true
	}
	return slices.Contains(l.AllowedAgeGroups, spec.AllowedAgeGroup)
}

func matchPlayStyle(l Listing, spec FilterSpec) bool {
	style := strings.TrimSpace(spec.PlayStyle)
	return style == "" || slices.Contains(l.PlayStyles, style)
}

func matchOtherText(l Listing, spec FilterSpec) bool {
	return containsFold(l.OtherText, spec.OtherText)
}

func matchCurrentRank(l Listing, spec FilterSpec) bool {
	return rank.ExactMatches(l.CurrentRank, spec.CurrentRankTier, spec.CurrentRankDivision)
}

func matchMaxRank(l Listing, spec FilterSpec) bool {
	return rank.ExactMatches(l.MaxRank, spec.MaxRankTier, spec.MaxRankDivision)
}

func matchOwnerAgeGroup(l Listing, spec FilterSpec) bool {
	return spec.OwnerAgeGroup == player.AgeGroupUnset || l.OwnerAgeGroup == spec.OwnerAgeGroup
}

func matchOwnerPlatform(l Listing, spec FilterSpec) bool {
	return spec.OwnerPlatform == player.PlatformUnset || l.OwnerPlatform == spec.OwnerPlatform
}
