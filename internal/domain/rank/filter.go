package rank

import (
	"strconv"
	"strings"
)

type TierFilterKind uint8

const (
	TierFilterAny TierFilterKind = iota
	TierFilterNone
	TierFilterExact
)

// TierFilter selects ranks by tier: any tier, no tier at all, or one tier.
type TierFilter struct {
	Kind TierFilterKind
	Tier Tier
}

// DivisionFilter selects one division unless Any is set.
type DivisionFilter struct {
	Any      bool
	Division Division
}

func AnyTier() TierFilter {
	return TierFilter{Kind: TierFilterAny}
}

func NoTier() TierFilter {
	return TierFilter{Kind: TierFilterNone}
}

func ExactTier(tier Tier) TierFilter {
	if !tier.IsSet() {
		return NoTier()
	}
	return TierFilter{Kind: TierFilterExact, Tier: tier}
}

func AnyDivision() DivisionFilter {
	return DivisionFilter{Any: true}
}

func ExactDivision(division Division) DivisionFilter {
	if !division.IsSet() {
		return AnyDivision()
	}
	return DivisionFilter{Division: division}
}

// ParseTierFilter accepts "all" (or empty), "none", or any tier surface label.
func ParseTierFilter(raw string) (TierFilter, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "all":
		return AnyTier(), true
	case "none":
		return NoTier(), true
	}
	tier := NormalizeTier(value)
	if !tier.IsSet() {
		return TierFilter{}, false
	}
	return ExactTier(tier), true
}

// ParseDivisionFilter accepts "all" (or empty) or a division marker.
func ParseDivisionFilter(raw string) (DivisionFilter, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" || value == "all" {
		return AnyDivision(), true
	}
	if n, err := strconv.Atoi(value); err == nil {
		division := DivisionFromInt(n)
		if !division.IsSet() {
			return DivisionFilter{}, false
		}
		return ExactDivision(division), true
	}
	division := NormalizeDivision(value)
	if !division.IsSet() {
		return DivisionFilter{}, false
	}
	return ExactDivision(division), true
}

func (f TierFilter) String() string {
	switch f.Kind {
	case TierFilterNone:
		return "none"
	case TierFilterExact:
		return f.Tier.String()
	default:
		return "all"
	}
}

func (f DivisionFilter) String() string {
	if f.Any || !f.Division.IsSet() {
		return "all"
	}
	return f.Division.String()
}

// MatchesRequirementFilter applies threshold semantics to a listing's minimum
// rank requirement. "none" matches only listings without a requirement. With
// any division the threshold is the weakest division of the tier.
func MatchesRequirementFilter(requirement Rank, tierFilter TierFilter, divisionFilter DivisionFilter) bool {
	switch tierFilter.Kind {
	case TierFilterAny:
		return true
	case TierFilterNone:
		return requirement.Score() == 0
	}

	division := lowestDivision
	if !divisionFilter.Any && divisionFilter.Division.IsSet() {
		division = divisionFilter.Division
	}
	threshold := New(tierFilter.Tier, division)
	return requirement.Score() >= threshold.Score()
}

// ExactMatches applies exact semantics used for displayed current and max
// ranks. Division is ignored for wildcard division filters and for tiers that
// have no divisions.
func ExactMatches(r Rank, tierFilter TierFilter, divisionFilter DivisionFilter) bool {
	r = r.Normalize()

	switch tierFilter.Kind {
	case TierFilterAny:
	case TierFilterNone:
		if r.Tier.IsSet() {
			return false
		}
	default:
		if r.Tier != tierFilter.Tier {
			return false
		}
	}

	if divisionFilter.Any || !divisionFilter.Division.IsSet() {
		return true
	}
	if !r.Tier.IsSet() || !r.Tier.HasDivisions() {
		return true
	}
	return r.Division == divisionFilter.Division
}
