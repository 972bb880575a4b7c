package rank

import "strings"

// Rank is a tier plus an optional division.
type Rank struct {
	Tier     Tier
	Division Division
}

// New builds a normalized rank. Tiers without divisions never carry one.
func New(tier Tier, division Division) Rank {
	return Rank{Tier: tier, Division: division}.Normalize()
}

// Parse normalizes a tier label and a division label independently.
func Parse(tierLabel, divisionLabel string) Rank {
	return New(NormalizeTier(tierLabel), NormalizeDivision(divisionLabel))
}

func (r Rank) Normalize() Rank {
	if !r.Tier.IsSet() {
		return Rank{}
	}
	if !r.Tier.HasDivisions() || !r.Division.IsSet() {
		return Rank{Tier: r.Tier}
	}
	return r
}

// WithDefaultDivision fills the weakest division for divisioned tiers that
// have none, matching what a player picking only a tier means.
func (r Rank) WithDefaultDivision() Rank {
	r = r.Normalize()
	if r.Tier.HasDivisions() && !r.Division.IsSet() {
		r.Division = lowestDivision
	}
	return r
}

func (r Rank) IsSet() bool {
	return r.Tier.IsSet()
}

// Label renders the rank for display, e.g. "ゴールド 2" or "マスター".
func (r Rank) Label() string {
	r = r.Normalize()
	if !r.Tier.IsSet() {
		return unsetLabel
	}
	if !r.Tier.HasDivisions() || !r.Division.IsSet() {
		return r.Tier.Label()
	}
	return r.Tier.Label() + " " + r.Division.String()
}

// FromExternalLabel reads a free-text rank label from a stat provider such as
// "Diamond IV" or "Apex Predator". The tier is the first tier keyword found in
// weakest-to-strongest order.
func FromExternalLabel(label string) Rank {
	lower := strings.ToLower(strings.TrimSpace(label))
	tier := detectTier(lower)
	if !tier.IsSet() {
		return Rank{}
	}
	if !tier.HasDivisions() {
		return Rank{Tier: tier}
	}

	for _, token := range tokenize(lower) {
		if division, ok := romanDivision(token); ok {
			return Rank{Tier: tier, Division: division}
		}
	}
	return Rank{Tier: tier}
}

func detectTier(lower string) Tier {
	for _, tier := range tierOrder {
		if strings.Contains(lower, string(tier)) || strings.Contains(lower, tierLabels[tier]) {
			return tier
		}
	}
	return TierUnset
}

func romanDivision(token string) (Division, bool) {
	switch token {
	case "i":
		return Division1, true
	case "ii":
		return Division2, true
	case "iii":
		return Division3, true
	case "iv":
		return Division4, true
	default:
		return DivisionUnset, false
	}
}
