package rank

// RequirementScore encodes a rank as a monotonic integer. Unset scores 0.
// Otherwise it is (tierIndex+1)*10 plus a division strength of 4 for division
// 1 down to 1 for division 4; an unset division counts as division 4 and tiers
// without divisions add nothing.
func RequirementScore(tier Tier, division Division) int {
	idx := tier.Index()
	if idx < 0 {
		return 0
	}
	base := (idx + 1) * 10
	if !tier.HasDivisions() {
		return base
	}
	return base + int(lowestDivision+1-division.clamp())
}

func (r Rank) Score() int {
	return RequirementScore(r.Tier, r.Division)
}

// MeetsMinimum reports whether candidate is at least as strong as threshold.
// An unset threshold places no restriction.
func MeetsMinimum(candidate, threshold Rank) bool {
	if !threshold.Tier.IsSet() {
		return true
	}
	return candidate.Score() >= threshold.Score()
}
