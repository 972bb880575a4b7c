package rank

import "testing"

func TestRequirementScore_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tier     Tier
		division Division
		want     int
	}{
		{name: "unset", tier: TierUnset, division: Division1, want: 0},
		{name: "bronze 4", tier: TierBronze, division: Division4, want: 11},
		{name: "bronze 1", tier: TierBronze, division: Division1, want: 14},
		{name: "gold 2", tier: TierGold, division: Division2, want: 33},
		{name: "gold without division counts as 4", tier: TierGold, division: DivisionUnset, want: 31},
		{name: "diamond 1", tier: TierDiamond, division: Division1, want: 54},
		{name: "master ignores division", tier: TierMaster, division: Division1, want: 60},
		{name: "predator", tier: TierPredator, division: DivisionUnset, want: 70},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RequirementScore(tc.tier, tc.division); got != tc.want {
				t.Fatalf("score: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestRequirementScore_Monotonic(t *testing.T) {
	t.Parallel()

	divisions := []Division{Division1, Division2, Division3, Division4}
	tiers := Tiers()
	for i := 1; i < len(tiers); i++ {
		lower, higher := tiers[i-1], tiers[i]
		for _, ld := range divisions {
			for _, hd := range divisions {
				if RequirementScore(higher, hd) <= RequirementScore(lower, ld) {
					t.Fatalf("%s %d should outscore %s %d", higher, hd, lower, ld)
				}
			}
		}
	}

	for _, tier := range tiers {
		if !tier.HasDivisions() {
			continue
		}
		for i := 1; i < len(divisions); i++ {
			if RequirementScore(tier, divisions[i-1]) <= RequirementScore(tier, divisions[i]) {
				t.Fatalf("%s division %d should outscore division %d", tier, divisions[i-1], divisions[i])
			}
		}
	}
}

func TestMeetsMinimum(t *testing.T) {
	t.Parallel()

	for _, tier := range append(Tiers(), TierUnset) {
		for _, division := range []Division{DivisionUnset, Division1, Division4} {
			if !MeetsMinimum(New(tier, division), Rank{}) {
				t.Fatalf("unset threshold must always pass for %s %d", tier, division)
			}
		}
	}

	if !MeetsMinimum(New(TierGold, Division1), New(TierGold, Division3)) {
		t.Fatalf("gold 1 should meet gold 3")
	}
	if MeetsMinimum(New(TierGold, Division3), New(TierGold, Division1)) {
		t.Fatalf("gold 3 should not meet gold 1")
	}
	if MeetsMinimum(Rank{}, New(TierBronze, Division4)) {
		t.Fatalf("unset candidate should not meet bronze 4")
	}
	if !MeetsMinimum(New(TierMaster, DivisionUnset), New(TierDiamond, Division1)) {
		t.Fatalf("master should meet diamond 1")
	}
}
