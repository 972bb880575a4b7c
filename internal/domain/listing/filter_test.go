package listing

import (
	"testing"
	"time"

	"github.com/riskibarqy/lft-board/internal/domain/player"
	"github.com/riskibarqy/lft-board/internal/domain/rank"
)

var filterNow = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

func boardFixture() []Listing {
	fresh := filterNow.Add(-10 * time.Minute)
	return []Listing{
		{
			ID: "a", Title: "Gold grind", OwnerUserID: "u-a", RecruitCount: 2, Mode: ModeRank, VoiceChat: VoiceChatDiscord,
			PlayStyles: []string{"ガチ"}, MinRequirement: rank.New(rank.TierGold, rank.Division2),
			AllowedAgeGroups: []player.AgeGroup{player.AgeGroup20s, player.AgeGroup30s}, OtherText: "夜だけ",
			CurrentRank: rank.New(rank.TierPlatinum, rank.Division4), MaxRank: rank.New(rank.TierDiamond, rank.Division1),
			OwnerAgeGroup: player.AgeGroup20s, OwnerPlatform: player.PlatformOrigin, CreatedAt: fresh,
		},
		{
			ID: "b", Title: "のんびり casual", OwnerUserID: "u-b", RecruitCount: 1, Mode: ModeCasual, VoiceChat: VoiceChatOff,
			PlayStyles: []string{"エンジョイ"}, OwnerAgeGroup: player.AgeGroup30s, OwnerPlatform: player.PlatformPSN, CreatedAt: fresh,
		},
		{
			ID: "c", Title: "Pred push", OwnerUserID: "viewer", RecruitCount: 2, Mode: ModeRank, VoiceChat: VoiceChatGame,
			PlayStyles: []string{"ガチ", "キル重視"}, MinRequirement: rank.New(rank.TierMaster, rank.DivisionUnset),
			CurrentRank: rank.New(rank.TierMaster, rank.DivisionUnset), MaxRank: rank.New(rank.TierPredator, rank.DivisionUnset),
			OwnerAgeGroup: player.AgeGroup10s, OwnerPlatform: player.PlatformXbox, CreatedAt: fresh,
		},
		{
			ID: "closed", Title: "done", OwnerUserID: "u-d", RecruitCount: 1, Mode: ModeRank, VoiceChat: VoiceChatGame,
			PlayStyles: []string{"ガチ"}, IsClosed: true, WinnerUserID: "u-x", CreatedAt: fresh,
		},
		{
			ID: "expired", Title: "old", OwnerUserID: "u-e", RecruitCount: 1, Mode: ModeRank, VoiceChat: VoiceChatGame,
			PlayStyles: []string{"ガチ"}, CreatedAt: filterNow.Add(-DefaultExpiryWindow - time.Millisecond),
		},
		{
			ID: "almost-expired", Title: "last call", OwnerUserID: "u-f", RecruitCount: 1, Mode: ModeRank, VoiceChat: VoiceChatGame,
			PlayStyles: []string{"ガチ"}, CreatedAt: filterNow.Add(-DefaultExpiryWindow + time.Millisecond),
		},
	}
}

func ids(items []Listing) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func sameIDs(got []Listing, want ...string) bool {
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		return false
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			return false
		}
	}
	return true
}

func TestFilter_WildcardSpecKeepsVisibleOnly(t *testing.T) {
	t.Parallel()

	got := Filter(boardFixture(), FilterSpec{}, "", filterNow, DefaultExpiryWindow)
	if !sameIDs(got, "a", "b", "c", "almost-expired") {
		t.Fatalf("unexpected ids: %v", ids(got))
	}
}

func TestFilter_ViewerListingsFirstStable(t *testing.T) {
	t.Parallel()

	got := Filter(boardFixture(), FilterSpec{}, "viewer", filterNow, DefaultExpiryWindow)
	if !sameIDs(got, "c", "a", "b", "almost-expired") {
		t.Fatalf("unexpected ids: %v", ids(got))
	}
}

func TestFilter_Predicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec FilterSpec
		want []string
	}{
		{name: "title case insensitive", spec: FilterSpec{Title: "GOLD"}, want: []string{"a"}},
		{name: "recruit count", spec: FilterSpec{RecruitCount: 1}, want: []string{"b", "almost-expired"}},
		{name: "mode", spec: FilterSpec{Mode: ModeCasual}, want: []string{"b"}},
		{name: "voice chat", spec: FilterSpec{VoiceChat: VoiceChatGame}, want: []string{"c", "almost-expired"}},
		{name: "allowed age group membership", spec: FilterSpec{AllowedAgeGroup: player.AgeGroup30s}, want: []string{"a"}},
		{name: "play style", spec: FilterSpec{PlayStyle: "キル重視"}, want: []string{"c"}},
		{name: "other text", spec: FilterSpec{OtherText: "夜"}, want: []string{"a"}},
		{name: "owner platform", spec: FilterSpec{OwnerPlatform: player.PlatformPSN}, want: []string{"b"}},
		{name: "owner age group", spec: FilterSpec{OwnerAgeGroup: player.AgeGroup10s}, want: []string{"c"}},
		{name: "min requirement none", spec: FilterSpec{MinRequirementTier: rank.NoTier()}, want: []string{"b", "almost-expired"}},
		{
			name: "min requirement threshold gold any",
			spec: FilterSpec{MinRequirementTier: rank.ExactTier(rank.TierGold)},
			want: []string{"a", "c"},
		},
		{
			name: "min requirement threshold gold 1",
			spec: FilterSpec{MinRequirementTier: rank.ExactTier(rank.TierGold), MinRequirementDivision: rank.ExactDivision(rank.Division1)},
			want: []string{"c"},
		},
		{
			name: "current rank exact with division",
			spec: FilterSpec{CurrentRankTier: rank.ExactTier(rank.TierPlatinum), CurrentRankDivision: rank.ExactDivision(rank.Division4)},
			want: []string{"a"},
		},
		{
			name: "max rank predator ignores division",
			spec: FilterSpec{MaxRankTier: rank.ExactTier(rank.TierPredator), MaxRankDivision: rank.ExactDivision(rank.Division2)},
			want: []string{"c"},
		},
		{name: "max rank none", spec: FilterSpec{MaxRankTier: rank.NoTier()}, want: []string{"b", "almost-expired"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(boardFixture(), tc.spec, "", filterNow, DefaultExpiryWindow)
			if !sameIDs(got, tc.want...) {
				t.Fatalf("unexpected ids: got=%v want=%v", ids(got), tc.want)
			}
		})
	}
}

func TestFilter_PredicateOrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	spec := FilterSpec{
		RecruitCount:       2,
		Mode:               ModeRank,
		PlayStyle:          "ガチ",
		MinRequirementTier: rank.ExactTier(rank.TierGold),
	}
	items := boardFixture()

	combined := Filter(items, spec, "", filterNow, DefaultExpiryWindow)

	// Narrow one field at a time in reverse order.
	stepwise := Filter(items, FilterSpec{MinRequirementTier: spec.MinRequirementTier}, "", filterNow, DefaultExpiryWindow)
	stepwise = Filter(stepwise, FilterSpec{PlayStyle: spec.PlayStyle}, "", filterNow, DefaultExpiryWindow)
	stepwise = Filter(stepwise, FilterSpec{Mode: spec.Mode}, "", filterNow, DefaultExpiryWindow)
	stepwise = Filter(stepwise, FilterSpec{RecruitCount: spec.RecruitCount}, "", filterNow, DefaultExpiryWindow)

	if !sameIDs(stepwise, ids(combined)...) {
		t.Fatalf("order dependent result: combined=%v stepwise=%v", ids(combined), ids(stepwise))
	}
	if !sameIDs(combined, "a", "c") {
		t.Fatalf("unexpected combined ids: %v", ids(combined))
	}
}
