package httpapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/lft-board/internal/domain/listing"
	"github.com/riskibarqy/lft-board/internal/domain/player"
	"github.com/riskibarqy/lft-board/internal/domain/rank"
	"github.com/riskibarqy/lft-board/internal/usecase"
)

// parseFilterSpec reads board filters from the query string. Empty or "all"
// values leave a selector unconstrained.
func parseFilterSpec(q url.Values) (listing.FilterSpec, error) {
	spec := listing.FilterSpec{
		Title:     strings.TrimSpace(q.Get("title")),
		PlayStyle: strings.TrimSpace(q.Get("play_style")),
		OtherText: strings.TrimSpace(q.Get("other_text")),
	}

	if raw := filterValue(q, "recruit_count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || (n != 1 && n != 2) {
			return listing.FilterSpec{}, invalidFilter("recruit_count", raw)
		}
		spec.RecruitCount = n
	}
	if raw := filterValue(q, "mode"); raw != "" {
		mode, ok := listing.ParseMode(raw)
		if !ok {
			return listing.FilterSpec{}, invalidFilter("mode", raw)
		}
		spec.Mode = mode
	}
	if raw := filterValue(q, "vc"); raw != "" {
		vc, ok := listing.ParseVoiceChat(raw)
		if !ok {
			return listing.FilterSpec{}, invalidFilter("vc", raw)
		}
		spec.VoiceChat = vc
	}
	if raw := filterValue(q, "age_group"); raw != "" {
		group, ok := player.ParseAgeGroup(raw)
		if !ok {
			return listing.FilterSpec{}, invalidFilter("age_group", raw)
		}
		spec.AllowedAgeGroup = group
	}
	if raw := filterValue(q, "owner_age_group"); raw != "" {
		group, ok := player.ParseAgeGroup(raw)
		if !ok {
			return listing.FilterSpec{}, invalidFilter("owner_age_group", raw)
		}
		spec.OwnerAgeGroup = group
	}
	if raw := filterValue(q, "owner_platform"); raw != "" {
		platform, ok := player.ParsePlatform(raw)
		if !ok {
			return listing.FilterSpec{}, invalidFilter("owner_platform", raw)
		}
		spec.OwnerPlatform = platform
	}

	var err error
	if spec.MinRequirementTier, spec.MinRequirementDivision, err = parseRankFilter(q, "min_rank"); err != nil {
		return listing.FilterSpec{}, err
	}
	if spec.CurrentRankTier, spec.CurrentRankDivision, err = parseRankFilter(q, "current_rank"); err != nil {
		return listing.FilterSpec{}, err
	}
	if spec.MaxRankTier, spec.MaxRankDivision, err = parseRankFilter(q, "max_rank"); err != nil {
		return listing.FilterSpec{}, err
	}
	return spec, nil
}

func parseRankFilter(q url.Values, prefix string) (rank.TierFilter, rank.DivisionFilter, error) {
	tierKey, divisionKey := prefix+"_tier", prefix+"_division"

	tier, ok := rank.ParseTierFilter(q.Get(tierKey))
	if !ok {
		return rank.TierFilter{}, rank.DivisionFilter{}, invalidFilter(tierKey, q.Get(tierKey))
	}
	division, ok := rank.ParseDivisionFilter(q.Get(divisionKey))
	if !ok {
		return rank.TierFilter{}, rank.DivisionFilter{}, invalidFilter(divisionKey, q.Get(divisionKey))
	}
	return tier, division, nil
}

func filterValue(q url.Values, key string) string {
	value := strings.TrimSpace(q.Get(key))
	if strings.EqualFold(value, "all") {
		return ""
	}
	return value
}

func invalidFilter(key, value string) error {
	return fmt.Errorf("%w: unsupported %s filter %q", usecase.ErrInvalidInput, key, value)
}
