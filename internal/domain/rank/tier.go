package rank

import "strings"

// Tier is one of the ordered skill bands. The zero value means no tier is set.
type Tier string

const (
	TierUnset    Tier = ""
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
	TierMaster   Tier = "master"
	TierPredator Tier = "predator"
)

const unsetLabel = "未設定"

var tierOrder = [...]Tier{
	TierBronze,
	TierSilver,
	TierGold,
	TierPlatinum,
	TierDiamond,
	TierMaster,
	TierPredator,
}

var tierLabels = map[Tier]string{
	TierBronze:   "ブロンズ",
	TierSilver:   "シルバー",
	TierGold:     "ゴールド",
	TierPlatinum: "プラチナ",
	TierDiamond:  "ダイヤ",
	TierMaster:   "マスター",
	TierPredator: "プレデター",
}

var tierAliases = map[string]Tier{
	"plat":          TierPlatinum,
	"dia":           TierDiamond,
	"pred":          TierPredator,
	"apex predator": TierPredator,
	"ダイヤモンド":        TierDiamond,
}

var tiersBySurface = buildTierSurfaceIndex()

func buildTierSurfaceIndex() map[string]Tier {
	out := make(map[string]Tier, len(tierOrder)*2+len(tierAliases))
	for _, tier := range tierOrder {
		out[string(tier)] = tier
		out[tierLabels[tier]] = tier
	}
	for alias, tier := range tierAliases {
		out[alias] = tier
	}
	return out
}

// Tiers returns every tier from weakest to strongest.
func Tiers() []Tier {
	out := make([]Tier, len(tierOrder))
	copy(out, tierOrder[:])
	return out
}

// NormalizeTier maps a canonical key, a localized label or a known alias to
// its tier. Unrecognized input yields TierUnset.
func NormalizeTier(label string) Tier {
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" {
		return TierUnset
	}
	return tiersBySurface[key]
}

// Index is the zero-based position in the tier order, or -1 when unset.
func (t Tier) Index() int {
	for i, candidate := range tierOrder {
		if candidate == t {
			return i
		}
	}
	return -1
}

func (t Tier) IsSet() bool {
	return t.Index() >= 0
}

// HasDivisions reports whether the tier is split into divisions 1..4.
func (t Tier) HasDivisions() bool {
	switch t {
	case TierBronze, TierSilver, TierGold, TierPlatinum, TierDiamond:
		return true
	default:
		return false
	}
}

func (t Tier) Label() string {
	if label, ok := tierLabels[t]; ok {
		return label
	}
	return unsetLabel
}

func (t Tier) String() string {
	return string(t)
}
