package profile

import (
	"errors"
	"strings"
	"time"

	"github.com/riskibarqy/lft-board/internal/domain/player"
	"github.com/riskibarqy/lft-board/internal/domain/rank"
)

var ErrUserIDRequired = errors.New("profile user id is required")

// Stat is an optional numeric counter reported by the stat source.
type Stat struct {
	Value int64
	Valid bool
}

func NewStat(v int64) Stat {
	return Stat{Value: v, Valid: true}
}

// Ptr exposes the stat as a nullable value for storage and JSON.
func (s Stat) Ptr() *int64 {
	if !s.Valid {
		return nil
	}
	v := s.Value
	return &v
}

func StatFromPtr(v *int64) Stat {
	if v == nil {
		return Stat{}
	}
	return NewStat(*v)
}

// Profile holds the rank and stat-source linkage stored for one user.
type Profile struct {
	UserID          string
	TrackerPlatform player.Platform
	TrackerHandle   string
	DisplayName     string
	AvatarURL       string
	CurrentRank     rank.Rank
	MaxRank         rank.Rank
	Level           Stat
	RankScore       Stat
	Kills           Stat
	Damage          Stat
	AgeGroup        player.AgeGroup
	TrackerRaw      []byte
	UpdatedAt       time.Time
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrUserIDRequired
	}
	return nil
}

// External is the normalized subset of a stat-source profile.
type External struct {
	Platform     player.Platform
	Handle       string
	DisplayName  string
	AvatarURL    string
	RankLabel    string
	MaxRankLabel string
	Level        Stat
	RankScore    Stat
	Kills        Stat
	Damage       Stat
	Raw          []byte
}

// ToInternalRank maps the free-text current rank label into the rank domain.
func ToInternalRank(ext External) rank.Rank {
	return rank.FromExternalLabel(ext.RankLabel)
}

// ToInternalMaxRank maps the max rank label when the source provides one.
func ToInternalMaxRank(ext External) rank.Rank {
	return rank.FromExternalLabel(ext.MaxRankLabel)
}

// ApplyExternal overlays stat-source fields onto p. The age group and any
// rank the source does not report are kept.
func (p Profile) ApplyExternal(ext External) Profile {
	p.TrackerPlatform = ext.Platform
	p.TrackerHandle = ext.Handle
	p.DisplayName = ext.DisplayName
	p.AvatarURL = ext.AvatarURL
	if current := ToInternalRank(ext); current.IsSet() {
		p.CurrentRank = current
	}
	if maxRank := ToInternalMaxRank(ext); maxRank.IsSet() {
		p.MaxRank = maxRank
	}
	p.Level = ext.Level
	p.RankScore = ext.RankScore
	p.Kills = ext.Kills
	p.Damage = ext.Damage
	p.TrackerRaw = ext.Raw
	return p
}

// ListingDefaults is the part of a new listing pre-filled from a profile.
type ListingDefaults struct {
	CurrentRank rank.Rank
	MaxRank     rank.Rank
	AgeGroup    player.AgeGroup
	Platform    player.Platform
}

// DefaultsFor projects stored profile fields into listing defaults. Missing
// or unrecognized values stay unset.
func DefaultsFor(p Profile) ListingDefaults {
	out := ListingDefaults{
		CurrentRank: p.CurrentRank.Normalize(),
		MaxRank:     p.MaxRank.Normalize(),
	}
	if p.AgeGroup.IsSet() {
		out.AgeGroup = p.AgeGroup
	}
	if p.TrackerPlatform.IsSet() {
		out.Platform = p.TrackerPlatform
	}
	return out
}
