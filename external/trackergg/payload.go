package trackergg

import (
	"math"
	"strconv"
	"strings"

	"github.com/riskibarqy/lft-board/internal/domain/player"
	"github.com/riskibarqy/lft-board/internal/domain/profile"
)

type profileEnvelope struct {
	Data   profileData     `json:"data"`
	Errors []providerError `json:"errors"`
}

type profileData struct {
	PlatformInfo platformInfo `json:"platformInfo"`
	Segments     []segment    `json:"segments"`
}

type platformInfo struct {
	PlatformSlug           string `json:"platformSlug"`
	PlatformUserIdentifier string `json:"platformUserIdentifier"`
	AvatarURL              string `json:"avatarUrl"`
}

type segment struct {
	Type  string          `json:"type"`
	Stats map[string]stat `json:"stats"`
}

type stat struct {
	Value        any          `json:"value"`
	DisplayValue any          `json:"displayValue"`
	Metadata     statMetadata `json:"metadata"`
}

type statMetadata struct {
	RankName string `json:"rankName"`
}

type providerError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// toExternal reads the first segment carrying each stat.
func (e profileEnvelope) toExternal(requested player.Platform, playerID string, raw []byte) profile.External {
	info := e.Data.PlatformInfo
	platform, ok := player.ParsePlatform(info.PlatformSlug)
	if !ok {
		platform = requested
	}

	return profile.External{
		Platform:    platform,
		Handle:      playerID,
		DisplayName: strings.TrimSpace(info.PlatformUserIdentifier),
		AvatarURL:   strings.TrimSpace(info.AvatarURL),
		RankLabel:   rankLabel(e.Data.Segments),
		Level:       findStat(e.Data.Segments, "level"),
		RankScore:   findStat(e.Data.Segments, "rankScore"),
		Kills:       findStat(e.Data.Segments, "kills"),
		Damage:      findStat(e.Data.Segments, "damage"),
		Raw:         raw,
	}
}

func findStat(segments []segment, key string) profile.Stat {
	for _, seg := range segments {
		s, ok := seg.Stats[key]
		if !ok {
			continue
		}
		if v, ok := numberValue(s.Value); ok {
			return profile.NewStat(v)
		}
		if v, ok := numberValue(s.DisplayValue); ok {
			return profile.NewStat(v)
		}
		return profile.Stat{}
	}
	return profile.Stat{}
}

func rankLabel(segments []segment) string {
	for _, seg := range segments {
		s, ok := seg.Stats["rankScore"]
		if !ok {
			continue
		}
		if name := strings.TrimSpace(s.Metadata.RankName); name != "" {
			return name
		}
		if label, ok := s.DisplayValue.(string); ok {
			return strings.TrimSpace(label)
		}
		return ""
	}
	return ""
}

// numberValue accepts JSON numbers and strings like "12,345".
func numberValue(v any) (int64, bool) {
	switch value := v.(type) {
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, false
		}
		return int64(value), true
	case int64:
		return value, true
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
		if cleaned == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		return int64(parsed), true
	default:
		return 0, false
	}
}
