package player

import "strings"

// AgeGroup is the self-reported age band of a player.
type AgeGroup string

const (
	AgeGroupUnset AgeGroup = ""
	AgeGroup10s   AgeGroup = "10s"
	AgeGroup20s   AgeGroup = "20s"
	AgeGroup30s   AgeGroup = "30s"
	AgeGroup40s   AgeGroup = "40s"
)

var ageGroupLabels = map[AgeGroup]string{
	AgeGroup10s: "10代",
	AgeGroup20s: "20代",
	AgeGroup30s: "30代",
	AgeGroup40s: "40代以上",
}

// AgeGroups returns every age group from youngest to oldest.
func AgeGroups() []AgeGroup {
	return []AgeGroup{AgeGroup10s, AgeGroup20s, AgeGroup30s, AgeGroup40s}
}

// ParseAgeGroup accepts the canonical key or the localized label.
func ParseAgeGroup(raw string) (AgeGroup, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, group := range AgeGroups() {
		if value == string(group) || value == ageGroupLabels[group] {
			return group, true
		}
	}
	return AgeGroupUnset, false
}

func (a AgeGroup) IsSet() bool {
	_, ok := ageGroupLabels[a]
	return ok
}

func (a AgeGroup) Label() string {
	if label, ok := ageGroupLabels[a]; ok {
		return label
	}
	return unsetLabel
}

func (a AgeGroup) String() string {
	return string(a)
}

// Platform is the network a player plays on.
type Platform string

const (
	PlatformUnset  Platform = ""
	PlatformOrigin Platform = "origin"
	PlatformXbox   Platform = "xbl"
	PlatformPSN    Platform = "psn"
)

const unsetLabel = "未設定"

var platformLabels = map[Platform]string{
	PlatformOrigin: "PC (Origin/EA app)",
	PlatformXbox:   "Xbox",
	PlatformPSN:    "PlayStation",
}

var platformAliases = map[string]Platform{
	"origin":      PlatformOrigin,
	"pc":          PlatformOrigin,
	"ea":          PlatformOrigin,
	"steam":       PlatformOrigin,
	"xbl":         PlatformXbox,
	"xbox":        PlatformXbox,
	"psn":         PlatformPSN,
	"ps":          PlatformPSN,
	"ps4":         PlatformPSN,
	"ps5":         PlatformPSN,
	"playstation": PlatformPSN,
}

func Platforms() []Platform {
	return []Platform{PlatformOrigin, PlatformXbox, PlatformPSN}
}

// ParsePlatform accepts the canonical key, the display label or a known alias.
func ParsePlatform(raw string) (Platform, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if platform, ok := platformAliases[value]; ok {
		return platform, true
	}
	for platform, label := range platformLabels {
		if value == strings.ToLower(label) {
			return platform, true
		}
	}
	return PlatformUnset, false
}

func (p Platform) IsSet() bool {
	_, ok := platformLabels[p]
	return ok
}

func (p Platform) Label() string {
	if label, ok := platformLabels[p]; ok {
		return label
	}
	return unsetLabel
}

func (p Platform) String() string {
	return string(p)
}
