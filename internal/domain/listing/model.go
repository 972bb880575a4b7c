package listing

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/lft-board/internal/domain/player"
	"github.com/riskibarqy/lft-board/internal/domain/rank"
)

const (
	MaxTitleLength     = 80
	MaxOtherTextLength = 500
	MinPlayStyles      = 1
	MaxPlayStyles      = 3
	DefaultTitle       = "募集"
)

var (
	ErrIDRequired          = errors.New("listing id is required")
	ErrOwnerRequired       = errors.New("listing owner is required")
	ErrTitleRequired       = errors.New("listing title is required")
	ErrTitleTooLong        = fmt.Errorf("listing title must be at most %d characters", MaxTitleLength)
	ErrInvalidRecruitCount = errors.New("recruit count must be 1 or 2")
	ErrInvalidMode         = errors.New("invalid listing mode")
	ErrInvalidVoiceChat    = errors.New("invalid voice chat mode")
	ErrPlayStyleCount      = fmt.Errorf("play styles must contain %d to %d tags", MinPlayStyles, MaxPlayStyles)
	ErrDuplicatePlayStyle  = errors.New("play styles must be distinct")
	ErrOtherTextTooLong    = fmt.Errorf("other text must be at most %d characters", MaxOtherTextLength)
	ErrInvalidAgeGroup     = errors.New("invalid age group")
	ErrOwnerHasOpenListing = errors.New("owner already holds an open listing")
	ErrAlreadyClosed       = errors.New("listing is already closed")
	ErrNotClosed           = errors.New("listing is not closed")
)

// Mode is the match type a listing recruits for.
type Mode string

const (
	ModeUnset  Mode = ""
	ModeRank   Mode = "rank"
	ModeCasual Mode = "casual"
)

var modeLabels = map[Mode]string{
	ModeRank:   "ランク",
	ModeCasual: "カジュアル",
}

func Modes() []Mode {
	return []Mode{ModeRank, ModeCasual}
}

func ParseMode(raw string) (Mode, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, mode := range Modes() {
		if value == string(mode) || value == modeLabels[mode] {
			return mode, true
		}
	}
	if value == "ranked" {
		return ModeRank, true
	}
	return ModeUnset, false
}

func (m Mode) IsSet() bool {
	_, ok := modeLabels[m]
	return ok
}

func (m Mode) Label() string {
	if label, ok := modeLabels[m]; ok {
		return label
	}
	return "未設定"
}

// VoiceChat is how the squad talks during play.
type VoiceChat string

const (
	VoiceChatUnset   VoiceChat = ""
	VoiceChatGame    VoiceChat = "game"
	VoiceChatDiscord VoiceChat = "discord"
	VoiceChatOff     VoiceChat = "off"
)

var voiceChatLabels = map[VoiceChat]string{
	VoiceChatGame:    "ゲーム内VC",
	VoiceChatDiscord: "Discord",
	VoiceChatOff:     "VCなし",
}

func VoiceChats() []VoiceChat {
	return []VoiceChat{VoiceChatGame, VoiceChatDiscord, VoiceChatOff}
}

func ParseVoiceChat(raw string) (VoiceChat, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, vc := range VoiceChats() {
		if value == string(vc) || value == strings.ToLower(voiceChatLabels[vc]) {
			return vc, true
		}
	}
	return VoiceChatUnset, false
}

func (v VoiceChat) IsSet() bool {
	_, ok := voiceChatLabels[v]
	return ok
}

// RequiresInvite reports whether a selected applicant must receive an
// external voice server invite link.
func (v VoiceChat) RequiresInvite() bool {
	return v == VoiceChatDiscord
}

func (v VoiceChat) Label() string {
	if label, ok := voiceChatLabels[v]; ok {
		return label
	}
	return "未設定"
}

// Listing is one recruiting post.
type Listing struct {
	ID               string
	Title            string
	OwnerUserID      string
	RecruitCount     int
	Mode             Mode
	VoiceChat        VoiceChat
	PlayStyles       []string
	MinRequirement   rank.Rank
	AllowedAgeGroups []player.AgeGroup
	OtherText        string
	CurrentRank      rank.Rank
	MaxRank          rank.Rank
	OwnerAgeGroup    player.AgeGroup
	OwnerPlatform    player.Platform
	IsClosed         bool
	WinnerUserID     string
	ApplicationCount int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DisplayTitle is the title used in notice snapshots.
func (l Listing) DisplayTitle() string {
	if title := strings.TrimSpace(l.Title); title != "" {
		return title
	}
	return DefaultTitle
}

// IsOwnedBy reports whether userID owns the listing.
func (l Listing) IsOwnedBy(userID string) bool {
	return userID != "" && l.OwnerUserID == userID
}

// AllowsAgeGroup reports whether an applicant of the given age group is
// welcome. An empty allowed set is unrestricted.
func (l Listing) AllowsAgeGroup(group player.AgeGroup) bool {
	if len(l.AllowedAgeGroups) == 0 {
		return true
	}
	for _, allowed := range l.AllowedAgeGroups {
		if allowed == group {
			return true
		}
	}
	return false
}

func (l Listing) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return ErrIDRequired
	}
	if strings.TrimSpace(l.OwnerUserID) == "" {
		return ErrOwnerRequired
	}
	if strings.TrimSpace(l.Title) == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(l.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if l.RecruitCount != 1 && l.RecruitCount != 2 {
		return ErrInvalidRecruitCount
	}
	if !l.Mode.IsSet() {
		return ErrInvalidMode
	}
	if !l.VoiceChat.IsSet() {
		return ErrInvalidVoiceChat
	}
	if err := ValidatePlayStyles(l.PlayStyles); err != nil {
		return err
	}
	if utf8.RuneCountInString(l.OtherText) > MaxOtherTextLength {
		return ErrOtherTextTooLong
	}
	for _, group := range l.AllowedAgeGroups {
		if !group.IsSet() {
			return ErrInvalidAgeGroup
		}
	}
	if l.OwnerAgeGroup != player.AgeGroupUnset && !l.OwnerAgeGroup.IsSet() {
		return ErrInvalidAgeGroup
	}

	return nil
}

// ValidatePlayStyles checks count and distinctness of tag names.
func ValidatePlayStyles(styles []string) error {
	if len(styles) < MinPlayStyles || len(styles) > MaxPlayStyles {
		return ErrPlayStyleCount
	}
	seen := make(map[string]struct{}, len(styles))
	for _, style := range styles {
		name := strings.TrimSpace(style)
		if name == "" {
			return ErrPlayStyleCount
		}
		if _, ok := seen[name]; ok {
			return ErrDuplicatePlayStyle
		}
		seen[name] = struct{}{}
	}
	return nil
}
