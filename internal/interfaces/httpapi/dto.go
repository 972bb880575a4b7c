package httpapi

import (
	"time"

	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
	"github.com/riskibarqy/lft-board/internal/domain/profile"
	"github.com/riskibarqy/lft-board/internal/domain/rank"
	"github.com/riskibarqy/lft-board/internal/domain/resultnotice"
	"github.com/riskibarqy/lft-board/internal/usecase"
)

type rankDTO struct {
	Tier     string `json:"tier"`
	Division int    `json:"division"`
	Label    string `json:"label"`
}

type listingDTO struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	OwnerUserID      string   `json:"owner_user_id"`
	RecruitCount     int      `json:"recruit_count"`
	Mode             string   `json:"mode"`
	ModeLabel        string   `json:"mode_label"`
	VoiceChat        string   `json:"vc"`
	VoiceChatLabel   string   `json:"vc_label"`
	PlayStyles       []string `json:"play_styles"`
	MinRequirement   rankDTO  `json:"min_requirement"`
	AllowedAgeGroups []string `json:"allowed_age_groups"`
	OtherText        string   `json:"other_text,omitempty"`
	CurrentRank      rankDTO  `json:"current_rank"`
	MaxRank          rankDTO  `json:"max_rank"`
	OwnerAgeGroup    string   `json:"owner_age_group,omitempty"`
	OwnerPlatform    string   `json:"owner_platform,omitempty"`
	IsClosed         bool     `json:"is_closed"`
	WinnerUserID     string   `json:"winner_user_id,omitempty"`
	ApplicationCount int      `json:"application_count"`
	State            string   `json:"state"`
	ExpiresAt        string   `json:"expires_at"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

type applicationDTO struct {
	ID              string `json:"id"`
	ListingID       string `json:"listing_id"`
	ApplicantUserID string `json:"applicant_user_id"`
	CreatedAt       string `json:"created_at"`
}

type applicantDTO struct {
	applicationDTO
	Profile *profileDTO `json:"profile,omitempty"`
}

type profileDTO struct {
	UserID          string  `json:"user_id"`
	TrackerPlatform string  `json:"tracker_platform,omitempty"`
	TrackerHandle   string  `json:"tracker_handle,omitempty"`
	DisplayName     string  `json:"display_name,omitempty"`
	AvatarURL       string  `json:"avatar_url,omitempty"`
	CurrentRank     rankDTO `json:"current_rank"`
	MaxRank         rankDTO `json:"max_rank"`
	Level           *int64  `json:"level"`
	RankScore       *int64  `json:"rank_score"`
	Kills           *int64  `json:"kills"`
	Damage          *int64  `json:"damage"`
	AgeGroup        string  `json:"age_group,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

type trackerPreviewDTO struct {
	Platform    string  `json:"platform"`
	Handle      string  `json:"handle"`
	DisplayName string  `json:"display_name,omitempty"`
	AvatarURL   string  `json:"avatar_url,omitempty"`
	RankLabel   string  `json:"rank_label,omitempty"`
	CurrentRank rankDTO `json:"current_rank"`
	MaxRank     rankDTO `json:"max_rank"`
	Level       *int64  `json:"level"`
	RankScore   *int64  `json:"rank_score"`
	Kills       *int64  `json:"kills"`
	Damage      *int64  `json:"damage"`
}

type listingDefaultsDTO struct {
	CurrentRank rankDTO `json:"current_rank"`
	MaxRank     rankDTO `json:"max_rank"`
	AgeGroup    string  `json:"age_group,omitempty"`
	Platform    string  `json:"platform,omitempty"`
}

type resultNoticeDTO struct {
	ID              string `json:"id"`
	ListingID       string `json:"listing_id"`
	ListingTitle    string `json:"listing_title"`
	VoiceChat       string `json:"vc"`
	OwnerUserID     string `json:"owner_user_id"`
	ApplicantUserID string `json:"applicant_user_id"`
	Status          string `json:"status"`
	AccountName     string `json:"account_name,omitempty"`
	InviteLink      string `json:"invite_link,omitempty"`
	Message         string `json:"message"`
	CreatedAt       string `json:"created_at"`
}

type playStyleTagDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
}

type finalizeResultDTO struct {
	Listing listingDTO        `json:"listing"`
	Notices []resultNoticeDTO `json:"notices"`
}

type boardDTO struct {
	Listings          []listingDTO      `json:"listings"`
	MyListing         *listingDTO       `json:"my_listing"`
	AppliedListingIDs []string          `json:"applied_listing_ids"`
	Notices           []resultNoticeDTO `json:"notices"`
	Tags              []playStyleTagDTO `json:"play_style_tags"`
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func rankToDTO(r rank.Rank) rankDTO {
	return rankDTO{
		Tier:     r.Tier.String(),
		Division: r.Division.Int(),
		Label:    r.Label(),
	}
}

func listingToDTO(v usecase.ListingView) listingDTO {
	ageGroups := make([]string, 0, len(v.AllowedAgeGroups))
	for _, group := range v.AllowedAgeGroups {
		ageGroups = append(ageGroups, group.String())
	}
	playStyles := v.PlayStyles
	if playStyles == nil {
		playStyles = []string{}
	}

	return listingDTO{
		ID:               v.ID,
		Title:            v.Title,
		OwnerUserID:      v.OwnerUserID,
		RecruitCount:     v.RecruitCount,
		Mode:             string(v.Mode),
		ModeLabel:        v.Mode.Label(),
		VoiceChat:        string(v.VoiceChat),
		VoiceChatLabel:   v.VoiceChat.Label(),
		PlayStyles:       playStyles,
		MinRequirement:   rankToDTO(v.MinRequirement),
		AllowedAgeGroups: ageGroups,
		OtherText:        v.OtherText,
		CurrentRank:      rankToDTO(v.CurrentRank),
		MaxRank:          rankToDTO(v.MaxRank),
		OwnerAgeGroup:    v.OwnerAgeGroup.String(),
		OwnerPlatform:    v.OwnerPlatform.String(),
		IsClosed:         v.IsClosed,
		WinnerUserID:     v.WinnerUserID,
		ApplicationCount: v.ApplicationCount,
		State:            string(v.State),
		ExpiresAt:        formatTime(v.ExpiresAt),
		CreatedAt:        formatTime(v.CreatedAt),
		UpdatedAt:        formatTime(v.UpdatedAt),
	}
}

func listingsToDTO(items []usecase.ListingView) []listingDTO {
	out := make([]listingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, listingToDTO(item))
	}
	return out
}

func applicantsToDTO(items []usecase.ApplicantView) []applicantDTO {
	out := make([]applicantDTO, 0, len(items))
	for _, item := range items {
		dto := applicantDTO{applicationDTO: applicationDTO{
			ID:              item.ID,
			ListingID:       item.ListingID,
			ApplicantUserID: item.ApplicantUserID,
			CreatedAt:       formatTime(item.CreatedAt),
		}}
		if item.HasProfile {
			p := profileToDTO(item.Profile)
			dto.Profile = &p
		}
		out = append(out, dto)
	}
	return out
}

func profileToDTO(p profile.Profile) profileDTO {
	return profileDTO{
		UserID:          p.UserID,
		TrackerPlatform: p.TrackerPlatform.String(),
		TrackerHandle:   p.TrackerHandle,
		DisplayName:     p.DisplayName,
		AvatarURL:       p.AvatarURL,
		CurrentRank:     rankToDTO(p.CurrentRank),
		MaxRank:         rankToDTO(p.MaxRank),
		Level:           p.Level.Ptr(),
		RankScore:       p.RankScore.Ptr(),
		Kills:           p.Kills.Ptr(),
		Damage:          p.Damage.Ptr(),
		AgeGroup:        p.AgeGroup.String(),
		UpdatedAt:       formatTime(p.UpdatedAt),
	}
}

func trackerPreviewToDTO(v usecase.TrackerPreview) trackerPreviewDTO {
	return trackerPreviewDTO{
		Platform:    v.Platform.String(),
		Handle:      v.Handle,
		DisplayName: v.DisplayName,
		AvatarURL:   v.AvatarURL,
		RankLabel:   v.RankLabel,
		CurrentRank: rankToDTO(v.CurrentRank),
		MaxRank:     rankToDTO(v.MaxRank),
		Level:       v.Level.Ptr(),
		RankScore:   v.RankScore.Ptr(),
		Kills:       v.Kills.Ptr(),
		Damage:      v.Damage.Ptr(),
	}
}

func listingDefaultsToDTO(v profile.ListingDefaults) listingDefaultsDTO {
	return listingDefaultsDTO{
		CurrentRank: rankToDTO(v.CurrentRank),
		MaxRank:     rankToDTO(v.MaxRank),
		AgeGroup:    v.AgeGroup.String(),
		Platform:    v.Platform.String(),
	}
}

func noticesToDTO(items []resultnotice.Notice) []resultNoticeDTO {
	out := make([]resultNoticeDTO, 0, len(items))
	for _, n := range items {
		out = append(out, resultNoticeDTO{
			ID:              n.ID,
			ListingID:       n.ListingID,
			ListingTitle:    n.ListingTitle,
			VoiceChat:       n.VoiceChat,
			OwnerUserID:     n.OwnerUserID,
			ApplicantUserID: n.ApplicantUserID,
			Status:          string(n.Status),
			AccountName:     n.AccountName,
			InviteLink:      n.InviteLink,
			Message:         n.Message,
			CreatedAt:       formatTime(n.CreatedAt),
		})
	}
	return out
}

func tagToDTO(t playstyle.Tag) playStyleTagDTO {
	return playStyleTagDTO{
		ID:        t.ID,
		Name:      t.Name,
		IsActive:  t.IsActive,
		CreatedAt: formatTime(t.CreatedAt),
	}
}

func tagsToDTO(items []playstyle.Tag) []playStyleTagDTO {
	out := make([]playStyleTagDTO, 0, len(items))
	for _, t := range items {
		out = append(out, tagToDTO(t))
	}
	return out
}

func boardToDTO(b usecase.Board) boardDTO {
	out := boardDTO{
		Listings:          listingsToDTO(b.Listings),
		AppliedListingIDs: b.AppliedListingIDs,
		Notices:           noticesToDTO(b.Notices),
		Tags:              tagsToDTO(b.Tags),
	}
	if out.AppliedListingIDs == nil {
		out.AppliedListingIDs = []string{}
	}
	if b.MyListing != nil {
		mine := listingToDTO(*b.MyListing)
		out.MyListing = &mine
	}
	return out
}
