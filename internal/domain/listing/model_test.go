package listing

import (
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/lft-board/internal/domain/player"
)

func validListing() Listing {
	return Listing{
		ID:           "l-1",
		Title:        "ランク行ける人",
		OwnerUserID:  "owner-1",
		RecruitCount: 2,
		Mode:         ModeRank,
		VoiceChat:    VoiceChatDiscord,
		PlayStyles:   []string{"エンジョイ", "ガチ"},
	}
}

func TestListingValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Listing)
		wantErr error
	}{
		{name: "valid", mutate: func(*Listing) {}},
		{name: "blank title", mutate: func(l *Listing) { l.Title = "   " }, wantErr: ErrTitleRequired},
		{name: "long title", mutate: func(l *Listing) { l.Title = strings.Repeat("あ", MaxTitleLength+1) }, wantErr: ErrTitleTooLong},
		{name: "recruit three", mutate: func(l *Listing) { l.RecruitCount = 3 }, wantErr: ErrInvalidRecruitCount},
		{name: "bad mode", mutate: func(l *Listing) { l.Mode = "arena" }, wantErr: ErrInvalidMode},
		{name: "missing vc", mutate: func(l *Listing) { l.VoiceChat = VoiceChatUnset }, wantErr: ErrInvalidVoiceChat},
		{name: "no styles", mutate: func(l *Listing) { l.PlayStyles = nil }, wantErr: ErrPlayStyleCount},
		{name: "four styles", mutate: func(l *Listing) { l.PlayStyles = []string{"a", "b", "c", "d"} }, wantErr: ErrPlayStyleCount},
		{name: "duplicate styles", mutate: func(l *Listing) { l.PlayStyles = []string{"a", "a"} }, wantErr: ErrDuplicatePlayStyle},
		{name: "long other text", mutate: func(l *Listing) { l.OtherText = strings.Repeat("x", MaxOtherTextLength+1) }, wantErr: ErrOtherTextTooLong},
		{name: "bad allowed age", mutate: func(l *Listing) { l.AllowedAgeGroups = []player.AgeGroup{"50s"} }, wantErr: ErrInvalidAgeGroup},
		{name: "missing owner", mutate: func(l *Listing) { l.OwnerUserID = "" }, wantErr: ErrOwnerRequired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := validListing()
			tc.mutate(&item)
			if err := item.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.wantErr)
			}
		})
	}
}

func TestParseModeAndVoiceChat(t *testing.T) {
	t.Parallel()

	if got, ok := ParseMode("ランク"); !ok || got != ModeRank {
		t.Fatalf("unexpected mode: %q %v", got, ok)
	}
	if got, ok := ParseMode("Casual"); !ok || got != ModeCasual {
		t.Fatalf("unexpected mode: %q %v", got, ok)
	}
	if _, ok := ParseMode("arena"); ok {
		t.Fatalf("arena should not parse")
	}
	if got, ok := ParseVoiceChat("ゲーム内VC"); !ok || got != VoiceChatGame {
		t.Fatalf("unexpected vc: %q %v", got, ok)
	}
	if got, ok := ParseVoiceChat("discord"); !ok || !got.RequiresInvite() {
		t.Fatalf("discord should require an invite: %q %v", got, ok)
	}
	if got, ok := ParseVoiceChat("VCなし"); !ok || got.RequiresInvite() {
		t.Fatalf("off should not require an invite: %q %v", got, ok)
	}
}

func TestDisplayTitleFallsBack(t *testing.T) {
	t.Parallel()

	if got := (Listing{Title: " "}).DisplayTitle(); got != DefaultTitle {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := (Listing{Title: "カジュアル"}).DisplayTitle(); got != "カジュアル" {
		t.Fatalf("unexpected title: %q", got)
	}
}
