package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/lft-board/internal/domain/application"
	"github.com/riskibarqy/lft-board/internal/domain/listing"
	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
	"github.com/riskibarqy/lft-board/internal/domain/profile"
	"github.com/riskibarqy/lft-board/internal/domain/resultnotice"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleListing(id, owner string) listing.Listing {
	return listing.Listing{
		ID:           id,
		Title:        "ランク回そう",
		OwnerUserID:  owner,
		RecruitCount: 2,
		Mode:         listing.ModeRank,
		VoiceChat:    listing.VoiceChatDiscord,
		PlayStyles:   []string{"ガチ"},
		CreatedAt:    baseTime,
		UpdatedAt:    baseTime,
	}
}

func TestListingRepository_OneOpenListingPerOwner(t *testing.T) {
	t.Parallel()

	store := NewStore()
	repo := NewListingRepository(store)
	ctx := t.Context()

	if err := repo.Create(ctx, sampleListing("l1", "owner")); err != nil {
		t.Fatalf("create first listing: %v", err)
	}
	if err := repo.Create(ctx, sampleListing("l2", "owner")); !errors.Is(err, listing.ErrOwnerHasOpenListing) {
		t.Fatalf("expected ErrOwnerHasOpenListing, got %v", err)
	}
	if err := repo.Close(ctx, "l1", ""); err != nil {
		t.Fatalf("close listing: %v", err)
	}
	if err := repo.Create(ctx, sampleListing("l2", "owner")); err != nil {
		t.Fatalf("create after close: %v", err)
	}
	if err := repo.Reopen(ctx, "l1"); !errors.Is(err, listing.ErrOwnerHasOpenListing) {
		t.Fatalf("expected reopen conflict, got %v", err)
	}

	open, ok, err := repo.GetOpenByOwner(ctx, "owner")
	if err != nil || !ok {
		t.Fatalf("get open by owner: ok=%v err=%v", ok, err)
	}
	if open.ID != "l2" {
		t.Fatalf("expected l2 to hold the slot, got %s", open.ID)
	}
}

func TestListingRepository_ListNotClosedNewestFirstWithCounts(t *testing.T) {
	t.Parallel()

	store := NewStore()
	listings := NewListingRepository(store)
	applications := NewApplicationRepository(store)
	ctx := t.Context()

	for _, item := range []listing.Listing{sampleListing("old", "a"), sampleListing("new", "b"), sampleListing("done", "c")} {
		if err := listings.Create(ctx, item); err != nil {
			t.Fatalf("create %s: %v", item.ID, err)
		}
	}
	if err := listings.Close(ctx, "done", ""); err != nil {
		t.Fatalf("close: %v", err)
	}
	for _, applicant := range []string{"x", "y"} {
		err := applications.Create(ctx, application.Application{ID: "app-" + applicant, ListingID: "old", ApplicantUserID: applicant, CreatedAt: baseTime})
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
	}

	got, err := listings.ListNotClosed(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "old" {
		t.Fatalf("unexpected listing order: %+v", got)
	}
	if got[1].ApplicationCount != 2 {
		t.Fatalf("expected 2 applications on old, got %d", got[1].ApplicationCount)
	}
}

func TestListingRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	store := NewStore()
	repo := NewListingRepository(store)
	ctx := t.Context()

	if err := repo.Create(ctx, sampleListing("l1", "owner")); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, _, _ := repo.GetByID(ctx, "l1")
	got.PlayStyles[0] = "mutated"

	again, _, _ := repo.GetByID(ctx, "l1")
	if again.PlayStyles[0] != "ガチ" {
		t.Fatalf("stored listing was mutated through a returned copy")
	}
}

func TestListingRepository_DeleteCascadesApplicationsKeepsNotices(t *testing.T) {
	t.Parallel()

	store := NewStore()
	listings := NewListingRepository(store)
	applications := NewApplicationRepository(store)
	notices := NewResultNoticeRepository(store)
	ctx := t.Context()

	if err := listings.Create(ctx, sampleListing("l1", "owner")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := applications.Create(ctx, application.Application{ID: "a1", ListingID: "l1", ApplicantUserID: "p1", CreatedAt: baseTime}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	commit := listing.Commit{
		ListingID:    "l1",
		WinnerUserID: "p1",
		Notices: []resultnotice.Notice{{
			ID: "n1", ListingID: "l1", ApplicantUserID: "p1", Status: resultnotice.StatusSelected,
			AccountName: "owner#1", Message: "よろしく", CreatedAt: baseTime,
		}},
	}
	if err := listings.Finalize(ctx, commit); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if err := listings.Delete(ctx, "l1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, ok, _ := listings.GetByID(ctx, "l1"); ok {
		t.Fatalf("expected listing to be gone")
	}
	apps, _ := applications.ListByListing(ctx, "l1")
	if len(apps) != 0 {
		t.Fatalf("expected applications to cascade, got %d", len(apps))
	}
	inbox, _ := notices.ListByApplicant(ctx, "p1")
	if len(inbox) != 1 {
		t.Fatalf("expected notice to survive deletion, got %d", len(inbox))
	}
}

func TestListingRepository_FinalizeIsAllOrNothing(t *testing.T) {
	t.Parallel()

	store := NewStore()
	listings := NewListingRepository(store)
	notices := NewResultNoticeRepository(store)
	ctx := t.Context()

	if err := listings.Create(ctx, sampleListing("l1", "owner")); err != nil {
		t.Fatalf("create: %v", err)
	}
	commit := listing.Commit{
		ListingID:    "l1",
		WinnerUserID: "p1",
		Notices: []resultnotice.Notice{
			{ID: "n1", ListingID: "l1", ApplicantUserID: "p1", Status: resultnotice.StatusSelected, AccountName: "acc", Message: "hi", CreatedAt: baseTime},
			{ID: "n2", ListingID: "l1", ApplicantUserID: "p2", Status: resultnotice.StatusRejected, Message: resultnotice.DefaultRejectionMessage, CreatedAt: baseTime},
		},
	}

	store.FailNextWrite(errors.New("disk full"))
	if err := listings.Finalize(ctx, commit); err == nil {
		t.Fatalf("expected injected failure")
	}
	got, _, _ := listings.GetByID(ctx, "l1")
	if got.IsClosed {
		t.Fatalf("listing must stay open after a failed finalize")
	}
	if written, _ := notices.ListByListing(ctx, "l1"); len(written) != 0 {
		t.Fatalf("expected no notices after failure, got %d", len(written))
	}

	if err := listings.Finalize(ctx, commit); err != nil {
		t.Fatalf("finalize retry: %v", err)
	}
	got, _, _ = listings.GetByID(ctx, "l1")
	if !got.IsClosed || got.WinnerUserID != "p1" {
		t.Fatalf("expected closed listing with winner p1, got %+v", got)
	}

	commit.Notices[0].ID = "n1-again"
	commit.Notices[0].Message = "updated"
	if err := listings.Finalize(ctx, commit); err != nil {
		t.Fatalf("finalize again: %v", err)
	}
	written, _ := notices.ListByListing(ctx, "l1")
	if len(written) != 2 {
		t.Fatalf("expected upsert to keep two notices, got %d", len(written))
	}
	for _, n := range written {
		if n.ApplicantUserID == "p1" && (n.ID != "n1" || n.Message != "updated") {
			t.Fatalf("expected upsert to keep id and update message, got %+v", n)
		}
	}
}

func TestApplicationRepository_DuplicateAndOrder(t *testing.T) {
	t.Parallel()

	store := NewStore()
	listings := NewListingRepository(store)
	repo := NewApplicationRepository(store)
	ctx := t.Context()

	if err := listings.Create(ctx, sampleListing("l1", "owner")); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := application.Application{ID: "a2", ListingID: "l1", ApplicantUserID: "late", CreatedAt: baseTime.Add(time.Minute)}
	first := application.Application{ID: "a1", ListingID: "l1", ApplicantUserID: "early", CreatedAt: baseTime}
	for _, item := range []application.Application{second, first} {
		if err := repo.Create(ctx, item); err != nil {
			t.Fatalf("apply %s: %v", item.ID, err)
		}
	}
	if err := repo.Create(ctx, application.Application{ID: "a3", ListingID: "l1", ApplicantUserID: "early"}); !errors.Is(err, application.ErrDuplicateApplication) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := repo.Create(ctx, application.Application{ID: "a4", ListingID: "missing", ApplicantUserID: "early"}); err == nil {
		t.Fatalf("expected error for unknown listing")
	}

	got, _ := repo.ListByListing(ctx, "l1")
	if len(got) != 2 || got[0].ID != "a1" || got[1].ID != "a2" {
		t.Fatalf("expected oldest first, got %+v", got)
	}
	ids, _ := repo.ListListingIDsByApplicant(ctx, "late")
	if len(ids) != 1 || ids[0] != "l1" {
		t.Fatalf("unexpected listing ids: %v", ids)
	}
	if _, ok, _ := repo.GetByListingAndApplicant(ctx, "l1", "early"); !ok {
		t.Fatalf("expected application lookup to hit")
	}
}

func TestResultNoticeRepository_NewestFirst(t *testing.T) {
	t.Parallel()

	store := NewStore()
	listings := NewListingRepository(store)
	repo := NewResultNoticeRepository(store)
	ctx := t.Context()

	for i, id := range []string{"l1", "l2"} {
		if err := listings.Create(ctx, sampleListing(id, "owner-"+id)); err != nil {
			t.Fatalf("create: %v", err)
		}
		commit := listing.Commit{ListingID: id, Notices: []resultnotice.Notice{{
			ID: "n-" + id, ListingID: id, ApplicantUserID: "p", Status: resultnotice.StatusRejected,
			Message: resultnotice.DefaultRejectionMessage, CreatedAt: baseTime.Add(time.Duration(i) * time.Hour),
		}}}
		if err := listings.Finalize(ctx, commit); err != nil {
			t.Fatalf("finalize: %v", err)
		}
	}

	got, _ := repo.ListByApplicant(ctx, "p")
	if len(got) != 2 || got[0].ListingID != "l2" {
		t.Fatalf("expected newest notice first, got %+v", got)
	}
}

func TestProfileRepository_UpsertAndBatchGet(t *testing.T) {
	t.Parallel()

	repo := NewProfileRepository(NewStore())
	ctx := t.Context()

	if err := repo.Upsert(ctx, profile.Profile{}); !errors.Is(err, profile.ErrUserIDRequired) {
		t.Fatalf("expected ErrUserIDRequired, got %v", err)
	}
	for _, id := range []string{"u1", "u2"} {
		if err := repo.Upsert(ctx, profile.Profile{UserID: id, DisplayName: id}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	if err := repo.Upsert(ctx, profile.Profile{UserID: "u1", DisplayName: "renamed"}); err != nil {
		t.Fatalf("upsert again: %v", err)
	}

	got, _ := repo.GetByUserIDs(ctx, []string{"u2", "missing", "u1"})
	if len(got) != 2 || got[0].UserID != "u2" || got[1].DisplayName != "renamed" {
		t.Fatalf("unexpected batch result: %+v", got)
	}
}

func TestPlayStyleTagRepository(t *testing.T) {
	t.Parallel()

	store := NewStore()
	repo := NewPlayStyleTagRepository(store)
	ctx := t.Context()

	if err := Seed(ctx, store, SeedPlayStyleTags()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := Seed(ctx, store, SeedPlayStyleTags()[:1]); err == nil {
		t.Fatalf("expected reseeding the same id to fail")
	}
	if err := repo.Create(ctx, playstyle.Tag{ID: "dup", Name: " ガチ ", IsActive: true}); !errors.Is(err, playstyle.ErrDuplicateName) {
		t.Fatalf("expected duplicate name, got %v", err)
	}

	all, _ := repo.ListAll(ctx)
	if err := repo.SetActive(ctx, all[0].ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, _ := repo.ListActive(ctx)
	if len(active) != len(all)-1 {
		t.Fatalf("expected %d active tags, got %d", len(all)-1, len(active))
	}
	for i := 1; i < len(active); i++ {
		if active[i-1].Name > active[i].Name {
			t.Fatalf("expected tags ordered by name")
		}
	}

	if err := repo.Delete(ctx, all[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.GetByID(ctx, all[0].ID); ok {
		t.Fatalf("expected tag to be deleted")
	}
}
