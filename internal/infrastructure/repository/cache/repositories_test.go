package cache

import (
	"testing"
	"time"

	"github.com/riskibarqy/lft-board/internal/domain/application"
	"github.com/riskibarqy/lft-board/internal/domain/listing"
	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
	"github.com/riskibarqy/lft-board/internal/domain/profile"
	"github.com/riskibarqy/lft-board/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/lft-board/internal/platform/cache"
)

func newListing(id, owner string) listing.Listing {
	return listing.Listing{
		ID:           id,
		Title:        "募集",
		OwnerUserID:  owner,
		RecruitCount: 1,
		Mode:         listing.ModeCasual,
		VoiceChat:    listing.VoiceChatGame,
		PlayStyles:   []string{"エンジョイ"},
		CreatedAt:    time.Now(),
	}
}

func TestListingRepository_EvictsOnWrites(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	cache := basecache.NewStore(time.Minute)
	listings := NewListingRepository(memory.NewListingRepository(store), cache)
	applications := NewApplicationRepository(memory.NewApplicationRepository(store), cache)
	ctx := t.Context()

	if err := listings.Create(ctx, newListing("l1", "owner")); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, ok, err := listings.GetByID(ctx, "l1")
	if err != nil || !ok || got.ApplicationCount != 0 {
		t.Fatalf("unexpected first read: %+v ok=%v err=%v", got, ok, err)
	}

	if err := applications.Create(ctx, application.Application{ID: "a1", ListingID: "l1", ApplicantUserID: "p1"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got, _, _ = listings.GetByID(ctx, "l1")
	if got.ApplicationCount != 1 {
		t.Fatalf("expected apply to evict cached count, got %d", got.ApplicationCount)
	}

	if err := listings.Finalize(ctx, listing.Commit{ListingID: "l1", WinnerUserID: "p1"}); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	got, _, _ = listings.GetByID(ctx, "l1")
	if !got.IsClosed {
		t.Fatalf("expected finalize to evict cached listing")
	}

	if err := listings.Reopen(ctx, "l1"); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, _, _ = listings.GetByID(ctx, "l1")
	if got.IsClosed {
		t.Fatalf("expected reopen to evict cached listing")
	}

	if err := listings.Delete(ctx, "l1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := listings.GetByID(ctx, "l1"); ok {
		t.Fatalf("expected delete to evict cached listing")
	}
}

func TestListingRepository_CachesMissAndReturnsCopies(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	cache := basecache.NewStore(time.Minute)
	listings := NewListingRepository(memory.NewListingRepository(store), cache)
	ctx := t.Context()

	if _, ok, err := listings.GetByID(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
	if _, ok := cache.Get(ctx, listingKeyPrefix+"missing"); !ok {
		t.Fatalf("expected negative result to be cached")
	}

	if err := listings.Create(ctx, newListing("l1", "owner")); err != nil {
		t.Fatalf("create: %v", err)
	}
	first, _, _ := listings.GetByID(ctx, "l1")
	first.PlayStyles[0] = "mutated"
	second, _, _ := listings.GetByID(ctx, "l1")
	if second.PlayStyles[0] != "エンジョイ" {
		t.Fatalf("cached listing was mutated through a returned value")
	}
}

func TestProfileRepository_EvictsOnUpsert(t *testing.T) {
	t.Parallel()

	cache := basecache.NewStore(time.Minute)
	repo := NewProfileRepository(memory.NewProfileRepository(memory.NewStore()), cache)
	ctx := t.Context()

	if _, ok, _ := repo.GetByUserID(ctx, "u1"); ok {
		t.Fatalf("expected no profile yet")
	}
	if err := repo.Upsert(ctx, profile.Profile{UserID: "u1", DisplayName: "first"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, ok, _ := repo.GetByUserID(ctx, "u1")
	if !ok || got.DisplayName != "first" {
		t.Fatalf("expected fresh profile after upsert, got %+v ok=%v", got, ok)
	}
}

func TestPlayStyleTagRepository_EvictsListsOnWrites(t *testing.T) {
	t.Parallel()

	cache := basecache.NewStore(time.Minute)
	repo := NewPlayStyleTagRepository(memory.NewPlayStyleTagRepository(memory.NewStore()), cache)
	ctx := t.Context()

	if err := repo.Create(ctx, playstyle.Tag{ID: "t1", Name: "ガチ", IsActive: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	active, _ := repo.ListActive(ctx)
	if len(active) != 1 {
		t.Fatalf("expected one active tag, got %d", len(active))
	}

	if err := repo.SetActive(ctx, "t1", false); err != nil {
		t.Fatalf("set active: %v", err)
	}
	active, _ = repo.ListActive(ctx)
	if len(active) != 0 {
		t.Fatalf("expected deactivation to evict active list, got %d", len(active))
	}
	all, _ := repo.ListAll(ctx)
	if len(all) != 1 {
		t.Fatalf("expected one tag overall, got %d", len(all))
	}

	if err := repo.Delete(ctx, "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, _ = repo.ListAll(ctx)
	if len(all) != 0 {
		t.Fatalf("expected delete to evict list, got %d", len(all))
	}
}
