package cache

import (
	"context"

	"github.com/riskibarqy/lft-board/internal/domain/application"
	"github.com/riskibarqy/lft-board/internal/domain/listing"
	"github.com/riskibarqy/lft-board/internal/domain/player"
	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
	"github.com/riskibarqy/lft-board/internal/domain/profile"
	basecache "github.com/riskibarqy/lft-board/internal/platform/cache"
)

const (
	listingKeyPrefix = "listing:id:"
	profileKeyPrefix = "profile:user:"
	tagKeyPrefix     = "play-style-tag:"
)

// ListingStore is a listing repository that can also finalize.
type ListingStore interface {
	listing.Repository
	listing.Finalizer
}

type ListingRepository struct {
	next  ListingStore
	cache *basecache.Store
}

func NewListingRepository(next ListingStore, cache *basecache.Store) *ListingRepository {
	return &ListingRepository{next: next, cache: cache}
}

func (r *ListingRepository) Create(ctx context.Context, item listing.Listing) error {
	return r.next.Create(ctx, item)
}

func (r *ListingRepository) GetByID(ctx context.Context, listingID string) (listing.Listing, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, listingKeyPrefix+listingID, func(ctx context.Context) (cachedListingByID, error) {
		item, exists, err := r.next.GetByID(ctx, listingID)
		if err != nil {
			return cachedListingByID{}, err
		}
		return cachedListingByID{value: cloneListing(item), exists: exists}, nil
	})
	if err != nil {
		return listing.Listing{}, false, err
	}
	return cloneListing(cached.value), cached.exists, nil
}

// GetOpenByOwner and ListNotClosed always read through; they gate writes and
// carry live application counts.
func (r *ListingRepository) GetOpenByOwner(ctx context.Context, ownerUserID string) (listing.Listing, bool, error) {
	return r.next.GetOpenByOwner(ctx, ownerUserID)
}

func (r *ListingRepository) ListNotClosed(ctx context.Context) ([]listing.Listing, error) {
	return r.next.ListNotClosed(ctx)
}

func (r *ListingRepository) Close(ctx context.Context, listingID, winnerUserID string) error {
	if err := r.next.Close(ctx, listingID, winnerUserID); err != nil {
		return err
	}
	r.cache.Delete(ctx, listingKeyPrefix+listingID)
	return nil
}

func (r *ListingRepository) Reopen(ctx context.Context, listingID string) error {
	if err := r.next.Reopen(ctx, listingID); err != nil {
		return err
	}
	r.cache.Delete(ctx, listingKeyPrefix+listingID)
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, listingID string) error {
	if err := r.next.Delete(ctx, listingID); err != nil {
		return err
	}
	r.cache.Delete(ctx, listingKeyPrefix+listingID)
	return nil
}

func (r *ListingRepository) Finalize(ctx context.Context, commit listing.Commit) error {
	if err := r.next.Finalize(ctx, commit); err != nil {
		return err
	}
	r.cache.Delete(ctx, listingKeyPrefix+commit.ListingID)
	return nil
}

type cachedListingByID struct {
	value  listing.Listing
	exists bool
}

func cloneListing(item listing.Listing) listing.Listing {
	out := item
	out.PlayStyles = append([]string(nil), item.PlayStyles...)
	out.AllowedAgeGroups = append([]player.AgeGroup(nil), item.AllowedAgeGroups...)
	return out
}

// ApplicationRepository evicts the cached listing on apply so its
// application count stays current.
type ApplicationRepository struct {
	application.Repository
	cache *basecache.Store
}

func NewApplicationRepository(next application.Repository, cache *basecache.Store) *ApplicationRepository {
	return &ApplicationRepository{Repository: next, cache: cache}
}

func (r *ApplicationRepository) Create(ctx context.Context, item application.Application) error {
	if err := r.Repository.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, listingKeyPrefix+item.ListingID)
	return nil
}

type ProfileRepository struct {
	next  profile.Repository
	cache *basecache.Store
}

func NewProfileRepository(next profile.Repository, cache *basecache.Store) *ProfileRepository {
	return &ProfileRepository{next: next, cache: cache}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, profileKeyPrefix+userID, func(ctx context.Context) (cachedProfile, error) {
		item, exists, err := r.next.GetByUserID(ctx, userID)
		if err != nil {
			return cachedProfile{}, err
		}
		return cachedProfile{value: item, exists: exists}, nil
	})
	if err != nil {
		return profile.Profile{}, false, err
	}
	return cloneProfile(cached.value), cached.exists, nil
}

func (r *ProfileRepository) GetByUserIDs(ctx context.Context, userIDs []string) ([]profile.Profile, error) {
	return r.next.GetByUserIDs(ctx, userIDs)
}

func (r *ProfileRepository) Upsert(ctx context.Context, item profile.Profile) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, profileKeyPrefix+item.UserID)
	return nil
}

type cachedProfile struct {
	value  profile.Profile
	exists bool
}

func cloneProfile(item profile.Profile) profile.Profile {
	out := item
	out.TrackerRaw = append([]byte(nil), item.TrackerRaw...)
	return out
}

type PlayStyleTagRepository struct {
	next  playstyle.Repository
	cache *basecache.Store
}

func NewPlayStyleTagRepository(next playstyle.Repository, cache *basecache.Store) *PlayStyleTagRepository {
	return &PlayStyleTagRepository{next: next, cache: cache}
}

func (r *PlayStyleTagRepository) ListActive(ctx context.Context) ([]playstyle.Tag, error) {
	return r.list(ctx, tagKeyPrefix+"list:active", r.next.ListActive)
}

func (r *PlayStyleTagRepository) ListAll(ctx context.Context) ([]playstyle.Tag, error) {
	return r.list(ctx, tagKeyPrefix+"list:all", r.next.ListAll)
}

func (r *PlayStyleTagRepository) GetByID(ctx context.Context, tagID string) (playstyle.Tag, bool, error) {
	return r.next.GetByID(ctx, tagID)
}

func (r *PlayStyleTagRepository) Create(ctx context.Context, item playstyle.Tag) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, tagKeyPrefix)
	return nil
}

func (r *PlayStyleTagRepository) SetActive(ctx context.Context, tagID string, active bool) error {
	if err := r.next.SetActive(ctx, tagID, active); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, tagKeyPrefix)
	return nil
}

func (r *PlayStyleTagRepository) Delete(ctx context.Context, tagID string) error {
	if err := r.next.Delete(ctx, tagID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, tagKeyPrefix)
	return nil
}

func (r *PlayStyleTagRepository) list(ctx context.Context, key string, load func(context.Context) ([]playstyle.Tag, error)) ([]playstyle.Tag, error) {
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]playstyle.Tag, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]playstyle.Tag(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]playstyle.Tag(nil), items...), nil
}

var (
	_ ListingStore           = (*ListingRepository)(nil)
	_ application.Repository = (*ApplicationRepository)(nil)
	_ profile.Repository     = (*ProfileRepository)(nil)
	_ playstyle.Repository   = (*PlayStyleTagRepository)(nil)
)
