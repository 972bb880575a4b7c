package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
)

type PlayStyleTagRepository struct {
	store *Store
}

func NewPlayStyleTagRepository(store *Store) *PlayStyleTagRepository {
	return &PlayStyleTagRepository{store: store}
}

func (r *PlayStyleTagRepository) ListActive(_ context.Context) ([]playstyle.Tag, error) {
	return r.list(true), nil
}

func (r *PlayStyleTagRepository) ListAll(_ context.Context) ([]playstyle.Tag, error) {
	return r.list(false), nil
}

func (r *PlayStyleTagRepository) GetByID(_ context.Context, tagID string) (playstyle.Tag, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.tags[tagID]
	return item, ok, nil
}

func (r *PlayStyleTagRepository) Create(_ context.Context, item playstyle.Tag) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tags[item.ID]; exists {
		return fmt.Errorf("play style tag %s already exists", item.ID)
	}
	name := strings.TrimSpace(item.Name)
	for _, existing := range s.tags {
		if existing.Name == name {
			return playstyle.ErrDuplicateName
		}
	}
	item.Name = name
	s.tags[item.ID] = item
	return nil
}

func (r *PlayStyleTagRepository) SetActive(_ context.Context, tagID string, active bool) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.tags[tagID]
	if !ok {
		return fmt.Errorf("play style tag %s not found", tagID)
	}
	item.IsActive = active
	s.tags[tagID] = item
	return nil
}

func (r *PlayStyleTagRepository) Delete(_ context.Context, tagID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tags, tagID)
	return nil
}

// list returns tags ordered by name.
func (r *PlayStyleTagRepository) list(activeOnly bool) []playstyle.Tag {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]playstyle.Tag, 0, len(s.tags))
	for _, item := range s.tags {
		if activeOnly && !item.IsActive {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
