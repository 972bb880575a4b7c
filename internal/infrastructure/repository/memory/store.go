package memory

import (
	"sync"

	"github.com/riskibarqy/lft-board/internal/domain/application"
	"github.com/riskibarqy/lft-board/internal/domain/listing"
	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
	"github.com/riskibarqy/lft-board/internal/domain/profile"
	"github.com/riskibarqy/lft-board/internal/domain/resultnotice"
)

// Store is an in-process database shared by the memory repositories. One
// lock guards every table so cross-table writes (finalize, cascade delete)
// are atomic.
type Store struct {
	mu sync.RWMutex

	listings      map[string]listing.Listing
	listingOrder  []string
	applications  map[string]application.Application
	notices       map[string]resultnotice.Notice
	profiles      map[string]profile.Profile
	tags          map[string]playstyle.Tag
	failNextWrite error
}

func NewStore() *Store {
	return &Store{
		listings:     make(map[string]listing.Listing),
		applications: make(map[string]application.Application),
		notices:      make(map[string]resultnotice.Notice),
		profiles:     make(map[string]profile.Profile),
		tags:         make(map[string]playstyle.Tag),
	}
}

// FailNextWrite makes the next multi-row write fail with err, leaving the
// store untouched.
func (s *Store) FailNextWrite(err error) {
	s.mu.Lock()
	s.failNextWrite = err
	s.mu.Unlock()
}

func (s *Store) takeWriteFailure() error {
	err := s.failNextWrite
	s.failNextWrite = nil
	return err
}

// pairKey identifies a (listing, applicant) pair.
func pairKey(listingID, userID string) string {
	return listingID + "::" + userID
}

func removeID(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
