package playstyle

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxNameLength = 30

var (
	ErrNameRequired  = errors.New("play style name is required")
	ErrNameTooLong   = fmt.Errorf("play style name must be at most %d characters", MaxNameLength)
	ErrDuplicateName = errors.New("play style name already exists")
)

// Tag is a curated play-style label. Inactive tags are hidden from listing
// creators but stay valid on existing listings.
type Tag struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

func (t Tag) Validate() error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// ActiveNames indexes the names of active tags.
func ActiveNames(tags []Tag) map[string]struct{} {
	out := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag.IsActive {
			out[tag.Name] = struct{}{}
		}
	}
	return out
}
