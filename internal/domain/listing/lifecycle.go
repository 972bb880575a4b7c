package listing

import "time"

// DefaultExpiryWindow is how long an unfinalized listing stays visible.
const DefaultExpiryWindow = 2 * time.Hour

// State is the derived lifecycle state of a listing at a point in time.
type State string

const (
	StateOpen    State = "open"
	StateExpired State = "expired"
	StateClosed  State = "closed"
)

func (l Listing) ExpiresAt(window time.Duration) time.Time {
	return l.CreatedAt.Add(window)
}

// IsExpired is true once now reaches created_at + window.
func (l Listing) IsExpired(now time.Time, window time.Duration) bool {
	return !now.Before(l.ExpiresAt(window))
}

// StateAt derives the state. Closed wins over expired.
func (l Listing) StateAt(now time.Time, window time.Duration) State {
	switch {
	case l.IsClosed:
		return StateClosed
	case l.IsExpired(now, window):
		return StateExpired
	default:
		return StateOpen
	}
}

// IsVisible reports whether the listing appears on the board.
func (l Listing) IsVisible(now time.Time, window time.Duration) bool {
	return l.StateAt(now, window) == StateOpen
}

// HoldsOwnerSlot reports whether the listing blocks its owner from creating
// another one. Expired listings keep the slot until closed or deleted.
func (l Listing) HoldsOwnerSlot() bool {
	return !l.IsClosed
}

// Close marks the listing finalized. winnerUserID may be empty for a plain
// close without a selected applicant.
func (l Listing) Close(winnerUserID string, at time.Time) (Listing, error) {
	if l.IsClosed {
		return l, ErrAlreadyClosed
	}
	l.IsClosed = true
	l.WinnerUserID = winnerUserID
	l.UpdatedAt = at
	return l, nil
}

// Reopen clears the closed flag and the winner.
func (l Listing) Reopen(at time.Time) (Listing, error) {
	if !l.IsClosed {
		return l, ErrNotClosed
	}
	l.IsClosed = false
	l.WinnerUserID = ""
	l.UpdatedAt = at
	return l, nil
}
