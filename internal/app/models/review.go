package models

import "time"

type SaveNotice struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ReviewView is a read-only copy of a review session's state.
type ReviewView struct {
	ID         string         `json:"id"`
	Letter     Letter         `json:"letter"`
	Snapshot   StatusSnapshot `json:"snapshot"`
	NextStatus LetterStatus   `json:"next_status,omitempty"`
	Content    string         `json:"content"`
	Persisted  string         `json:"persisted"`
	Notice     *SaveNotice    `json:"notice,omitempty"`
}

func (v *ReviewView) Dirty() bool {
	return v.Content != v.Persisted
}

// BoardRow is one letter of the recent letters board with its live status.
type BoardRow struct {
	Summary    LetterSummary  `json:"summary"`
	Snapshot   StatusSnapshot `json:"snapshot"`
	NextStatus LetterStatus   `json:"next_status,omitempty"`
	InFlight   bool           `json:"in_flight"`
}
