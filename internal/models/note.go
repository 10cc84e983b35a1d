package models

import (
	"time"
)

type NoteType string

const (
	NoteInitial  NoteType = "Initial"
	NoteFollowUp NoteType = "Follow-up"
	NoteCrisis   NoteType = "Crisis"
)

// ValidNoteType reports whether t is one of the three allowed note types.
func ValidNoteType(t NoteType) bool {
	return t == NoteInitial || t == NoteFollowUp || t == NoteCrisis
}

// ClinicalNote is a SOAP note for one completed session. Notes are
// append-only and immutable; listings are session-date descending.
type ClinicalNote struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	SessionDate time.Time `json:"session_date"`
	Type        NoteType  `json:"type"`
	Subjective  string    `json:"subjective"`
	Objective   string    `json:"objective"`
	Assessment  string    `json:"assessment"`
	Plan        string    `json:"plan"`
	Summary     string    `json:"summary"`
}
