package storage

import (
	"context"

	"github.com/serenity-health/serenity/internal/models"
)

// Storage is the record store: durable persistence keyed by the
// authenticated user identity, retrieval ordered by time.
//
// Reads never write. EnsureUser is the explicit initialization step that
// seeds the default templates for a user with no rows yet; callers invoke it
// before the first read for a user.
type Storage interface {
	// EnsureUser seeds the default profile, welcome message and template
	// appointments for a user with no existing rows. Safe to call on every
	// request; existing data is never overwritten.
	EnsureUser(ctx context.Context, userID string) error

	GetProfile(ctx context.Context, userID string) (*models.ClinicalProfile, error)
	SaveProfile(ctx context.Context, userID string, profile *models.ClinicalProfile) error

	// GetMessages returns the transcript in created-at ascending order.
	GetMessages(ctx context.Context, userID string) ([]*models.Message, error)
	AddMessage(ctx context.Context, msg *models.Message) error

	// GetNotes returns notes in session-date descending order.
	GetNotes(ctx context.Context, userID string) ([]*models.ClinicalNote, error)
	AddNote(ctx context.Context, note *models.ClinicalNote) error

	GetAppointments(ctx context.Context, userID string) ([]*models.Appointment, error)

	Close() error
}
