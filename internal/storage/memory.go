package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/serenity-health/serenity/internal/models"
)

// MemoryStorage keeps all records in process memory. Used for development
// and tests; it honors the same ordering and seeding rules as Postgres.
type MemoryStorage struct {
	mu           sync.RWMutex
	profiles     map[string]*models.ClinicalProfile
	messages     map[string][]*models.Message
	notes        map[string][]*models.ClinicalNote
	appointments map[string][]*models.Appointment
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		profiles:     make(map[string]*models.ClinicalProfile),
		messages:     make(map[string][]*models.Message),
		notes:        make(map[string][]*models.ClinicalNote),
		appointments: make(map[string][]*models.Appointment),
	}
}

func (s *MemoryStorage) EnsureUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[userID]; !exists {
		s.profiles[userID] = models.DefaultProfile()
	}
	if len(s.messages[userID]) == 0 {
		s.messages[userID] = []*models.Message{models.WelcomeMessage(userID)}
	}
	if len(s.appointments[userID]) == 0 {
		s.appointments[userID] = models.DefaultAppointments(userID)
	}
	return nil
}

func (s *MemoryStorage) GetProfile(ctx context.Context, userID string) (*models.ClinicalProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, exists := s.profiles[userID]
	if !exists {
		return nil, fmt.Errorf("profile not found for user %s", userID)
	}
	clone := *profile
	return &clone, nil
}

func (s *MemoryStorage) SaveProfile(ctx context.Context, userID string, profile *models.ClinicalProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *profile
	s.profiles[userID] = &clone
	return nil
}

func (s *MemoryStorage) GetMessages(ctx context.Context, userID string) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[userID]
	result := make([]*models.Message, len(msgs))
	copy(result, msgs)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *MemoryStorage) AddMessage(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[msg.UserID] = append(s.messages[msg.UserID], msg)
	return nil
}

func (s *MemoryStorage) GetNotes(ctx context.Context, userID string) ([]*models.ClinicalNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := s.notes[userID]
	result := make([]*models.ClinicalNote, len(notes))
	copy(result, notes)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SessionDate.After(result[j].SessionDate)
	})
	return result, nil
}

func (s *MemoryStorage) AddNote(ctx context.Context, note *models.ClinicalNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Prepend so the newest note lists first
	s.notes[note.UserID] = append([]*models.ClinicalNote{note}, s.notes[note.UserID]...)
	return nil
}

func (s *MemoryStorage) GetAppointments(ctx context.Context, userID string) ([]*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	appts := s.appointments[userID]
	result := make([]*models.Appointment, len(appts))
	copy(result, appts)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ScheduledTime.Before(result[j].ScheduledTime)
	})
	return result, nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
