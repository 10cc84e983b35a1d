package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/serenity-health/serenity/internal/gateway"
	"github.com/serenity-health/serenity/internal/models"
	"github.com/serenity-health/serenity/internal/storage"
	"go.uber.org/zap"
)

const (
	// FallbackReply is returned for a chat turn when generation fails.
	FallbackReply = "I'm momentarily disconnected from my cognitive engine. Please give me a moment."
	// FallbackBriefing is returned when briefing generation fails.
	FallbackBriefing = "System online. Ready for sessions."

	// profileWindow is how many recent messages feed the profile update.
	profileWindow = 10
)

// ErrEmptyMessage rejects blank chat input before any write or gateway call.
var ErrEmptyMessage = errors.New("message is empty")

// Service orchestrates chat turns and end-of-session summarization. It holds
// no per-user state; every call reads and writes through the store.
type Service struct {
	storage storage.Storage
	gateway gateway.Gateway
	logger  *zap.Logger
}

func New(store storage.Storage, gw gateway.Gateway, logger *zap.Logger) *Service {
	return &Service{
		storage: store,
		gateway: gw,
		logger:  logger,
	}
}

// HandleTurn processes one user chat message and returns the model reply.
// Both messages are persisted: the user message before the gateway call, the
// model message after. Generation failure degrades to FallbackReply.
func (s *Service) HandleTurn(ctx context.Context, userID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	profile, err := s.storage.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := s.storage.GetMessages(ctx, userID)
	if err != nil {
		return nil, err
	}

	userMsg := &models.Message{
		ID:        uuid.New().String(),
		UserID:    userID,
		Role:      models.RoleUser,
		Content:   content,
		IsCrisis:  detectCrisis(content),
		CreatedAt: time.Now(),
	}
	if err := s.storage.AddMessage(ctx, userMsg); err != nil {
		return nil, err
	}
	if userMsg.IsCrisis {
		s.logger.Warn("Crisis phrase detected in message",
			zap.String("user_id", userID),
			zap.String("message_id", userMsg.ID))
	}

	reply, err := s.gateway.Generate(ctx, gateway.Request{
		System:  therapistPrompt(profile),
		History: toTurns(history),
		Input:   content,
	})
	if err != nil || reply == "" {
		if err != nil {
			s.logger.Error("Failed to generate reply", zap.Error(err), zap.String("user_id", userID))
		}
		reply = FallbackReply
	}

	modelMsg := &models.Message{
		ID:        uuid.New().String(),
		UserID:    userID,
		Role:      models.RoleModel,
		Content:   reply,
		CreatedAt: time.Now(),
	}
	if err := s.storage.AddMessage(ctx, modelMsg); err != nil {
		return nil, err
	}

	return modelMsg, nil
}

// EndSession derives a SOAP note and an updated profile from the transcript.
// With fewer than two messages there is no session to summarize and nil is
// returned without contacting the gateway. The two generation steps are
// independent; a failure in one never blocks the other.
func (s *Service) EndSession(ctx context.Context, userID string) (*models.ClinicalNote, error) {
	messages, err := s.storage.GetMessages(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(messages) < 2 {
		return nil, nil
	}

	note := s.generateNote(ctx, userID, messages)
	if note != nil {
		if err := s.storage.AddNote(ctx, note); err != nil {
			return nil, err
		}
	}

	if err := s.updateProfile(ctx, userID, messages); err != nil {
		return nil, err
	}

	return note, nil
}

// soapResponse is the JSON shape requested from the gateway for a note.
type soapResponse struct {
	Subjective string `json:"subjective"`
	Objective  string `json:"objective"`
	Assessment string `json:"assessment"`
	Plan       string `json:"plan"`
	Summary    string `json:"summary"`
	Type       string `json:"type"`
}

// generateNote returns nil when no note could be produced; that outcome is
// logged, never propagated.
func (s *Service) generateNote(ctx context.Context, userID string, messages []*models.Message) *models.ClinicalNote {
	raw, err := s.gateway.Generate(ctx, gateway.Request{
		Input:    soapNotePrompt(formatTranscript(messages)),
		JSONOnly: true,
	})
	if err != nil {
		s.logger.Error("Failed to generate session note", zap.Error(err), zap.String("user_id", userID))
		return nil
	}

	var parsed soapResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		s.logger.Error("Failed to parse session note response",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("response", raw))
		return nil
	}

	noteType := models.NoteType(parsed.Type)
	if !models.ValidNoteType(noteType) {
		noteType = models.NoteFollowUp
	}

	return &models.ClinicalNote{
		ID:          uuid.New().String(),
		UserID:      userID,
		SessionDate: time.Now(),
		Type:        noteType,
		Subjective:  parsed.Subjective,
		Objective:   parsed.Objective,
		Assessment:  parsed.Assessment,
		Plan:        parsed.Plan,
		Summary:     parsed.Summary,
	}
}

// updateProfile asks the gateway for a full replacement profile based on the
// recent transcript. Updates missing a name or diagnoses are rejected
// silently and the stored profile is left untouched.
func (s *Service) updateProfile(ctx context.Context, userID string, messages []*models.Message) error {
	current, err := s.storage.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	currentJSON, err := json.Marshal(current)
	if err != nil {
		return err
	}

	recent := messages
	if len(recent) > profileWindow {
		recent = recent[len(recent)-profileWindow:]
	}

	raw, err := s.gateway.Generate(ctx, gateway.Request{
		Input:    profileUpdatePrompt(string(currentJSON), formatTranscript(recent)),
		JSONOnly: true,
	})
	if err != nil {
		s.logger.Error("Failed to generate profile update", zap.Error(err), zap.String("user_id", userID))
		return nil
	}

	var updated models.ClinicalProfile
	if err := json.Unmarshal([]byte(raw), &updated); err != nil {
		s.logger.Error("Failed to parse profile update response",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("response", raw))
		return nil
	}

	if updated.Name == "" || len(updated.Diagnosis) == 0 {
		s.logger.Warn("Rejected profile update missing required fields", zap.String("user_id", userID))
		return nil
	}

	return s.storage.SaveProfile(ctx, userID, &updated)
}

// MorningBriefing produces a short advisory status line for the dashboard.
// Nothing is persisted; any failure degrades to FallbackBriefing.
func (s *Service) MorningBriefing(ctx context.Context, userID string) string {
	profile, err := s.storage.GetProfile(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load profile for briefing", zap.Error(err), zap.String("user_id", userID))
		return FallbackBriefing
	}
	appointments, err := s.storage.GetAppointments(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load appointments for briefing", zap.Error(err), zap.String("user_id", userID))
		return FallbackBriefing
	}

	upcoming := 0
	for _, appt := range appointments {
		if appt.Status == models.AppointmentUpcoming {
			upcoming++
		}
	}

	briefing, err := s.gateway.Generate(ctx, gateway.Request{
		Input: briefingPrompt(upcoming, profile),
	})
	if err != nil || briefing == "" {
		if err != nil {
			s.logger.Error("Failed to generate briefing", zap.Error(err), zap.String("user_id", userID))
		}
		return FallbackBriefing
	}
	return briefing
}

func toTurns(messages []*models.Message) []gateway.Turn {
	turns := make([]gateway.Turn, 0, len(messages))
	for _, m := range messages {
		turns = append(turns, gateway.Turn{Role: string(m.Role), Content: m.Content})
	}
	return turns
}
