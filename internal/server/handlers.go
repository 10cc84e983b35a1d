package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/serenity-health/serenity/internal/models"
	"github.com/serenity-health/serenity/internal/session"
	"go.uber.org/zap"
)

func userID(c *fiber.Ctx) string {
	return c.Locals("user_id").(string)
}

func (s *Server) getProfile(c *fiber.Ctx) error {
	profile, err := s.storage.GetProfile(c.Context(), userID(c))
	if err != nil {
		return s.storageError(c, err)
	}
	return c.JSON(fiber.Map{"data": profile})
}

func (s *Server) updateProfile(c *fiber.Ctx) error {
	var profile models.ClinicalProfile
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid profile body"})
	}
	if profile.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "profile name is required"})
	}

	if err := s.storage.SaveProfile(c.Context(), userID(c), &profile); err != nil {
		return s.storageError(c, err)
	}
	return c.JSON(fiber.Map{"data": profile})
}

func (s *Server) getMessages(c *fiber.Ctx) error {
	messages, err := s.storage.GetMessages(c.Context(), userID(c))
	if err != nil {
		return s.storageError(c, err)
	}
	return c.JSON(fiber.Map{"data": messages})
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid chat body"})
	}

	reply, err := s.sessions.HandleTurn(c.Context(), userID(c), req.Message)
	if err != nil {
		if errors.Is(err, session.ErrEmptyMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message is empty"})
		}
		return s.storageError(c, err)
	}
	return c.JSON(fiber.Map{"data": reply})
}

func (s *Server) endSession(c *fiber.Ctx) error {
	note, err := s.sessions.EndSession(c.Context(), userID(c))
	if err != nil {
		return s.storageError(c, err)
	}
	if note == nil {
		return c.JSON(fiber.Map{"data": nil, "message": "no note produced"})
	}

	s.notifier.SessionSummaryReady(note)
	return c.JSON(fiber.Map{"data": note})
}

func (s *Server) getNotes(c *fiber.Ctx) error {
	notes, err := s.storage.GetNotes(c.Context(), userID(c))
	if err != nil {
		return s.storageError(c, err)
	}
	return c.JSON(fiber.Map{"data": notes})
}

func (s *Server) getAppointments(c *fiber.Ctx) error {
	appointments, err := s.storage.GetAppointments(c.Context(), userID(c))
	if err != nil {
		return s.storageError(c, err)
	}
	return c.JSON(fiber.Map{"data": appointments})
}

func (s *Server) briefing(c *fiber.Ctx) error {
	text := s.sessions.MorningBriefing(c.Context(), userID(c))
	s.notifier.Briefing(text)
	return c.JSON(fiber.Map{"data": text})
}

func (s *Server) storageError(c *fiber.Ctx, err error) error {
	s.logger.Error("Storage operation failed", zap.Error(err), zap.String("user_id", userID(c)))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage unavailable"})
}
