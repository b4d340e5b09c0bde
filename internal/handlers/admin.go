package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/percapital/faqbot-backend/internal/kb"
	"github.com/percapital/faqbot-backend/internal/models"
	"github.com/percapital/faqbot-backend/internal/services"
	"github.com/percapital/faqbot-backend/internal/storage"
)

// AdminHandler exposes read/delete access to sessions and ratings plus a
// manual send endpoint. These sit on top of the store; they never touch the
// conversation logic.
type AdminHandler struct {
	store     storage.Store
	sender    services.Sender
	knowledge *kb.KB
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(store storage.Store, sender services.Sender, knowledge *kb.KB) *AdminHandler {
	return &AdminHandler{
		store:     store,
		sender:    sender,
		knowledge: knowledge,
	}
}

// GetStats returns session/rating counts and the rating breakdown.
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	sessions, _ := h.store.CountSessions()

	ratings, err := h.store.GetRatings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load ratings",
		})
	}

	breakdown := make(map[string]int)
	for _, r := range ratings {
		breakdown[r.Label]++
	}

	return c.JSON(fiber.Map{
		"active_sessions":           sessions,
		"total_ratings":             len(ratings),
		"rating_breakdown":          breakdown,
		"knowledge_base_categories": h.knowledge.CategoryCount(),
		"total_questions":           h.knowledge.QuestionCount(),
	})
}

// GetSession returns session info for one user.
func (h *AdminHandler) GetSession(c *fiber.Ctx) error {
	phone := c.Params("phone")

	session, err := h.store.GetSession(phone)
	if err != nil {
		return c.JSON(fiber.Map{
			"exists": false,
			"state":  models.StateNew,
		})
	}

	return c.JSON(fiber.Map{
		"exists":           true,
		"state":            session.State,
		"category":         session.Category,
		"last_interaction": session.LastInteraction,
	})
}

// ClearSession deletes one user's session.
func (h *AdminHandler) ClearSession(c *fiber.Ctx) error {
	phone := c.Params("phone")

	if err := h.store.DeleteSession(phone); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	log.Printf("Session cleared for %s", phone)
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Session cleared for " + phone,
	})
}

// ClearAllSessions wipes every session.
func (h *AdminHandler) ClearAllSessions(c *fiber.Ctx) error {
	count, err := h.store.ClearSessions()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear sessions",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"cleared": count,
	})
}

type sendMessageRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// SendMessage sends a manual text message to a user.
func (h *AdminHandler) SendMessage(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid JSON",
		})
	}

	if req.To == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing 'to' or 'message'",
		})
	}
	if req.Type != "" && req.Type != "text" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only 'text' messages supported via this endpoint",
		})
	}

	if err := h.sender.SendText(c.UserContext(), req.To, req.Message); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Message sent",
	})
}
