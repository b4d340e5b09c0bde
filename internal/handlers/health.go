package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/percapital/faqbot-backend/internal/kb"
	"github.com/percapital/faqbot-backend/internal/storage"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	Version   string
	store     storage.Store
	knowledge *kb.KB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, store storage.Store, knowledge *kb.KB) *HealthHandler {
	return &HealthHandler{
		Version:   version,
		store:     store,
		knowledge: knowledge,
	}
}

// Check returns the health status of the service with store and KB counts.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	sessions, _ := h.store.CountSessions()
	ratings, _ := h.store.CountRatings()

	return c.JSON(fiber.Map{
		"status":          "healthy",
		"service":         "Per Capital WhatsApp Chatbot",
		"version":         h.Version,
		"active_sessions": sessions,
		"total_ratings":   ratings,
		"total_questions": h.knowledge.QuestionCount(),
	})
}
