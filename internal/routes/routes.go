package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/percapital/faqbot-backend/internal/handlers"
	"github.com/percapital/faqbot-backend/internal/kb"
	"github.com/percapital/faqbot-backend/internal/middleware"
	"github.com/percapital/faqbot-backend/internal/services"
	"github.com/percapital/faqbot-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, sender services.Sender, driver *services.ConversationDriver, knowledge *kb.KB) {
	healthHandler := handlers.NewHealthHandler("1.0.0", store, knowledge)
	whatsappHandler := handlers.NewWhatsAppHandler(driver)
	adminHandler := handlers.NewAdminHandler(store, sender, knowledge)

	// Health / root status
	app.Get("/", healthHandler.Check)
	app.Get("/health", healthHandler.Check)

	// ========== WEBHOOK ROUTES ==========
	app.Get("/webhook", whatsappHandler.HandleVerify)

	if os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" {
		println("⚠️  WhatsApp webhook signature validation DISABLED")
		app.Post("/webhook", whatsappHandler.HandleWebhook)
	} else {
		app.Post("/webhook", middleware.ValidateSignature(), whatsappHandler.HandleWebhook)
	}

	// ========== ADMIN ROUTES ==========
	app.Get("/stats", adminHandler.GetStats)
	app.Post("/send-message", adminHandler.SendMessage)

	sessions := app.Group("/sessions")
	sessions.Get("/:phone", adminHandler.GetSession)
	sessions.Delete("/:phone", adminHandler.ClearSession)
	app.Delete("/sessions", adminHandler.ClearAllSessions)
}
