package handlers

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/percapital/faqbot-backend/internal/models"
	"github.com/percapital/faqbot-backend/internal/services"
)

// WhatsAppHandler handles WhatsApp webhook requests
type WhatsAppHandler struct {
	driver *services.ConversationDriver
}

// NewWhatsAppHandler creates a new WhatsApp handler
func NewWhatsAppHandler(driver *services.ConversationDriver) *WhatsAppHandler {
	return &WhatsAppHandler{driver: driver}
}

// HandleVerify answers Meta's webhook verification handshake (GET).
func (h *WhatsAppHandler) HandleVerify(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == os.Getenv("VERIFY_TOKEN") {
		log.Println("✅ Webhook verified")
		return c.SendString(challenge)
	}

	log.Printf("🚨 Webhook verification failed (mode=%q)", mode)
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error": "Forbidden",
	})
}

// HandleWebhook processes incoming WhatsApp messages (POST). Individual
// message failures are contained: the provider always gets a 200 for a
// structurally valid payload, otherwise it retries the whole delivery.
func (h *WhatsAppHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload models.WebhookPayload
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid JSON",
		})
	}

	if payload.Object == "whatsapp_business_account" {
		for _, entry := range payload.Entry {
			for _, change := range entry.Changes {
				for _, msg := range change.Value.Messages {
					go h.processMessage(msg)
				}
				for _, status := range change.Value.Statuses {
					log.Printf("Status update: id=%s status=%s recipient=%s",
						status.ID, status.Status, status.RecipientID)
				}
			}
		}
	}

	return c.JSON(fiber.Map{"status": "success"})
}

// processMessage runs one message through the driver, recovering from any
// panic so one bad message never takes down the delivery batch.
func (h *WhatsAppHandler) processMessage(msg models.InboundMessage) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Panic processing message %s from %s: %v", msg.ID, msg.From, r)
		}
	}()

	if msg.From == "" {
		log.Printf("Skipping message %s with no sender", msg.ID)
		return
	}

	h.driver.HandleMessage(context.Background(), msg)
}
