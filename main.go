package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/percapital/faqbot-backend/database"
	"github.com/percapital/faqbot-backend/internal/jobs"
	"github.com/percapital/faqbot-backend/internal/kb"
	"github.com/percapital/faqbot-backend/internal/models"
	"github.com/percapital/faqbot-backend/internal/routes"
	"github.com/percapital/faqbot-backend/internal/services"
	"github.com/percapital/faqbot-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		err := godotenv.Load(".env")
		if err != nil {
			err = godotenv.Load("environments/.env.development")
			if err != nil {
				log.Println("⚠️  No .env file found - checking environment variables")
			}
		}
	}

	validateEnv()

	// Initialize storage
	var store storage.Store
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (sessions do not survive restarts)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.Session{},
			&models.Rating{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}
	storage.SetStore(store)

	// Knowledge base: built-in data, optionally overridden by KB_FILE
	knowledge := kb.Default()
	var stopWatch func()
	if kbFile := os.Getenv("KB_FILE"); kbFile != "" {
		roots, err := kb.LoadFile(kbFile)
		if err != nil {
			log.Fatalf("Failed to load KB file %s: %v", kbFile, err)
		}
		knowledge.Replace(roots)
		log.Printf("✅ Knowledge base loaded from %s", kbFile)

		stopWatch, err = kb.Watch(knowledge, kbFile)
		if err != nil {
			log.Printf("⚠️  KB file watch unavailable: %v", err)
		}
	}
	log.Printf("📚 KB ready: %d categories, %d questions",
		knowledge.CategoryCount(), knowledge.QuestionCount())

	// Messaging gateway and conversation driver
	whatsappService := services.NewWhatsAppService()
	driver := services.NewConversationDriver(store, whatsappService, knowledge)

	// Session expiry sweep
	cleanupJob := jobs.NewCleanupJob(store, driver.SessionTTL)
	cleanupJob.Start()

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "Per Capital WhatsApp Chatbot v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	routes.SetupRoutes(app, store, whatsappService, driver, knowledge)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		cleanupJob.Stop()
		if stopWatch != nil {
			stopWatch()
		}
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 Per Capital WhatsApp Chatbot starting on port %s", port)
	log.Printf("📊 Storage: %s", storageType())
	log.Printf("📱 WhatsApp: %s", whatsappStatus(whatsappService))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

// validateEnv logs which credentials are present; placeholder values ship in
// example configs and would silently break outbound sends.
func validateEnv() {
	required := map[string]string{
		"WHATSAPP_TOKEN":  os.Getenv("WHATSAPP_TOKEN"),
		"PHONE_NUMBER_ID": os.Getenv("PHONE_NUMBER_ID"),
		"VERIFY_TOKEN":    os.Getenv("VERIFY_TOKEN"),
	}

	for name, value := range required {
		switch {
		case value == "":
			log.Printf("⚠️  Missing required env var: %s", name)
		case strings.Contains(strings.ToLower(value), "your_"):
			log.Printf("⚠️  Placeholder value detected for %s", name)
		}
	}

	if os.Getenv("APP_SECRET") == "" {
		log.Println("⚠️  APP_SECRET not set - webhook signature verification disabled")
	}

	if os.Getenv("USE_MEMORY_STORE") != "true" {
		if os.Getenv("DB_PASS") == "" {
			log.Println("⚠️  DB_PASS not set - database connection will likely fail")
		}
		if os.Getenv("DB_NAME") == "" {
			log.Println("ℹ️  DB_NAME not set - using default database 'faqbot'")
		}
	}
}

func storageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory"
	}
	return "PostgreSQL Database"
}

func whatsappStatus(w *services.WhatsAppService) string {
	if !w.Configured() {
		return "Not configured"
	}
	return "Configured"
}
