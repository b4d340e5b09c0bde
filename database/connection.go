package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// dbConfig is the environment-derived connection surface. Only DB_PASS has
// no default; everything else falls back to a sane local setup.
type dbConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	// InstanceConnectionName switches to a Cloud SQL unix socket when set.
	InstanceConnectionName string
}

func configFromEnv() dbConfig {
	cfg := dbConfig{
		User:                   os.Getenv("DB_USER"),
		Password:               os.Getenv("DB_PASS"),
		Name:                   os.Getenv("DB_NAME"),
		Host:                   os.Getenv("DB_HOST"),
		Port:                   os.Getenv("DB_PORT"),
		InstanceConnectionName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
	if cfg.User == "" {
		cfg.User = "postgres"
	}
	if cfg.Name == "" {
		cfg.Name = "faqbot"
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	return cfg
}

// buildDSN renders the Postgres DSN: a /cloudsql unix socket when an instance
// connection name is present, host/port TCP otherwise.
func buildDSN(cfg dbConfig) string {
	if cfg.InstanceConnectionName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.InstanceConnectionName, cfg.User, cfg.Password, cfg.Name)
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
}

func Connect() {
	cfg := configFromEnv()

	if cfg.InstanceConnectionName != "" {
		log.Printf("Connecting to Cloud SQL via socket: %s", cfg.InstanceConnectionName)
	} else {
		log.Printf("Connecting to PostgreSQL at %s:%s", cfg.Host, cfg.Port)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(buildDSN(cfg)), &gorm.Config{})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		panic(err)
	}

	log.Println("✅ Database connected successfully!")
}
