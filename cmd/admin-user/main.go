// Command admin-user bootstraps an admin login. Run it once against a fresh
// database before starting the server.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"growfin.backend/internal/config"
	"growfin.backend/internal/infrastructure/models"
	"growfin.backend/pkg/crypto"
)

func main() {
	email := flag.String("email", "", "admin email")
	name := flag.String("name", "", "admin display name")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		log.Fatal("email, name, and password are required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.Database.URL()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	var existing models.User
	if err := db.Where("email = ?", *email).First(&existing).Error; err == nil {
		log.Fatalf("user %s already exists", *email)
	}

	hash, err := crypto.HashPassword(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.New(),
		Email:        *email,
		PasswordHash: hash,
		Name:         *name,
		Role:         "admin",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	log.Printf("admin user created: %s (%s)", user.Email, user.ID)
}
