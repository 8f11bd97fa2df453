// Command seed creates an initial account user so a fresh deployment has
// something to log in with.
package main

import (
	"log"
	"os"

	"corebank/internal/config"
	"corebank/internal/models"
	"corebank/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	name := os.Getenv("SEED_USER_NAME")
	email := os.Getenv("SEED_USER_EMAIL")
	password := os.Getenv("SEED_USER_PASSWORD")

	if name == "" || email == "" || password == "" {
		log.Fatal("SEED_USER_NAME, SEED_USER_EMAIL and SEED_USER_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	var existing models.AccountUser
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Seed user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := models.AccountUser{
		Name:         name,
		Email:        email,
		Password:     string(hashed),
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&user).Error; err != nil {
		log.Fatal("Failed to create seed user:", err)
	}

	log.Printf("Seed user created: id=%d email=%s", user.ID, user.Email)
}
