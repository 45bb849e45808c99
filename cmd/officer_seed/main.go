// Command officer_seed creates the first loan officer account so the
// intake API can be logged into on a fresh deployment.
package main

import (
	"log"
	"os"

	"origo/internal/config"
	"origo/internal/models"
	"origo/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	email := os.Getenv("OFFICER_EMAIL")
	password := os.Getenv("OFFICER_PASSWORD")
	phone := os.Getenv("OFFICER_PHONE")
	name := config.GetEnv("OFFICER_NAME", "Branch Officer")
	branch := config.GetEnv("OFFICER_BRANCH", "")
	role := config.GetEnv("OFFICER_ROLE", "admin")

	if email == "" || password == "" || phone == "" {
		log.Fatal("OFFICER_EMAIL, OFFICER_PASSWORD, and OFFICER_PHONE must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.CloseDB()

	var existing models.LoanOfficer
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Officer account already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	officer := models.LoanOfficer{
		Email:        email,
		Password:     string(hashed),
		Name:         name,
		Phone:        phone,
		Branch:       branch,
		Role:         role,
		Status:       "active",
		TokenVersion: 1,
	}

	if err := repositories.DB.Create(&officer).Error; err != nil {
		log.Fatal("Failed to create officer account:", err)
	}

	log.Printf("Officer account created: %s (%s)", officer.Email, officer.Role)
}
