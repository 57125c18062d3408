// Command admin_seed creates the initial admin account and the default
// package catalog. Safe to run more than once; existing rows are left
// alone.
package main

import (
	"context"
	"log"
	"os"

	"rishta/internal/config"
	"rishta/internal/models"
	"rishta/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}
	}()

	seedAdmin(adminEmail, adminPassword)
	seedPackages()
}

func seedAdmin(email, password string) {
	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Admin user already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Email:        email,
		Password:     string(hashedPassword),
		Role:         models.RoleAdmin,
		Status:       "active",
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	if repositories.CacheService != nil {
		if err := repositories.CacheService.InvalidateUser(context.Background(), admin.ID); err != nil {
			log.Printf("⚠️ Failed to invalidate user cache: %v", err)
		}
	}
	log.Println("✅ Admin account created successfully!")
}

func seedPackages() {
	var count int64
	if err := repositories.DB.Model(&models.Package{}).Count(&count).Error; err != nil {
		log.Fatal("Failed to count packages:", err)
	}
	if count > 0 {
		log.Println("Package catalog already seeded")
		return
	}

	catalog := []models.Package{
		{Name: "Basic", PricePKR: 1500, ProposalsCount: 3, ValidityDays: 30, IsActive: true},
		{Name: "Standard", PricePKR: 3500, ProposalsCount: 10, ValidityDays: 60, IsActive: true},
		{Name: "Premium", PricePKR: 7000, ProposalsCount: 25, ValidityDays: 90, IsActive: true},
	}
	for i := range catalog {
		if err := repositories.DB.Create(&catalog[i]).Error; err != nil {
			log.Fatal("Failed to seed package catalog:", err)
		}
	}
	log.Println("✅ Package catalog seeded")
}
