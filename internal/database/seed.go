package database

import (
	"os"

	"github.com/workshop-manager/workshop-manager/internal/logger"
	"github.com/workshop-manager/workshop-manager/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SeedDefaultChief creates a chief account plus its employee record when no
// chief-capable user exists yet. Credentials come from the environment so
// deployments never ship the fallback values.
func SeedDefaultChief() {
	email := os.Getenv("CHIEF_EMAIL")
	if email == "" {
		email = "chief@workshop.local"
	}
	password := os.Getenv("CHIEF_PASSWORD")
	if password == "" {
		password = "Chief123!"
	}

	var count int64
	if err := DB.Model(&models.Employee{}).
		Where("position IN ?", []string{"chief", "admin"}).
		Count(&count).Error; err != nil {
		logger.Error("failed to check chief employee", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash default chief password", err)
		return
	}

	employee := models.Employee{
		Name:     "Workshop Chief",
		Position: "chief",
		Email:    email,
	}
	if err := DB.Create(&employee).Error; err != nil {
		logger.Error("failed to create default chief employee", err)
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		EmployeeID:   &employee.ID,
	}
	if err := DB.Create(&user).Error; err != nil {
		logger.Error("failed to create default chief user", err)
		return
	}

	logger.Info("created default chief account", zap.String("email", email))
}
