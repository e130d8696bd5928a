package main

import (
	"time"

	"nacp/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

const (
	dbConnectAttempts = 5
	dbConnectDelay    = 2 * time.Second
)

// initDB connects to Postgres with a bounded retry, runs migrations and
// seeds the master data. Nothing else in the process retries automatically.
func initDB(cfg Config) {
	var err error
	for attempt := 1; attempt <= dbConnectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
		if err == nil {
			break
		}
		logger.Warn("database connect failed",
			zap.Int("attempt", attempt), zap.Int("max_attempts", dbConnectAttempts), zap.Error(err))
		if attempt < dbConnectAttempts {
			time.Sleep(dbConnectDelay)
		}
	}
	if err != nil {
		logger.Fatal("failed to connect postgres database", zap.Error(err))
	}

	if cfg.AutoMigrate {
		// Roles first so the users FK can be applied safely.
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			logger.Warn("migration warning (roles)", zap.Error(err))
		}
		seedRoles()
		// Migrate models individually so a failure on one doesn't block others.
		for _, m := range []struct {
			name  string
			model any
		}{
			{"users", &models.User{}},
			{"refresh_tokens", &models.RefreshToken{}},
			{"holders", &models.Holder{}},
			{"household_summary", &models.HouseholdSummary{}},
			{"household_members", &models.HouseholdMember{}},
			{"holding_labour", &models.HoldingLabour{}},
			{"survey_responses", &models.SurveyResponse{}},
			{"survey_progress", &models.SurveyProgress{}},
		} {
			if err := db.AutoMigrate(m.model); err != nil {
				logger.Warn("migration warning ("+m.name+")", zap.Error(err))
			}
		}
	}
	seedDB(cfg)
}

func seedRoles() {
	roles := []models.Role{
		{Name: models.RoleHolder, Description: "farm holder respondent"},
		{Name: models.RoleAgent, Description: "field agent"},
		{Name: models.RoleAdmin, Description: "full access"},
	}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}
}

func seedDB(cfg Config) {
	seedRoles()

	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		var role models.Role
		if err := db.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
			logger.Warn("failed to find admin role", zap.Error(err))
		}
		rid := role.ID
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		admin := models.User{
			Username:       "admin",
			HashedPassword: hashedPassword,
			RoleID:         &rid,
			Status:         models.StatusApproved,
		}
		if err := db.Create(&admin).Error; err != nil {
			logger.Warn("failed to seed admin user", zap.Error(err))
		} else {
			logger.Info("seeded admin user", zap.String("username", "admin"))
		}
	}
}
