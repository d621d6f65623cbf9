package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sndservices/snd-crm-backend/internal/config"
	"github.com/sndservices/snd-crm-backend/internal/models"
)

// InitDB initializes the database connection and performs migrations
func InitDB() (*gorm.DB, error) {
	// Get database connection parameters from environment variables
	host := config.GetEnv("DB_HOST", "")
	port := config.GetEnv("DB_PORT", "")
	user := config.GetEnv("DB_USER", "")
	password := config.GetEnv("DB_PASSWORD", "")
	dbname := config.GetEnv("DB_NAME", "")
	sslmode := config.GetEnv("DB_SSLMODE", "disable")

	// Validate required environment variables
	if host == "" || port == "" || user == "" || password == "" || dbname == "" {
		return nil, fmt.Errorf("missing required database environment variables. Please check your .env file")
	}

	// Create DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	// Configure GORM logger
	gormLogger := logger.New(
		logrus.New(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Enable UUID generation
	err = db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
	if err != nil {
		return nil, fmt.Errorf("failed to enable UUID extension: %w", err)
	}

	// Auto migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Organization{},
		&models.Franchisee{},
		&models.Branch{},
		&models.Client{},
		&models.Job{},
		&models.JobItem{},
		&models.Payment{},
		&models.Role{},
		&models.UserOrganizationRole{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := seedDefaultRoles(db); err != nil {
		return nil, err
	}

	logrus.Info("Database connection established and migrations completed")
	return db, nil
}

// seedDefaultRoles creates the built-in roles if they don't exist
func seedDefaultRoles(db *gorm.DB) error {
	defaultRoles := []struct {
		name        string
		description string
	}{
		{models.RoleAdmin, "Full administrative access"},
		{models.RoleOrganizationOwner, "Owns an organization and its franchisees"},
		{models.RoleDispatcher, "Schedules and assigns jobs"},
		{models.RoleTechnician, "Works assigned jobs"},
	}

	for _, roleData := range defaultRoles {
		var count int64
		if err := db.Model(&models.Role{}).Where("name = ?", roleData.name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check role %q: %w", roleData.name, err)
		}
		if count == 0 {
			role := &models.Role{
				Name:        roleData.name,
				Description: roleData.description,
			}
			if err := db.Create(role).Error; err != nil {
				return fmt.Errorf("failed to create role %q: %w", roleData.name, err)
			}
			logrus.Infof("Created default role '%s'", roleData.name)
		}
	}
	return nil
}
