package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"fupa/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func getDBConfigByEnv(env string, tz string) (string, error) {
	var prefix string

	switch env {
	case "dev":
		prefix = "DEV_"
	case "qc":
		prefix = "QC_"
	case "prod":
		prefix = "PROD_"
	default:
		return "", fmt.Errorf("unknown environment: %s", env)
	}

	user := os.Getenv(prefix + "DB_USER")
	password := os.Getenv(prefix + "DB_PASSWORD")
	host := os.Getenv(prefix + "DB_HOST")
	port := os.Getenv(prefix + "DB_PORT")
	name := os.Getenv(prefix + "DB_NAME")
	sslmode := GetEnvDefault(prefix+"DB_SSLMODE", "require")

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, name, port, sslmode, tz), nil
}

// ConnectDB opens the postgres connection for env and migrates the schema.
func ConnectDB(env string, tz string) (*gorm.DB, error) {
	dsn, err := getDBConfigByEnv(strings.ToLower(env), tz)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.AttendanceRecord{},
		&models.OverrideRule{},
		&models.Announcement{},
		&models.Notification{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Println("Successfully connected to db")
	return db, nil
}
