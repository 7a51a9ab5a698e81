package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AlexSpeaker/shop-app/configs"
	"github.com/AlexSpeaker/shop-app/internal/models"
)

var DB *gorm.DB

func Init(cfg config.DBConfig) {

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode,
	)

	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	if err = Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	log.Println("Database connected and migrated successfully")
}

// Migrate creates or updates the schema for every entity.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Sale{},
		&models.Review{},
		&models.Order{},
		&models.Basket{},
	)
}

func SetTestDB(testDB *gorm.DB) {
	DB = testDB
}
