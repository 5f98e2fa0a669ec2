package db

import (
	"fmt"
	"log"

	"family-gifts/internal/model"
	"family-gifts/pkg/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens the database configured in config.GlobalConfig and migrates
// the schema. The sqlite driver exists for the test configuration.
func InitDB() error {
	cfg := config.GlobalConfig.Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		dialector = mysql.Open(cfg.DSN)
	}

	// TranslateError turns driver-specific duplicate-key failures into
	// gorm.ErrDuplicatedKey so the repositories can surface them as conflicts.
	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = DB.AutoMigrate(
		&model.User{},
		&model.Family{},
		&model.FamilyMember{},
		&model.Profile{},
		&model.WishlistItem{},
		&model.GiftGroup{},
		&model.GiftGroupMember{},
		&model.Message{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database connected and migrated successfully")
	return nil
}
