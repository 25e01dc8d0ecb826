package db

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/socialboard/socialboard-server/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewPSQLStorage() (*gorm.DB, error) {

	if err := godotenv.Load(); err != nil {
		log.Warn.Println("No .env file found, relying on the environment")
	}

	connString := os.Getenv("DB_URL")

	// TranslateError surfaces unique violations as gorm.ErrDuplicatedKey,
	// which the user handlers map to the fixed duplicate-nickname message.
	db, err := gorm.Open(postgres.Open(connString), &gorm.Config{
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(25)

	sqlDB.SetMaxIdleConns(25)

	return db, nil
}
