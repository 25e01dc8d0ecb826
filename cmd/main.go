package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/socialboard/socialboard-server/cmd/api"
	"github.com/socialboard/socialboard-server/cmd/models"
	"github.com/socialboard/socialboard-server/db"
	"github.com/socialboard/socialboard-server/log"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrations()
			return
		default:
			log.Error.Fatalf("Unknown command: %s", os.Args[1])
		}
	}

	startServer()
}

func runMigrations() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		log.Error.Fatalf("Database initialization error: %v", err)
	}
	defer func() {
		sqlDB, _ := DB.DB()
		sqlDB.Close()
		log.Info.Println("Database connection closed")
	}()
	log.Info.Println("Connected to the database for migrations")

	if err := performMigrations(DB); err != nil {
		log.Error.Fatalf("Migration error: %v", err)
	}
	log.Info.Println("Migrations completed successfully")
}

func performMigrations(DB *gorm.DB) error {

	migrations := map[interface{}]string{
		&models.User{}:        "User",
		&models.Post{}:        "Post",
		&models.Interaction{}: "Interaction",
	}

	log.Info.Println("Starting database migrations...")
	for model, name := range migrations {
		log.Info.Printf("Migrating %s table...", name)
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", name, err)
		}
		log.Info.Printf("%s migration successful", name)
	}

	return nil
}

func startServer() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		log.Error.Fatalf("Database initialization error: %v", err)
	}
	defer func() {
		sqlDB, _ := DB.DB()
		sqlDB.Close()
		log.Info.Println("Database connection closed")
	}()
	log.Info.Println("Connected to the database")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	server := api.NewApiServer(":"+port, DB)

	go func() {
		if err := server.Run(); err != nil {
			log.Error.Fatalf("Server error: %v", err)
		}
	}()
	log.Info.Printf("Server running on port %s", port)

	<-quit
	log.Info.Println("Shutting down server...")
}
