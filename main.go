package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"tasktracker/m/internal/api"
	"tasktracker/m/internal/config"
	"tasktracker/m/internal/database"
	"tasktracker/m/internal/migrations"
	"tasktracker/m/internal/seed"
	"tasktracker/m/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	seed.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminUsername, cfg.AdminPassword)

	handler := api.New(
		service.NewAuth(db, cfg.Secret, cfg.TokenTTL),
		service.NewTask(db),
		cfg.Secret,
	)

	log.Printf("task tracker API starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
