package main

import (
	"log"

	"family-gifts/internal/api"
	"family-gifts/pkg/config"
	"family-gifts/pkg/db"
	"family-gifts/pkg/logger"
	"family-gifts/pkg/mailer"
)

func main() {
	if err := config.Init(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitLogger(config.GlobalConfig.Log.Level, config.GlobalConfig.Log.ProductionMode); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	r := api.NewRouter(mailer.NewSMTPMailer())

	if err := r.Run(config.GlobalConfig.Server.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
