// @title Kitabu Backend API
// @version 1.0
// @description Backend server for the Kitabu Grade 8 CBC learning platform.

// @contact.name API Support

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"github.com/samora254/KitabuNew/internal/app"
	"github.com/samora254/KitabuNew/internal/config"
	"github.com/samora254/KitabuNew/pkg/configwatcher"
	"github.com/samora254/KitabuNew/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force database migrations on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration complete, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(reloaded interface{}) {
		if next, ok := reloaded.(*config.Config); ok {
			application.ReloadConfig(next)
		}
	})

	application.Run()
}
