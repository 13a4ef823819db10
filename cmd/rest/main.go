package main

import (
	"context"
	"log"

	"scouting-agent-be/internal/bootstrap"
	"scouting-agent-be/internal/config"
	"scouting-agent-be/internal/server"
	"scouting-agent-be/internal/tracer"
	"scouting-agent-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.StatsRegistry.Close()

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Report Render Consumer...")
		if err := container.ReportService.Consume(context.Background()); err != nil {
			log.Printf("Background Render Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
