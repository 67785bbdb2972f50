package main

import (
	"context"
	"log"

	"docintel-be/internal/bootstrap"
	"docintel-be/internal/config"
	"docintel-be/internal/server"
	"docintel-be/internal/tracer"
	"docintel-be/pkg/database"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

func main() {
	// 0. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Configuration
	cfg := config.Load()

	// 2. Database, only needed by the persistent vector store
	var gormDB *gorm.DB
	if cfg.Engine.VectorStore == "postgres" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
	}

	// 3. Dependency container
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Background consumer for async bulk ingestion
	go func() {
		log.Println("Background: starting ingest consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	// 5. HTTP server
	srv := server.New(cfg, container)

	color.Cyan("docintel engine ready")
	color.Green("listening on :%s (%s, store=%s)", cfg.App.Port, cfg.App.Environment, cfg.Engine.VectorStore)

	log.Fatal(srv.Run())
}
