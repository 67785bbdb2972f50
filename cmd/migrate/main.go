package main

import (
	"log"
	"os"

	"docintel-be/internal/model"
	"docintel-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM migration...")

	// pgvector must exist before the vector(768) column can migrate
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector;`).Error; err != nil {
		log.Printf("Warn: failed to create vector extension: %v. Continuing...", err)
	}

	if err := db.AutoMigrate(&model.VectorDocument{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// ANN index for the cosine-distance scans the repository issues
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_vector_documents_embedding
		ON vector_documents USING hnsw (embedding vector_cosine_ops);`).Error; err != nil {
		log.Printf("Warn: failed to create hnsw index: %v", err)
	}

	log.Println("Success: database migration completed.")
}
