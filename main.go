package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/camden-git/datasentinel/config"
	"github.com/camden-git/datasentinel/department"
	"github.com/camden-git/datasentinel/handlers"
	"github.com/camden-git/datasentinel/media"
	"github.com/camden-git/datasentinel/ocr/tesseract"
	"github.com/camden-git/datasentinel/pii"
	"github.com/camden-git/datasentinel/services"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	classifier, err := department.LoadFile(cfg.DepartmentsFile)
	if err != nil {
		log.Fatalf("FATAL: Failed to load department keywords: %v", err)
	}
	log.Printf("Department keywords: %v", classifier.Keywords())

	detector := pii.NewClient(cfg.LanguageEndpoint, cfg.LanguageKey, cfg.PIILanguage, nil)
	log.Printf("Using language endpoint: %s (language %s)", cfg.LanguageEndpoint, cfg.PIILanguage)

	engine := tesseract.NewEngine()
	encoder := media.NewEncoder(cfg.ThumbnailMaxSize)
	extraction := services.NewExtractionService(engine, detector, classifier, encoder)

	extractHandler := handlers.NewExtractHandler(extraction, cfg.MaxUploadBytes)
	router := handlers.NewRouter(extractHandler, cfg.AllowedOrigins, cfg.RequestTimeout)

	serverAddr := ":" + cfg.Port
	fmt.Printf("Server starting on http://localhost:%s\n", cfg.Port)
	log.Printf("Server listening on %s (max upload %d bytes)", serverAddr, cfg.MaxUploadBytes)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
