package main

import (
	"fmt"
	"log"

	"claimdesk/internal/config"
	"claimdesk/internal/generator"
	"claimdesk/internal/generator/gemini"
	"claimdesk/internal/generator/stub"
	"claimdesk/internal/handler"
	"claimdesk/internal/loader"
	"claimdesk/internal/port"
	"claimdesk/internal/router"
	"claimdesk/internal/service"
	"claimdesk/internal/storage/localfs"
	s3storage "claimdesk/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Register generator providers
	generator.RegisterProvider("gemini", gemini.Factory)
	generator.RegisterProvider("stub", stub.Factory)

	// Initialize storage
	var storage port.ObjectStorage
	switch cfg.Storage.Provider {
	case "s3":
		storage, err = s3storage.NewS3Client(&cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	default:
		storage, err = localfs.NewStorage(cfg.Storage.LocalDir)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
	}

	// Initialize services
	generators := generator.NewCache(generator.Builder(&cfg.Generator))
	intakeSvc := service.NewIntakeService(loader.NewPDFLoader(), storage, &cfg.Storage)
	classifierSvc := service.NewClassifierService(generators)
	extractorSvc := service.NewExtractorService(generators, cfg.Generator.TaskTimeout())
	fastSvc := service.NewFastClaimService(generators)
	claimSvc := service.NewClaimService(intakeSvc, classifierSvc, extractorSvc, fastSvc)

	// Initialize handlers
	claimsH := handler.NewClaimsHandler(claimSvc)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg, claimsH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
