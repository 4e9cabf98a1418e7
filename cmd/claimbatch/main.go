// Command claimbatch runs the claim pipeline over PDF files on disk and
// writes the combined result as JSON to stdout. Useful for smoke-testing
// prompts and schemas without the HTTP surface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"claimdesk/internal/config"
	"claimdesk/internal/generator"
	"claimdesk/internal/generator/gemini"
	"claimdesk/internal/generator/stub"
	"claimdesk/internal/loader"
	"claimdesk/internal/service"
	"claimdesk/internal/storage/localfs"
)

func main() {
	fast := flag.Bool("fast", false, "use the single-call fused pipeline")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: claimbatch [-fast] file.pdf [file.pdf ...]")
		os.Exit(2)
	}

	if err := run(*fast, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(fast bool, paths []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	generator.RegisterProvider("gemini", gemini.Factory)
	generator.RegisterProvider("stub", stub.Factory)

	storage, err := localfs.NewStorage(cfg.Storage.LocalDir)
	if err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}

	generators := generator.NewCache(generator.Builder(&cfg.Generator))
	intakeSvc := service.NewIntakeService(loader.NewPDFLoader(), storage, &cfg.Storage)
	classifierSvc := service.NewClassifierService(generators)
	extractorSvc := service.NewExtractorService(generators, cfg.Generator.TaskTimeout())
	fastSvc := service.NewFastClaimService(generators)
	claimSvc := service.NewClaimService(intakeSvc, classifierSvc, extractorSvc, fastSvc)

	files := make([]service.UploadedFile, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		files = append(files, service.UploadedFile{
			Name:    filepath.Base(path),
			Content: content,
		})
	}

	ctx := context.Background()

	var result any
	if fast {
		result, err = claimSvc.GenerateFastClaim(ctx, files)
	} else {
		result, err = claimSvc.GenerateClaim(ctx, files)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
