package main

import (
	"fmt"
	"log"

	"cocoa/internal/config"
	"cocoa/internal/pipeline"
)

func main() {
	fmt.Println("🍫 COCOA PRODUCTION ANALYSIS")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}
	fmt.Printf("Processing %s...\n", cfg.InputPath)

	runner := &pipeline.Runner{Config: cfg}
	if _, err := runner.Run(); err != nil {
		log.Fatal("Error: ", err)
	}
}
