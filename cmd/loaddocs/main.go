package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/TFMV/TextVectorPro/internal/pipeline"
	"github.com/TFMV/TextVectorPro/pkg/config"
	"github.com/TFMV/TextVectorPro/pkg/db"
)

func main() {
	start := time.Now()

	csvPath := flag.String("csv", "", "Path to the documents CSV file")
	description := flag.String("description", "Document Load", "Run description")
	flag.Parse()

	if *csvPath == "" {
		log.Fatalf("CSV file path is required")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewConnection(cfg.DBCreds)
	if err != nil {
		log.Fatalf("Unable to create connection pool: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()
	copied, err := db.LoadCSV(ctx, pool, *csvPath, cfg.DBCreds.LoadTable)
	if err != nil {
		log.Fatalf("Error copying data to database: %v", err)
	}
	fmt.Printf("Copied %v rows to %s table\n", copied, cfg.DBCreds.LoadTable)

	runID, err := pipeline.CreateRun(ctx, pool, *description)
	if err != nil {
		log.Fatalf("Failed to create run: %v", err)
	}
	inserted, err := pipeline.InsertFromLoadTable(ctx, pool, cfg.DBCreds.LoadTable, runID)
	if err != nil {
		log.Fatalf("Failed to insert documents into run: %v", err)
	}

	fmt.Printf("Loaded %d documents under run %d in %v\n", inserted, runID, time.Since(start))
}
