package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/rand"

	"github.com/TFMV/TextVectorPro/internal/pipeline"
	"github.com/TFMV/TextVectorPro/pkg/aggregate"
	"github.com/TFMV/TextVectorPro/pkg/config"
	"github.com/TFMV/TextVectorPro/pkg/corpus"
	"github.com/TFMV/TextVectorPro/pkg/db"
	"github.com/TFMV/TextVectorPro/pkg/lexicon"
	"github.com/TFMV/TextVectorPro/pkg/tokenizer"
)

func main() {
	start := time.Now()

	csvPath := flag.String("csv", "", "Path to the documents CSV file")
	runID := flag.Int("run", 0, "Featurize documents already loaded under this run id (requires -config)")
	lexiconPath := flag.String("lexicon", "", "Path to the lexicon file")
	outPath := flag.String("out", "", "Output CSV path (default stdout)")
	reduction := flag.String("reduction", "sum", "Reduction: sum, mean, max or min")
	components := flag.Int("components", 0, "Project onto this many principal components")
	workers := flag.Int("workers", 1, "Concurrent featurization workers")
	textColumn := flag.String("text-column", "content", "CSV column holding the document text")
	labelColumn := flag.String("label-column", "", "CSV column holding the label")
	idColumn := flag.String("id-column", "", "CSV column holding the document id")
	minTokenLength := flag.Int("min-token-length", 1, "Drop tokens shorter than this")
	stopwords := flag.String("stopwords", "", "Comma-separated stopwords to drop")
	sample := flag.Int("sample", 0, "Featurize only a random sample of this many documents")
	seed := flag.Uint64("seed", 1, "Seed for -sample")
	store := flag.Bool("store", false, "Persist the feature matrix to the database")
	configPath := flag.String("config", "", "Config file with database credentials (required with -run or -store)")
	flag.Parse()

	if *csvPath == "" && *runID == 0 {
		log.Fatalf("Either -csv or -run is required")
	}
	if *lexiconPath == "" {
		log.Fatalf("-lexicon is required")
	}

	lex, err := lexicon.LoadFile(*lexiconPath)
	if err != nil {
		log.Fatalf("Failed to load lexicon: %v", err)
	}
	log.Printf("Loaded lexicon: %d tokens, %d dimensions", lex.Len(), lex.Dim())

	reduce, err := aggregate.ParseReduction(*reduction)
	if err != nil {
		log.Fatalf("Invalid reduction: %v", err)
	}

	rules := tokenizer.DefaultRules()
	rules.MinTokenLength = *minTokenLength
	if *stopwords != "" {
		rules.Stopwords = strings.Split(*stopwords, ",")
	}

	ctx := context.Background()
	var pool *pgxpool.Pool
	if *runID > 0 || *store {
		if *configPath == "" {
			log.Fatalf("-run and -store require -config")
		}
		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		pool, err = db.NewConnection(cfg.DBCreds)
		if err != nil {
			log.Fatalf("Failed to create database connection pool: %v", err)
		}
		defer pool.Close()
	}

	var docs []corpus.Document
	if *runID > 0 {
		docs, err = pipeline.LoadDocuments(ctx, pool, *runID)
		if err != nil {
			log.Fatalf("Failed to load documents for run %d: %v", *runID, err)
		}
	} else {
		docs, err = corpus.ReadCSVFile(*csvPath, corpus.CSVOptions{
			TextColumn:  *textColumn,
			LabelColumn: *labelColumn,
			IDColumn:    *idColumn,
		})
		if err != nil {
			log.Fatalf("Failed to read documents: %v", err)
		}
	}

	if *sample > 0 {
		weights := make([]float64, len(docs))
		for i := range weights {
			weights[i] = 1
		}
		docs, err = corpus.SampleDocuments(docs, weights, *sample, rand.NewSource(*seed))
		if err != nil {
			log.Fatalf("Failed to sample documents: %v", err)
		}
		log.Printf("Sampled %d documents", len(docs))
	}

	p := pipeline.New(tokenizer.New(rules), lex, pipeline.Options{
		Reduction: reduce,
		Workers:   *workers,
	})
	m, err := p.Featurize(docs)
	if err != nil {
		log.Fatalf("Failed to featurize documents: %v", err)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	if *components > 0 {
		reduced, err := m.Reduce(*components)
		if err != nil {
			log.Fatalf("Failed to reduce feature matrix: %v", err)
		}
		log.Printf("Explained variance ratios: %v", reduced.ExplainedVariance)
		if err := reduced.WriteCSV(out); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
	} else {
		if err := m.WriteCSV(out); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
	}

	if *store {
		storeRun, err := pipeline.CreateRun(ctx, pool, "CLI Featurization")
		if err != nil {
			log.Fatalf("Failed to create run: %v", err)
		}
		if err := pipeline.SaveFeatureMatrix(ctx, pool, storeRun, m); err != nil {
			log.Fatalf("Failed to save feature matrix: %v", err)
		}
		log.Printf("Stored feature matrix under run %d", storeRun)
	}

	log.Printf("Featurized %d documents in %v", m.Len(), time.Since(start))
}
