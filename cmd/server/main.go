package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TFMV/TextVectorPro/internal/logger"
	"github.com/TFMV/TextVectorPro/internal/pipeline"
	"github.com/TFMV/TextVectorPro/pkg/aggregate"
	"github.com/TFMV/TextVectorPro/pkg/api"
	"github.com/TFMV/TextVectorPro/pkg/config"
	"github.com/TFMV/TextVectorPro/pkg/db"
	"github.com/TFMV/TextVectorPro/pkg/lexicon"
	"github.com/TFMV/TextVectorPro/pkg/tokenizer"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	// Load the lexicon
	lex, err := lexicon.LoadFile(cfg.Pipeline.LexiconPath)
	if err != nil {
		zlog.Fatal("Failed to load lexicon", zap.Error(err))
	}
	zlog.Info("Lexicon loaded",
		zap.String("path", cfg.Pipeline.LexiconPath),
		zap.Int("tokens", lex.Len()),
		zap.Int("dim", lex.Dim()),
	)

	reduction, err := aggregate.ParseReduction(cfg.Pipeline.Reduction)
	if err != nil {
		zlog.Fatal("Invalid reduction", zap.Error(err))
	}

	rules := tokenizer.DefaultRules()
	rules.MinTokenLength = cfg.Pipeline.MinTokenLength
	rules.Stopwords = cfg.Pipeline.Stopwords

	deps := &api.Deps{
		Pipeline: pipeline.New(tokenizer.New(rules), lex, pipeline.Options{
			Reduction:  reduction,
			KeepTokens: cfg.Pipeline.KeepTokens,
			Workers:    cfg.Pipeline.Workers,
		}),
		Lexicon:    lex,
		Logger:     zlog,
		Components: cfg.Pipeline.Components,
	}

	// The scorer and the database pool are optional
	if cfg.Pipeline.ModelPath != "" {
		scorer, err := pipeline.LoadModel(cfg.Pipeline.ModelPath)
		if err != nil {
			zlog.Fatal("Failed to load model", zap.Error(err))
		}
		deps.Scorer = scorer
		zlog.Info("Model loaded", zap.Int("features", len(scorer.Model.Coef)))
	}
	if cfg.DBCreds.Host != "" {
		pool, err := db.NewConnection(cfg.DBCreds)
		if err != nil {
			zlog.Fatal("Failed to create database connection pool", zap.Error(err))
		}
		defer pool.Close()
		deps.Pool = pool
	}

	// Set up the HTTP server
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, deps)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zlog.Fatal("Server exited", zap.Error(err))
	}
}
