package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/term"

	"testinsight-backend/internal/analysis"
	"testinsight-backend/internal/config"
	"testinsight-backend/internal/controller"
	"testinsight-backend/internal/db"
	"testinsight-backend/internal/llm"
	"testinsight-backend/internal/repository"
	"testinsight-backend/internal/service"
	"testinsight-backend/internal/taxonomy"
	"testinsight-backend/pkg/middleware"
	"testinsight-backend/utilities"
)

func main() {
	seed := flag.Bool("seed", false, "store a sample test before serving")
	flag.Parse()

	if term.IsTerminal(int(os.Stdout.Fd())) {
		printStartUpBanner()
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.xml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := utilities.SetupLogging(utilities.LogOptions{
		Dir:        cfg.Logging.Dir,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Debug:      cfg.Logging.Debug,
	}); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	utilities.ConfigureSecrets(cfg.Authentication.AccessSecret, cfg.Authentication.RefreshSecret)

	// Initialize DB using the loaded config.
	if err := db.InitDBFromConfig(cfg); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	// Run migrations.
	if err := db.Migrate(db.GetDB()); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Create repositories.
	testRepo := repository.NewTestRepository(db.GetDB())
	attemptRepo := repository.NewAttemptRepository(db.GetDB())
	reportRepo := repository.NewReportRepository(db.GetDB())

	if *seed {
		if err := seedSampleTest(context.Background(), testRepo); err != nil {
			log.Fatalf("failed to seed sample test: %v", err)
		}
	}

	// Analysis engine, optionally backed by Ollama.
	opts := analysis.Options{PercentileModel: analysis.ScorePercentile{}}
	if cfg.LLM.Enabled {
		timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
		ollamaClient := llm.NewOllamaClient(cfg.LLM.URL, cfg.LLM.Model, timeout)
		opts.Semantic = ollamaClient
		opts.Delegation = analysis.DelegationConfig{Timeout: timeout, MaxPromptTokens: cfg.LLM.MaxPromptTokens}
		if cfg.LLM.EnrichAdvice {
			opts.Enricher = ollamaClient
			opts.EnrichTimeout = timeout
		}
		utilities.Info("LLM classification enabled (%s, model %s)", cfg.LLM.URL, cfg.LLM.Model)
	}
	engine := analysis.NewEngine(taxonomy.Default(), opts)

	// Create services.
	bus := utilities.NewEventBus()
	attemptService := service.NewAttemptService(testRepo, attemptRepo, bus)
	analysisService := service.NewAnalysisService(testRepo, attemptRepo, reportRepo, engine)
	analysisService.InitAnalysisEventListeners(bus)

	// Initialize Gin router.
	r := gin.Default()

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}

	limiter := middleware.RateLimit(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	controller.RegisterRoutes(r, attemptService, analysisService, limiter)

	// Start server on the host and port specified in the XML config.
	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	utilities.Info("Listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("TESTINSIGHT", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("TESTINSIGHT API (v%s)\n\n", "1.0.0-Analysis")
}
