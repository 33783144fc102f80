package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/lakshraina2/resume-scanner/internal/ai/resumeparser"
	"github.com/lakshraina2/resume-scanner/internal/extract"
	"github.com/lakshraina2/resume-scanner/pkg/auth"
	"github.com/lakshraina2/resume-scanner/pkg/fsx"
	"github.com/lakshraina2/resume-scanner/pkg/fsx/fsxs3"
	"github.com/lakshraina2/resume-scanner/pkg/logx"
	"github.com/lakshraina2/resume-scanner/scanner/analysis"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/analysisapi"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/analysisinfra"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/analysissrv"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/textproc"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/worker"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Core services
	TokenService    *auth.TokenService
	AnalysisService *analysissrv.Service
	RankingWorker   *worker.RankingWorker

	// API handlers
	AnalysisHandlers *analysisapi.AnalysisHandlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	if err := godotenv.Load(); err != nil {
		logx.Debugf("No .env file loaded: %v", err)
	}

	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")
}

func (c *Container) initServices() {
	// JWT secret
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		jwtSecret = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewTokenService(jwtSecret, "resume-scanner", 24*time.Hour)

	// Skill configuration, database-backed with compiled-in fallback
	skillCfgRepo := analysisinfra.NewPostgresSkillConfigRepository(c.DB)
	skillCfg, err := skillCfgRepo.Load(context.Background())
	if err != nil {
		logx.Warnf("Failed to load skill configuration, using defaults: %v", err)
		skillCfg = analysis.DefaultSkillConfig()
	}

	// Text processing with the regex entity recognizer
	proc := textproc.NewProcessor(textproc.NewRegexRecognizer())

	// Optional LLM enrichment
	var richParser analysis.RichParser
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		richParser = resumeparser.NewResumeParser(apiKey)
	} else {
		logx.Warn("OPENAI_API_KEY is not set, structured LLM extraction disabled")
	}

	// Ranking job persistence and queue
	jobRepo := analysisinfra.NewPostgresJobRepository(c.DB)
	queue := analysisinfra.NewRedisQueue(c.Redis, "ranking_jobs")

	c.AnalysisService = analysissrv.NewService(
		proc,
		skillCfg,
		extract.NewExtractor(),
		richParser,
		c.FileSystem,
		jobRepo,
		queue,
	)

	workers := 3
	c.RankingWorker = worker.NewRankingWorker(c.AnalysisService, queue, workers)

	c.AnalysisHandlers = analysisapi.NewAnalysisHandlers(c.AnalysisService, c.FileSystem)
}
