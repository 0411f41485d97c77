package main

import (
	"context"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Abraxas-365/careerkit/career/analysis/analysisapi"
	"github.com/Abraxas-365/careerkit/career/analysis/analysisinfra"
	"github.com/Abraxas-365/careerkit/career/analysis/analysissrv"
	"github.com/Abraxas-365/careerkit/career/interview/interviewapi"
	"github.com/Abraxas-365/careerkit/career/interview/interviewinfra"
	"github.com/Abraxas-365/careerkit/career/interview/interviewsrv"
	"github.com/Abraxas-365/careerkit/career/jobsearch"
	"github.com/Abraxas-365/careerkit/career/jobsearch/jobsearchapi"
	"github.com/Abraxas-365/careerkit/career/jobsearch/jobsearchinfra"
	"github.com/Abraxas-365/careerkit/career/jobsearch/jobsearchsrv"
	"github.com/Abraxas-365/careerkit/career/letter/letterapi"
	"github.com/Abraxas-365/careerkit/career/letter/letterinfra"
	"github.com/Abraxas-365/careerkit/career/letter/lettersrv"
	"github.com/Abraxas-365/careerkit/career/resume/resumeapi"
	"github.com/Abraxas-365/careerkit/career/resume/resumeinfra"
	"github.com/Abraxas-365/careerkit/career/resume/resumesrv"
	"github.com/Abraxas-365/careerkit/career/user/userapi"
	"github.com/Abraxas-365/careerkit/career/user/userauth"
	"github.com/Abraxas-365/careerkit/career/user/userinfra"
	"github.com/Abraxas-365/careerkit/career/user/usersrv"
	"github.com/Abraxas-365/careerkit/internal/ai/cvreview"
	"github.com/Abraxas-365/careerkit/internal/ai/embeddings"
	"github.com/Abraxas-365/careerkit/internal/ai/interviewer"
	"github.com/Abraxas-365/careerkit/internal/ai/letterwriter"
	"github.com/Abraxas-365/careerkit/internal/config"
	"github.com/Abraxas-365/careerkit/pkg/fsx"
	"github.com/Abraxas-365/careerkit/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/careerkit/pkg/iam/auth"
	"github.com/Abraxas-365/careerkit/pkg/logx"
	"github.com/Abraxas-365/careerkit/pkg/mailx"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	S3Client   *s3.Client
	FileSystem fsx.FileSystem
	Mailer     *mailx.Mailer

	// Auth
	TokenService   auth.TokenService
	AuthMiddleware *auth.TokenMiddleware

	// Services
	UserService      *usersrv.Service
	ResumeService    *resumesrv.Service
	LetterService    *lettersrv.Service
	InterviewService *interviewsrv.Service
	AnalysisService  *analysissrv.Service
	JobSearchService *jobsearchsrv.Service

	// API Handlers
	UserHandlers      *userapi.Handlers
	ResumeHandlers    *resumeapi.Handlers
	LetterHandlers    *letterapi.Handlers
	InterviewHandlers *interviewapi.Handlers
	AnalysisHandlers  *analysisapi.Handlers
	JobSearchHandlers *jobsearchapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	cfg := c.Config

	// 1. Database Connection
	db, err := sqlx.Connect("postgres", cfg.DB.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Pass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 for uploaded photos
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(awsCfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, cfg.AWS.Bucket, "uploads")

	// 4. SMTP
	mailer, err := mailx.NewMailer(mailx.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		logx.Fatalf("Failed to configure mailer: %v", err)
	}
	c.Mailer = mailer

	// 5. Auth
	if cfg.Auth.JWTSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		cfg.Auth.JWTSecret = "super-secret-key-please-change-me-in-production"
	}
	if cfg.Auth.ResetTokenSecret == "" {
		logx.Warn("RESET_TOKEN_SECRET is not set, falling back to JWT secret")
		cfg.Auth.ResetTokenSecret = cfg.Auth.JWTSecret
	}
	c.TokenService = auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.Issuer)
	c.AuthMiddleware = auth.NewAuthMiddleware(c.TokenService)
}

func (c *Container) initServices() {
	cfg := c.Config

	passwords := auth.NewBcryptPasswordService()
	resetTokens := userauth.NewResetTokenService(cfg.Auth.ResetTokenSecret)

	embedder := embeddings.NewEmbeddingsGenerator(cfg.OpenAI.APIKey)
	reviewer := cvreview.NewReviewer(cfg.OpenAI.APIKey)
	drafter := letterwriter.NewWriter(cfg.OpenAI.APIKey)
	coach := interviewer.NewInterviewer(cfg.OpenAI.APIKey)

	// --- User / Auth ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	c.UserService = usersrv.NewService(userRepo, passwords, c.TokenService, resetTokens, c.Mailer, c.FileSystem, cfg.AppURL)
	c.UserHandlers = userapi.NewHandlers(c.UserService)

	// --- Resume ---
	resumeRepo := resumeinfra.NewPostgresResumeRepository(c.DB)
	c.ResumeService = resumesrv.NewService(resumeRepo, embedder, c.FileSystem)
	c.ResumeHandlers = resumeapi.NewHandlers(c.ResumeService)

	// --- Cover Letter ---
	letterRepo := letterinfra.NewPostgresLetterRepository(c.DB)
	c.LetterService = lettersrv.NewService(letterRepo, drafter)
	c.LetterHandlers = letterapi.NewHandlers(c.LetterService)

	// --- Mock Interview ---
	interviewRepo := interviewinfra.NewPostgresInterviewRepository(c.DB)
	c.InterviewService = interviewsrv.NewService(interviewRepo, coach)
	c.InterviewHandlers = interviewapi.NewHandlers(c.InterviewService)

	// --- CV Analysis ---
	analysisRepo := analysisinfra.NewPostgresAnalysisRepository(c.DB)
	c.AnalysisService = analysissrv.NewService(analysisRepo, reviewer, resumeRepo, embedder)
	c.AnalysisHandlers = analysisapi.NewHandlers(c.AnalysisService)

	// --- Job Search ---
	selectors, err := jobsearch.LoadSelectors(cfg.Scrape.SelectorsFile)
	if err != nil {
		logx.Fatalf("Failed to load scrape selectors: %v", err)
	}
	sessions := jobsearchinfra.NewFactory(selectors)
	limiter := jobsearchinfra.NewRedisRateLimiter(c.Redis, cfg.Scrape.ThrottleLimit, cfg.Scrape.ThrottleWindow)
	c.JobSearchService = jobsearchsrv.NewService(sessions, limiter, cfg.Scrape.MinDelay)
	c.JobSearchHandlers = jobsearchapi.NewHandlers(c.JobSearchService)
}
