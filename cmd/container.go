package main

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/hiresight/internal/ai/resumereader"
	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/Abraxas-365/hiresight/internal/config"
	"github.com/Abraxas-365/hiresight/pkg/audit/auditapi"
	"github.com/Abraxas-365/hiresight/pkg/audit/auditinfra"
	"github.com/Abraxas-365/hiresight/pkg/audit/auditsrv"
	"github.com/Abraxas-365/hiresight/pkg/fsx"
	"github.com/Abraxas-365/hiresight/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/hiresight/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/iam/auth/authapi"
	"github.com/Abraxas-365/hiresight/pkg/iam/auth/authinfra"
	"github.com/Abraxas-365/hiresight/pkg/iam/auth/authsrv"
	"github.com/Abraxas-365/hiresight/pkg/iam/tenant/tenantinfra"
	"github.com/Abraxas-365/hiresight/pkg/iam/user/userapi"
	"github.com/Abraxas-365/hiresight/pkg/iam/user/userinfra"
	"github.com/Abraxas-365/hiresight/pkg/iam/user/usersrv"
	"github.com/Abraxas-365/hiresight/pkg/logx"
	"github.com/Abraxas-365/hiresight/recruitment/candidate/candidateapi"
	"github.com/Abraxas-365/hiresight/recruitment/candidate/candidateinfra"
	"github.com/Abraxas-365/hiresight/recruitment/candidate/candidatesrv"
	"github.com/Abraxas-365/hiresight/recruitment/enrichment/enrichmentinfra"
	"github.com/Abraxas-365/hiresight/recruitment/enrichment/enrichmentsrv"
	"github.com/Abraxas-365/hiresight/recruitment/integration/integrationapi"
	"github.com/Abraxas-365/hiresight/recruitment/integration/integrationsrv"
	"github.com/Abraxas-365/hiresight/recruitment/job/jobapi"
	"github.com/Abraxas-365/hiresight/recruitment/job/jobinfra"
	"github.com/Abraxas-365/hiresight/recruitment/job/jobsrv"
	"github.com/Abraxas-365/hiresight/recruitment/matching/matchingapi"
	"github.com/Abraxas-365/hiresight/recruitment/matching/matchinginfra"
	"github.com/Abraxas-365/hiresight/recruitment/matching/matchingsrv"
	"github.com/Abraxas-365/hiresight/recruitment/note/noteapi"
	"github.com/Abraxas-365/hiresight/recruitment/note/noteinfra"
	"github.com/Abraxas-365/hiresight/recruitment/note/notesrv"
	"github.com/Abraxas-365/hiresight/recruitment/tag/tagapi"
	"github.com/Abraxas-365/hiresight/recruitment/tag/taginfra"
	"github.com/Abraxas-365/hiresight/recruitment/tag/tagsrv"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const (
	localUploadDir = "data/uploads"
	denylistPrefix = "hiresight:revoked:"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	Engine     *scoring.Engine

	// Services
	AuthService        *authsrv.AuthService
	UserService        *usersrv.UserService
	AuditService       *auditsrv.Service
	TagService         *tagsrv.TagService
	CandidateService   *candidatesrv.CandidateService
	JobService         *jobsrv.JobService
	NoteService        *notesrv.NoteService
	MatchingService    *matchingsrv.MatchingService
	IntegrationService *integrationsrv.IntegrationService
	EnrichmentService  *enrichmentsrv.Service
	EnrichmentQueue    *enrichmentinfra.RedisQueue

	// API Handlers
	AuthHandlers        *authapi.Handlers
	UserHandlers        *userapi.Handlers
	AuditHandlers       *auditapi.Handlers
	TagHandlers         *tagapi.Handlers
	CandidateHandlers   *candidateapi.Handlers
	JobHandlers         *jobapi.Handlers
	NoteHandlers        *noteapi.Handlers
	MatchingHandlers    *matchingapi.Handlers
	IntegrationHandlers *integrationapi.Handlers

	// Middleware
	AuthMiddleware *auth.UnifiedAuthMiddleware
}

// NewContainer connects to the infrastructure and wires every service
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}
	if err := c.initInfrastructure(ctx); err != nil {
		c.Close()
		return nil, err
	}
	engine, err := newEngine(cfg.Scoring)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Engine = engine
	c.initServices()
	return c, nil
}

func (c *Container) Close() {
	if c.Redis != nil {
		c.Redis.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	// 1. Database Connection
	db, err := openDB(c.Config.Database)
	if err != nil {
		return err
	}
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if err := c.Redis.Ping(ctx).Err(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. Resume storage: S3 when a bucket is configured, local disk otherwise
	if c.Config.AWS.Bucket == "" {
		logx.Warnf("AWS_BUCKET is not set, storing resumes under %s", localUploadDir)
		c.FileSystem = fsxlocal.NewLocalFileSystem(localUploadDir)
		return nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Config.AWS.Region))
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), c.Config.AWS.Bucket, c.Config.AWS.Prefix)
	return nil
}

func (c *Container) initServices() {
	cfg := c.Config

	// --- IAM Repositories ---
	tenantRepo := tenantinfra.NewPostgresTenantRepository(c.DB)
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	auditRepo := auditinfra.NewPostgresAuditRepository(c.DB)

	// --- Recruitment Repositories ---
	candidateRepo := candidateinfra.NewPostgresCandidateRepository(c.DB)
	tagRepo := taginfra.NewPostgresTagRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	noteRepo := noteinfra.NewPostgresNoteRepository(c.DB)
	matchRepo := matchinginfra.NewPostgresMatchRepository(c.DB)

	// --- Auth ---
	tokens := auth.NewJWTTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTokenTTL)
	denylist := authinfra.NewRedisTokenDenylist(c.Redis, denylistPrefix)
	passwords := auth.NewPasswordService(cfg.Auth.BcryptCost, cfg.Auth.PasswordPepper)
	c.AuthMiddleware = auth.NewUnifiedAuthMiddleware(tokens, denylist)

	// --- Domain Services ---
	c.AuditService = auditsrv.NewService(auditRepo)
	c.AuthService = authsrv.NewAuthService(tenantRepo, userRepo, passwords, tokens, denylist, c.AuditService)
	c.UserService = usersrv.NewUserService(userRepo)

	c.EnrichmentQueue = enrichmentinfra.NewRedisQueue(c.Redis, cfg.Redis.EnrichmentQueue)
	c.EnrichmentService = enrichmentsrv.NewService(
		c.EnrichmentQueue,
		candidateRepo,
		c.Engine,
		enrichmentsrv.WithMaxAttempts(cfg.Worker.MaxAttempts),
	)

	var transcriber resumereader.Transcriber
	if cfg.OpenAI.APIKey != "" {
		transcriber = resumereader.NewOpenAITranscriber(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	} else {
		logx.Warn("OPENAI_API_KEY is not set, scanned resumes will be rejected")
	}

	c.TagService = tagsrv.NewTagService(tagRepo, userRepo)
	c.CandidateService = candidatesrv.NewCandidateService(
		candidateRepo,
		tagRepo,
		userRepo,
		c.FileSystem,
		resumereader.New(transcriber),
		c.EnrichmentService,
		c.AuditService,
	)
	c.JobService = jobsrv.NewJobService(jobRepo, userRepo, c.AuditService)
	c.NoteService = notesrv.NewNoteService(noteRepo, candidateRepo, userRepo)
	c.MatchingService = matchingsrv.NewMatchingService(
		matchRepo,
		candidateRepo,
		jobRepo,
		userRepo,
		c.Engine,
		c.AuditService,
		matchingsrv.WithRecommendationLimit(cfg.Scoring.RecommendationLimit),
	)
	c.IntegrationService = integrationsrv.NewIntegrationService(
		candidateRepo,
		c.CandidateService,
		userRepo,
		c.Engine,
		c.AuditService,
	)

	// --- Handlers ---
	c.AuthHandlers = authapi.NewHandlers(c.AuthService)
	c.UserHandlers = userapi.NewHandlers(c.UserService)
	c.AuditHandlers = auditapi.NewHandlers(c.AuditService)
	c.TagHandlers = tagapi.NewHandlers(c.TagService)
	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.NoteHandlers = noteapi.NewHandlers(c.NoteService)
	c.MatchingHandlers = matchingapi.NewHandlers(c.MatchingService)
	c.IntegrationHandlers = integrationapi.NewHandlers(c.IntegrationService)
}

func openDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// newEngine builds the scoring engine from the scoring settings
func newEngine(cfg config.ScoringConfig) (*scoring.Engine, error) {
	opts := []scoring.Option{
		scoring.WithScoreWeights(cfg.Weights),
		scoring.WithSimilarityWeights(cfg.Similarity),
		scoring.WithDuplicateThreshold(cfg.DuplicateThreshold),
	}
	if cfg.VocabularyFile != "" {
		vocab, err := scoring.LoadVocabularyFile(cfg.VocabularyFile)
		if err != nil {
			return nil, fmt.Errorf("load vocabulary: %w", err)
		}
		opts = append(opts, scoring.WithVocabulary(vocab))
	}
	return scoring.NewEngine(opts...), nil
}
