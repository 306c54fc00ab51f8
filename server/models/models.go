package models

import (
	"github.com/hayas1/closet/server/bredis"
	"github.com/hayas1/closet/server/bsql"
	"github.com/hayas1/closet/server/cmd"
	"github.com/hayas1/closet/server/env"
	"github.com/hayas1/closet/server/logger"
	"github.com/hayas1/closet/server/models/auth"
	"github.com/hayas1/closet/server/models/health"
	"github.com/hayas1/closet/server/models/user"
	"github.com/hayas1/closet/server/psql"
)

// Models holds all application components
type Models struct {
	db            *bsql.DB
	redisClient   *bredis.Client
	userStore     user.Repository
	jwtService    *auth.JWTService
	verifier      *auth.SessionVerifier
	authHandler   *auth.Handler
	healthHandler *health.Handler
}

// NewModels creates and initializes all application components
func NewModels(cmdMode bool) *Models {
	m := &Models{}

	logger.Info("Connecting to PostgreSQL...")

	dbConfigPath := cmd.ResolvePath(env.E.DatabaseConfigFilePath)
	dbConfig, err := bsql.LoadDatabaseConfig(dbConfigPath)
	if err != nil {
		logger.Fatalf("Failed to load database config: %v", err)
	}

	logger.Infof("  Host: %s:%s", dbConfig.Host, dbConfig.Port)
	logger.Infof("  Database: %s", dbConfig.Database)

	m.db = bsql.Open(
		dbConfig.Username,
		dbConfig.Password,
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.Database,
		dbConfig.MaxIdleConnection,
		dbConfig.MaxOpenConnection,
	)

	logger.Info("Running database migrations...")
	migPath := cmd.ResolvePath("db/migrations")
	if err := psql.MigrateUp(m.db, migPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	m.userStore = user.NewPostgresRepository(m.db)
	logger.Info("Using PostgreSQL for user storage")

	// Redis is optional; without it, login rate limiting is disabled
	if env.E.RedisConfigFilePath != "" {
		redisConfigPath := cmd.ResolvePath(env.E.RedisConfigFilePath)
		m.redisClient, err = bredis.NewFromConfig(redisConfigPath)
		if err != nil {
			logger.Fatalf("Failed to load redis config: %v", err)
		}
		if m.redisClient == nil {
			logger.Warn("Redis not reachable, rate limiting disabled")
		}
	}

	m.jwtService = auth.NewJWTService(&auth.Config{
		SecretKey:     []byte(env.E.SecretKey),
		TokenDuration: env.E.GetTokenDuration(),
	})
	m.verifier = auth.NewSessionVerifier(m.userStore, m.jwtService)

	m.authHandler = auth.NewHandler(m.userStore, m.jwtService, m.redisClient)
	m.healthHandler = health.NewHandler(m.db)

	if !cmdMode {
		m.SetupRoutes()
	}

	return m
}

// RunCmd runs command mode
func (m *Models) RunCmd(c string) {
	switch c {
	default:
		logger.Warnf("Unknown command: %s", c)
	}
}
