package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "deskhive"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	// Hard cap on candidates fetched from the catalog before scoring.
	DefaultCandidateLimit         = 100
	DefaultDefaultSuggestionLimit = 10
	DefaultScoringTimeout         = 10 * time.Second
	DefaultAllocationLockTTL      = 10 * time.Second
	DefaultClassifierTimeout      = 5 * time.Second
)
