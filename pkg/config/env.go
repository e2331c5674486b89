package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvCandidateLimit         = "CANDIDATE_LIMIT"
	EnvDefaultSuggestionLimit = "DEFAULT_SUGGESTION_LIMIT"
	EnvScoringTimeout         = "SCORING_TIMEOUT"
	EnvAllocationLockTTL      = "ALLOCATION_LOCK_TTL"

	EnvClassifierURL     = "CLASSIFIER_URL"
	EnvClassifierTimeout = "CLASSIFIER_TIMEOUT"
)
