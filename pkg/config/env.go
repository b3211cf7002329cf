package config

const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	SessionStoreFile   = "file"
	SessionStoreSQL    = "sql"
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"

	defaultSQLiteDSN = "file:storefront.db?_foreign_keys=on"
)

const (
	EnvAppEnv       = "STOREFRONT_APP_ENV"
	EnvLogLevel     = "STOREFRONT_LOG_LEVEL"
	EnvMetricsFile  = "STOREFRONT_METRICS_FILE"
	EnvBaseURL      = "STOREFRONT_BASE_URL"
	EnvHTTPTimeout  = "STOREFRONT_HTTP_TIMEOUT"
	EnvGuardStale   = "STOREFRONT_GUARD_STALE_RESPONSES"
	EnvSessionStore = "STOREFRONT_SESSION_STORE"
	EnvSessionFile  = "STOREFRONT_SESSION_FILE"
	EnvSessionKey   = "STOREFRONT_SESSION_KEY"
	EnvDBDSN        = "STOREFRONT_DB_DSN"
	EnvDBDriver     = "STOREFRONT_DB_DRIVER"
	EnvDBHost       = "STOREFRONT_DB_HOST"
	EnvDBUser       = "STOREFRONT_DB_USER"
	EnvDBName       = "STOREFRONT_DB_NAME"
	EnvRedisURL     = "STOREFRONT_REDIS_URL"
	EnvAPIPort      = "STOREFRONT_API_PORT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
