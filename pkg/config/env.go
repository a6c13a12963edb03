package config

const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageBackendSQLite   = "sqlite"
	StorageBackendPostgres = "postgres"
	StorageBackendRedis    = "redis"
	StorageBackendMemory   = "memory"
)

const (
	EnvAppEnv         = "STOREFRONT_APP_ENV"
	EnvPort           = "STOREFRONT_APP_PORT"
	EnvStorageBackend = "STOREFRONT_STORAGE_BACKEND"
	EnvSQLitePath     = "STOREFRONT_STORAGE_SQLITE_PATH"
	EnvDBDSN          = "STOREFRONT_DB_DSN"
	EnvDBHost         = "STOREFRONT_DB_HOST"
	EnvDBUser         = "STOREFRONT_DB_USER"
	EnvDBPassword     = "STOREFRONT_DB_PASSWORD"
	EnvDBName         = "STOREFRONT_DB_NAME"
	EnvRedisURL       = "STOREFRONT_REDIS_URL"
	EnvRedisAddr      = "STOREFRONT_REDIS_ADDR"
	EnvProductsAPI    = "STOREFRONT_PRODUCTS_API"
	EnvUsersAPI       = "STOREFRONT_USERS_API"
	EnvCORSOrigins    = "STOREFRONT_CORS_ORIGINS"
)

var dbEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
