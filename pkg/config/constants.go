package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "EXPRESSCHECKOUT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "EXPRESSCHECKOUT_APP_ENV"
	EnvPort     = "EXPRESSCHECKOUT_APP_PORT"
	EnvDBDSN    = "EXPRESSCHECKOUT_DB_DSN"
	EnvDBHost   = "EXPRESSCHECKOUT_DB_HOST"
	EnvDBUser   = "EXPRESSCHECKOUT_DB_USER"
	EnvDBName   = "EXPRESSCHECKOUT_DB_NAME"
	EnvRedisURL = "EXPRESSCHECKOUT_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
