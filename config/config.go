package config

import (
	"sync"
	"time"

	"github.com/anritvox/backend-anritvox/structs"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "Anritvox_no_env"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":5000"),
				ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
				IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
				AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
				AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Database: &structs.DatabaseConfig{
				Host:              getEnvAsString("DB_HOST", "localhost"),
				Port:              getEnvAsInt("DB_PORT", 5432),
				User:              getEnvAsString("DB_USER", "postgres"),
				Password:          getEnvAsString("DB_PASSWORD", "password"),
				Name:              getEnvAsString("DB_NAME", "anritvox_db"),
				SSLMode:           getEnvAsString("DB_SSL_MODE", "disable"),
				MaxConns:          getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:          getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime:       getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime:       getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
				KeepAliveInterval: getEnvAsTimeDuration("DB_KEEP_ALIVE_INTERVAL", 60*time.Second),
			},
			Auth: &structs.AuthConfig{
				TokenSecret: getEnvAsString("JWT_SECRET", "default_jwt_secret"),
				TokenExpiry: getEnvAsTimeDuration("JWT_EXPIRY", 1*time.Hour),
			},
			Storage: &structs.StorageConfig{
				Endpoint:    getEnvAsString("R2_ENDPOINT", "localhost:9000"),
				AccessKey:   getEnvAsString("R2_ACCESS_KEY", ""),
				SecretKey:   getEnvAsString("R2_SECRET_KEY", ""),
				Bucket:      getEnvAsString("R2_BUCKET_NAME", "anritvox"),
				Region:      getEnvAsString("R2_REGION", "auto"),
				UseSSL:      getEnvAsBool("R2_USE_SSL", true),
				PresignTTL:  getEnvAsTimeDuration("R2_PRESIGN_TTL", 1*time.Hour),
				MaxFileSize: int64(getEnvAsInt("R2_MAX_FILE_SIZE", 5*1024*1024)), // 5 MB
			},
			Email: &structs.EmailConfig{
				ApiKey:    getEnvAsString("RESEND_API_KEY", ""),
				From:      getEnvAsString("EMAIL_FROM", "Anritvox <no-reply@anritvox.com>"),
				AdminAddr: getEnvAsString("EMAIL_ADMIN", ""),
			},
			Cache: &structs.CacheConfig{
				Address:      getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
				Username:     getEnvAsString("REDIS_USERNAME", ""),
				Password:     getEnvAsString("REDIS_PASSWORD", ""),
				DB:           getEnvAsInt("REDIS_DB", 0),
				PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				DialTimeout:  getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:  getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout: getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			},
			RateLimit: &structs.RateLimitConfig{
				Enabled:        getEnvAsBool("RATE_LIMIT_ENABLED", true),
				AuthLimit:      getEnvAsInt("RATE_LIMIT_AUTH", 10),
				AuthWindow:     getEnvAsTimeDuration("RATE_LIMIT_AUTH_WINDOW", 1*time.Minute),
				AdminLimit:     getEnvAsInt("RATE_LIMIT_ADMIN", 120),
				AdminWindow:    getEnvAsTimeDuration("RATE_LIMIT_ADMIN_WINDOW", 1*time.Minute),
				RegisterLimit:  getEnvAsInt("RATE_LIMIT_REGISTER", 20),
				RegisterWindow: getEnvAsTimeDuration("RATE_LIMIT_REGISTER_WINDOW", 1*time.Minute),
				GeneralLimit:   getEnvAsInt("RATE_LIMIT_GENERAL", 60),
				GeneralWindow:  getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", 1*time.Minute),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
