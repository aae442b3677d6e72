package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Auth      *AuthConfig
	Storage   *StorageConfig
	Email     *EmailConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
}

type ServerConfig struct {
	AppName        string        // Anritvox
	Environment    string        // development, production
	Port           string        // :5000
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	SSLMode           string
	MaxConns          int
	MinConns          int
	MaxLifetime       time.Duration
	MaxIdleTime       time.Duration
	KeepAliveInterval time.Duration // idle ping period, 0 disables
}

type AuthConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
}

// StorageConfig points at an S3-compatible bucket (Cloudflare R2 in production).
type StorageConfig struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	Bucket      string
	Region      string
	UseSSL      bool
	PresignTTL  time.Duration
	MaxFileSize int64 // per uploaded image, in bytes
}

type EmailConfig struct {
	ApiKey    string
	From      string
	AdminAddr string // recipient for contact notifications
}

type CacheConfig struct {
	Address      string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RateLimitConfig struct {
	Enabled bool

	AuthLimit  int
	AuthWindow time.Duration

	AdminLimit  int
	AdminWindow time.Duration

	RegisterLimit  int
	RegisterWindow time.Duration

	GeneralLimit  int
	GeneralWindow time.Duration
}
