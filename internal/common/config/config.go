// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Search   SearchConfig   `mapstructure:"search"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // milliseconds
	IdleTimeout    int      `mapstructure:"idle_timeout"`  // milliseconds
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	JobsIndex string   `mapstructure:"jobs_index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig holds TTLs for the two cache families. Both default to one
// hour, matching the expiry the search subsystem was designed around.
type CacheConfig struct {
	JobTTL        int `mapstructure:"job_ttl"`         // seconds, job:<id> entries
	SearchPageTTL int `mapstructure:"search_page_ttl"` // seconds, job_search:* entries
}

func (c CacheConfig) JobExpiry() time.Duration {
	return time.Duration(c.JobTTL) * time.Second
}

func (c CacheConfig) SearchPageExpiry() time.Duration {
	return time.Duration(c.SearchPageTTL) * time.Second
}

type AuthConfig struct {
	JWTSecret  string `mapstructure:"jwt_secret"`
	TokenTTL   int    `mapstructure:"token_ttl"` // seconds
	BcryptCost int    `mapstructure:"bcrypt_cost"`
}

func (a AuthConfig) TokenExpiry() time.Duration {
	return time.Duration(a.TokenTTL) * time.Second
}

// SearchConfig holds settings for the search orchestrator.
type SearchConfig struct {
	RequestTimeout int `mapstructure:"request_timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
