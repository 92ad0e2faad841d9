package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Access   AccessConfig   `mapstructure:"access" validate:"required"`
	Quiz     QuizConfig     `mapstructure:"quiz" validate:"required"`
}

// ServerConfig contains HTTP server and logging settings.
type ServerConfig struct {
	Port               int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel           string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat          string   `mapstructure:"log_format" validate:"required,oneof=json text"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"dive,required"`
}

// DatabaseConfig selects the SQL dialect and connection string.
type DatabaseConfig struct {
	Driver      string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL         string `mapstructure:"url" validate:"required"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BCryptCost           int    `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}

// TokenLifetime returns the access token lifetime as a duration.
func (a AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(a.TokenLifetimeMinutes) * time.Minute
}

// AccessConfig lists the views of each access class and where denied
// callers are sent.
type AccessConfig struct {
	PermitAll         []string `mapstructure:"permit_all" validate:"dive,required"`
	AuthenticatedOnly []string `mapstructure:"authenticated_only" validate:"dive,required"`
	UserRole          []string `mapstructure:"user_role" validate:"dive,required"`
	AdminRole         []string `mapstructure:"admin_role" validate:"dive,required"`
	LoginView         string   `mapstructure:"login_view" validate:"required"`
	HomeView          string   `mapstructure:"home_view" validate:"required"`
}

// QuizConfig controls how long idle quiz sessions are kept.
type QuizConfig struct {
	SessionIdleMinutes   int `mapstructure:"session_idle_minutes" validate:"required,gt=0"`
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes" validate:"required,gt=0"`
}

// SessionIdleTimeout returns the idle timeout as a duration.
func (q QuizConfig) SessionIdleTimeout() time.Duration {
	return time.Duration(q.SessionIdleMinutes) * time.Minute
}

// SweepInterval returns the sweep interval as a duration.
func (q QuizConfig) SweepInterval() time.Duration {
	return time.Duration(q.SweepIntervalMinutes) * time.Minute
}
