package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName      string
	Port        string
	Turso       TursoConfig
	Auth        AuthConfig
	Slack       SlackConfig
	ProjectID   string
	CORSOrigins []string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
