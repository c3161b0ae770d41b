package config

import (
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Words    WordsConfig    `yaml:"words"`
	Solver   SolverConfig   `yaml:"solver"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Daily    DailyConfig    `yaml:"daily"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string        `yaml:"host"            env:"SERVER_HOST"            env-default:""`
	Port           int           `yaml:"port"            env:"PORT"                   env-default:"5175"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT" env-default:"10s"`
	ClientOrigin   string        `yaml:"client_origin"   env:"CLIENT_ORIGIN"          env-default:"http://localhost:5173"`
	SessionTTL     time.Duration `yaml:"session_ttl"     env:"SESSION_TTL"            env-default:"24h"`
}

// WordsConfig points at optional word list files. Empty means the embedded lists.
type WordsConfig struct {
	AnswersFile string `yaml:"answers_file" env:"WORDS_ANSWERS_FILE"`
	AllowedFile string `yaml:"allowed_file" env:"WORDS_ALLOWED_FILE"`
}

// SolverConfig holds solver settings.
type SolverConfig struct {
	// Opening is the fixed first guess; empty picks "crane" or the best-scoring corpus word.
	Opening string `yaml:"opening"  env:"SOLVER_OPENING"  env-default:""`
	// MaxRows limits simulated games; the interactive game always uses 6.
	MaxRows int `yaml:"max_rows" env:"SOLVER_MAX_ROWS" env-default:"6"`
}

// DatabaseConfig holds the SQLite DSN for run history.
// The default is a shared in-memory database that disappears with the process.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"DATABASE_DSN" env-default:"file:solver_history?mode=memory&cache=shared"`
}

// AuthConfig holds session token and admin settings.
type AuthConfig struct {
	SessionSecret string `yaml:"session_secret" env:"JWT_SECRET"     env-default:"dev_secret_change_me"`
	AdminPassword string `yaml:"admin_password" env:"ADMIN_PASSWORD"`
}

// DailyConfig holds the salt for the deterministic daily word.
type DailyConfig struct {
	Salt string `yaml:"salt" env:"DAILY_SALT" env-default:"local_dev_salt"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Addr returns host:port for http.ListenAndServe.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}
