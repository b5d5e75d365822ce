package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all the configuration for the application.
type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer  `yaml:"http_server"`
	Database    `yaml:"database"`
	Bot         `yaml:"bot"`
	Leaderboard `yaml:"leaderboard"`
}

// HTTPServer holds webhook server specific configuration.
type HTTPServer struct {
	Port         int           `yaml:"port" env:"HTTP_SERVER_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Database holds storage configuration. Driver selects the backend:
// "postgres" for a shared server, "sqlite" for a single-file deployment.
type Database struct {
	Driver          string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"`
	SQLitePath      string `yaml:"sqlite_path" env:"DB_SQLITE_PATH" env-default:"sales.db"`
	Host            string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password        string `yaml:"password" env:"DB_PASSWORD" env-default:""`
	DBName          string `yaml:"dbname" env:"DB_NAME" env-default:"salesboard"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	Timezone        string `yaml:"timezone" env:"DB_TIMEZONE" env-default:"UTC"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"2"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
}

// Bot holds the GroupMe bot credential and command policy.
type Bot struct {
	BotID       string        `yaml:"bot_id" env:"BOT_ID"`
	APIURL      string        `yaml:"api_url" env:"BOT_API_URL" env-default:"https://api.groupme.com/v3/bots/post"`
	SendTimeout time.Duration `yaml:"send_timeout" env:"BOT_SEND_TIMEOUT" env-default:"10s"`
	Admins      []string      `yaml:"admins" env:"BOT_ADMINS" env-separator:","`
	ShowLeads   bool          `yaml:"show_leads" env:"BOT_SHOW_LEADS" env-default:"true"`
}

// Leaderboard holds display options.
type Leaderboard struct {
	Title string `yaml:"title" env:"LEADERBOARD_TITLE" env-default:"🏆 Weekly Sales Leaderboard"`
}

// MustLoad loads the application configuration.
func MustLoad() *Config {
	// Try to load .env file (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	var cfg Config

	// Check if config file path is specified
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/local.yml" // default path
	}

	// Try to load config file
	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
	} else {
		// If config file doesn't exist, use environment variables only
		log.Println("Config file not found, using environment variables only")
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err)
		}
	}

	return &cfg
}

// IsAdmin reports whether the sender may run reset commands.
// Matching is exact and case-sensitive.
func (b *Bot) IsAdmin(sender string) bool {
	for _, admin := range b.Admins {
		if admin == sender {
			return true
		}
	}
	return false
}
