package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
		// AllowedOrigins for CORS; empty allows any origin.
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Database struct {
		DSN         string `yaml:"url"`
		AutoMigrate bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads config/config.yaml (or CONFIG_PATH). When DATABASE_URL is set
// the file is skipped and everything comes from the environment.
func LoadConfig() {
	var (
		cfg *Config
		err error
	)

	if os.Getenv("DATABASE_URL") == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}
		log.Printf("loading config from %s", configPath)
		cfg, err = LoadFile(configPath)
	} else {
		log.Println("loading config from environment")
		cfg, err = FromEnv(os.Getenv)
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	AppConfig = cfg
}

// LoadFile decodes a YAML config file and fills defaults.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, cfg.validate()
}

// FromEnv builds a config from environment lookups. getenv is os.Getenv outside tests.
func FromEnv(getenv func(string) string) (*Config, error) {
	var cfg Config

	cfg.Database.DSN = getenv("DATABASE_URL")
	cfg.Database.AutoMigrate = getenv("DATABASE_AUTO_MIGRATE") != "false"
	cfg.Server.Host = getenv("SERVER_HOST")
	cfg.Server.Env = getenv("SERVER_ENV")
	cfg.JWT.Secret = getenv("JWT_SECRET")
	if origins := getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, o)
			}
		}
	}

	if p := getenv("SERVER_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if ttl := getenv("JWT_TTL"); ttl != "" {
		v, err := strconv.Atoi(ttl)
		if err != nil {
			return nil, fmt.Errorf("JWT_TTL: %w", err)
		}
		cfg.JWT.TTL = v
	}

	if host := getenv("SMTP_HOST"); host != "" {
		cfg.Email.Enabled = true
		cfg.Email.SMTPHost = host
		cfg.Email.SMTPPort, _ = strconv.Atoi(getenv("SMTP_PORT"))
		cfg.Email.SMTPUsername = getenv("SMTP_USER")
		cfg.Email.SMTPPassword = getenv("SMTP_PASSWORD")
		cfg.Email.FromEmail = getenv("SMTP_FROM_EMAIL")
		cfg.Email.FromName = getenv("SMTP_FROM_NAME")
	}

	cfg.FirstAdminEmail = getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = getenv("FIRST_ADMIN_PASSWORD")

	cfg.applyDefaults()
	return &cfg, cfg.validate()
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = 60
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Blood Bank"
	}
}

func (c *Config) validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database url is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
