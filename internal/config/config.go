package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type AuthConfig struct {
	AllowedDomain string `yaml:"allowed_domain"`
	SessionSecret string `yaml:"session_secret"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Auth AuthConfig `yaml:"auth"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Auth.AllowedDomain == "" {
		cfg.Auth.AllowedDomain = "meridianfoods.in"
	}
	if cfg.Auth.SessionSecret == "" {
		cfg.Auth.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	return &cfg
}
