package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Addr           string   `yaml:"addr"`
	UsersFile      string   `yaml:"users_file"`
	CodeTTLMinutes int      `yaml:"code_ttl_minutes"` // pending registration lifetime
	BcryptCost     int      `yaml:"bcrypt_cost"`
	LogLevel       string   `yaml:"log_level"`
	LogJSON        bool     `yaml:"log_json"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Private struct {
	Email Email `yaml:"email"`
}

type Email struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	SenderName string `yaml:"sender_name"`
	Timeout    int    `yaml:"timeout"` // seconds
}

func (s *Config) Email() *Email {
	return &s.private.Email
}

func (s *Config) CodeTTL() time.Duration {
	return time.Duration(s.Public.CodeTTLMinutes) * time.Minute
}

// Configured reports whether real SMTP credentials were provided.
// Without them email delivery falls back to the log-only sender.
func (e *Email) Configured() bool {
	return e.Username != "" && e.Password != ""
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	applyDefaults(&cfg.Public)
	return cfg
}

func applyDefaults(p *Public) {
	if p.Addr == "" {
		p.Addr = ":8080"
	}
	if p.UsersFile == "" {
		p.UsersFile = "users.json"
	}
	if p.CodeTTLMinutes == 0 {
		p.CodeTTLMinutes = 15
	}
	if p.BcryptCost == 0 {
		p.BcryptCost = 10
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
}
