package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultSankhyaBaseURL = "https://api.sandbox.sankhya.com.br"
	DefaultAdminRole      = "Administrador"
	DefaultPort           = "8080"
)

type Config struct {
	SankhyaBaseURL  string
	SankhyaToken    string
	SankhyaAppKey   string
	SankhyaUsername string
	SankhyaPassword string

	SessionSecret string
	AdminRole     string

	DatabaseURL string
	RabbitMQURL string

	Port        string
	CORSOrigins []string
}

// Load lê o .env (quando existir) e depois as variáveis do processo.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Arquivo .env não encontrado, usando variáveis do sistema")
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		SankhyaBaseURL:  getEnv("SANKHYA_BASE_URL", DefaultSankhyaBaseURL),
		SankhyaToken:    os.Getenv("SANKHYA_TOKEN"),
		SankhyaAppKey:   os.Getenv("SANKHYA_APPKEY"),
		SankhyaUsername: os.Getenv("SANKHYA_USERNAME"),
		SankhyaPassword: os.Getenv("SANKHYA_PASSWORD"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		AdminRole:       getEnv("ADMIN_ROLE", DefaultAdminRole),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RabbitMQURL:     os.Getenv("RABBITMQ_URL"),
		Port:            getEnv("PORT", DefaultPort),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
	}

	var missing []string
	for name, value := range map[string]string{
		"SANKHYA_TOKEN":    cfg.SankhyaToken,
		"SANKHYA_APPKEY":   cfg.SankhyaAppKey,
		"SANKHYA_USERNAME": cfg.SankhyaUsername,
		"SANKHYA_PASSWORD": cfg.SankhyaPassword,
		"SESSION_SECRET":   cfg.SessionSecret,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("variáveis obrigatórias ausentes: %s", strings.Join(missing, ", "))
	}

	cfg.SankhyaBaseURL = strings.TrimRight(cfg.SankhyaBaseURL, "/")
	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
