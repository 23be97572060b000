package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string

	LLMProvider string

	OpenAIModel   string
	OpenAIBaseURL string
	GeminiModel   string

	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	PromptDir   string

	DatabaseURL      string
	TelegramBotToken string

	CORSAllowOrigins []string
}

// configFile mirrors the optional YAML file named by CONFIG_FILE.
type configFile struct {
	Server struct {
		Port             string   `yaml:"port"`
		CORSAllowOrigins []string `yaml:"cors_allow_origins"`
	} `yaml:"server"`
	LLM struct {
		Provider      string   `yaml:"provider"`
		OpenAIModel   string   `yaml:"openai_model"`
		OpenAIBaseURL string   `yaml:"openai_base_url"`
		GeminiModel   string   `yaml:"gemini_model"`
		MaxTokens     int      `yaml:"max_tokens"`
		Temperature   *float32 `yaml:"temperature"`
		TimeoutSec    int      `yaml:"timeout_sec"`
		PromptDir     string   `yaml:"prompt_dir"`
	} `yaml:"llm"`
	Dependencies struct {
		DatabaseURL string `yaml:"database_url"`
	} `yaml:"dependencies"`
}

// LoadDotEnv reads .env into the process environment if the file exists.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}
}

// Load resolves configuration: defaults -> YAML file (if path non-empty) -> env.
// Credentials are not part of Config; use OpenAIKey/GeminiKey, which read the
// environment on every call.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:             "8000",
		LLMProvider:      "gpt",
		OpenAIModel:      "gpt-4.1-mini",
		GeminiModel:      "gemini-2.5-flash",
		MaxTokens:        300,
		Temperature:      0.2,
		Timeout:          60 * time.Second,
		CORSAllowOrigins: []string{"*"},
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		var f configFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
		cfg.applyFile(f)
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LLMProvider = strings.ToLower(getEnv("LLM_PROVIDER", cfg.LLMProvider))
	cfg.OpenAIModel = getEnv("OPENAI_MODEL", cfg.OpenAIModel)
	cfg.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", cfg.OpenAIBaseURL)
	cfg.GeminiModel = getEnv("GEMINI_MODEL", cfg.GeminiModel)
	cfg.MaxTokens = getEnvInt("SOLVE_MAX_TOKENS", cfg.MaxTokens)
	cfg.Temperature = getEnvFloat32("SOLVE_TEMPERATURE", cfg.Temperature)
	cfg.Timeout = time.Duration(getEnvInt("SOLVE_TIMEOUT_SEC", int(cfg.Timeout.Seconds()))) * time.Second
	cfg.PromptDir = getEnv("PROMPT_DIR", cfg.PromptDir)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.TelegramBotToken = getEnv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	cfg.CORSAllowOrigins = getEnvCSV("CORS_ALLOW_ORIGINS", cfg.CORSAllowOrigins)

	if cfg.MaxTokens <= 0 {
		return nil, fmt.Errorf("SOLVE_MAX_TOKENS must be positive, got %d", cfg.MaxTokens)
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return nil, fmt.Errorf("SOLVE_TEMPERATURE must be within [0, 2], got %v", cfg.Temperature)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("SOLVE_TIMEOUT_SEC must be positive")
	}
	return cfg, nil
}

func (c *Config) applyFile(f configFile) {
	if f.Server.Port != "" {
		c.Port = f.Server.Port
	}
	if len(f.Server.CORSAllowOrigins) > 0 {
		c.CORSAllowOrigins = f.Server.CORSAllowOrigins
	}
	if f.LLM.Provider != "" {
		c.LLMProvider = f.LLM.Provider
	}
	if f.LLM.OpenAIModel != "" {
		c.OpenAIModel = f.LLM.OpenAIModel
	}
	if f.LLM.OpenAIBaseURL != "" {
		c.OpenAIBaseURL = f.LLM.OpenAIBaseURL
	}
	if f.LLM.GeminiModel != "" {
		c.GeminiModel = f.LLM.GeminiModel
	}
	if f.LLM.MaxTokens > 0 {
		c.MaxTokens = f.LLM.MaxTokens
	}
	if f.LLM.Temperature != nil {
		c.Temperature = *f.LLM.Temperature
	}
	if f.LLM.TimeoutSec > 0 {
		c.Timeout = time.Duration(f.LLM.TimeoutSec) * time.Second
	}
	if f.LLM.PromptDir != "" {
		c.PromptDir = f.LLM.PromptDir
	}
	if f.Dependencies.DatabaseURL != "" {
		c.DatabaseURL = f.Dependencies.DatabaseURL
	}
}

// OpenAIKey returns the current OPENAI_API_KEY; read fresh on each call.
func OpenAIKey() string { return strings.TrimSpace(os.Getenv("OPENAI_API_KEY")) }

// GeminiKey returns the current GEMINI_API_KEY; read fresh on each call.
func GeminiKey() string { return strings.TrimSpace(os.Getenv("GEMINI_API_KEY")) }

// OpenAIKeyConfigured reports whether the OpenAI credential is currently present.
func OpenAIKeyConfigured() bool { return OpenAIKey() != "" }

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: ignoring %s=%q: %v", k, v, err)
		return def
	}
	return n
}

func getEnvFloat32(k string, def float32) float32 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		log.Printf("config: ignoring %s=%q: %v", k, v, err)
		return def
	}
	return float32(f)
}

func getEnvCSV(k string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
