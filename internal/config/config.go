package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all ctxport configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Transfer TransferConfig
}

type ServerConfig struct {
	Bind string
	Port int
}

type DatabaseConfig struct {
	Path string
}

type LLMConfig struct {
	Enabled        bool   // attempt AI compression before rule-based
	OllamaURL      string
	OllamaModel    string // e.g. "llama3.2"
	ChromeAIURL    string // extension bridge endpoint
	TimeoutSeconds int    // per summarization attempt
}

type TransferConfig struct {
	DefaultTarget string // "auto", "chatgpt", "claude", "gemini", "copilot"
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37878,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via vault.DefaultDBPath()
		},
		LLM: LLMConfig{
			Enabled:        false,
			OllamaURL:      "http://localhost:11434",
			OllamaModel:    "llama3.2",
			ChromeAIURL:    "http://localhost:11435",
			TimeoutSeconds: 60,
		},
		Transfer: TransferConfig{
			DefaultTarget: "auto",
		},
	}
}

// FromEnv applies CTXPORT_* environment overrides on top of a config.
func FromEnv(cfg Config) Config {
	cfg.Server.Bind = envStr("CTXPORT_BIND", cfg.Server.Bind)
	cfg.Server.Port = envInt("CTXPORT_PORT", cfg.Server.Port)
	cfg.Database.Path = envStr("CTXPORT_DB", cfg.Database.Path)
	cfg.LLM.OllamaURL = envStr("OLLAMA_URL", cfg.LLM.OllamaURL)
	cfg.LLM.OllamaModel = envStr("OLLAMA_MODEL", cfg.LLM.OllamaModel)
	cfg.LLM.ChromeAIURL = envStr("CTXPORT_CHROME_AI_URL", cfg.LLM.ChromeAIURL)
	cfg.Transfer.DefaultTarget = envStr("CTXPORT_TARGET", cfg.Transfer.DefaultTarget)
	return cfg
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
