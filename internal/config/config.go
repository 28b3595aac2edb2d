package config

import (
	"fmt"
	"os"
	"strings"
)

// Config aggregates the service configuration.
type Config struct {
	Server ServerConfig
	Answer AnswerConfig
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// AnswerConfig describes the mock answer data source.
type AnswerConfig struct {
	DataPath string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		Answer: AnswerConfig{
			DataPath: getEnvOrDefault("MOCK_DATA_PATH", "data/mock_answer.json"),
		},
	}, nil
}

// loadServerConfig parses the listen address.
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "4000"
	}

	if strings.Contains(port, ":") {
		// Accept ":4000" or "127.0.0.1:4000" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
