package config

import (
	_ "embed"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Database DatabaseConfig
	FaceAPI  FaceAPIConfig
	Match    MatchConfig
	Web      WebConfig
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type FaceAPIConfig struct {
	URL     string        // Face descriptor service URL
	Dim     int           // Descriptor dimensionality, fixed by the model
	Timeout time.Duration // Bound on a single descriptor request
}

type MatchConfig struct {
	Threshold float64 // Exclusive max distance for a match
}

type WebConfig struct {
	Port int
	Host string
}

// defaults mirrors the embedded defaults.yaml structure.
type defaults struct {
	Match struct {
		Threshold float64 `yaml:"threshold"`
	} `yaml:"match"`
	FaceAPI struct {
		URL            string `yaml:"url"`
		DescriptorDim  int    `yaml:"descriptor_dim"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"face_api"`
	Web struct {
		Port int    `yaml:"port"`
		Host string `yaml:"host"`
	} `yaml:"web"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

// envString reads an environment variable, falling back to a default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// Load builds the configuration from embedded defaults overlaid with
// environment variables.
func Load() *Config {
	var def defaults
	if err := yaml.Unmarshal(defaultsYAML, &def); err != nil {
		// Embedded file, so this should never happen in practice.
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}

	return &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		FaceAPI: FaceAPIConfig{
			URL:     envString("FACE_API_URL", def.FaceAPI.URL),
			Dim:     envInt("FACE_DESCRIPTOR_DIM", def.FaceAPI.DescriptorDim),
			Timeout: time.Duration(envInt("FACE_API_TIMEOUT_SECONDS", def.FaceAPI.TimeoutSeconds)) * time.Second,
		},
		Match: MatchConfig{
			Threshold: envFloat("MATCH_THRESHOLD", def.Match.Threshold),
		},
		Web: WebConfig{
			Port: envInt("WEB_PORT", def.Web.Port),
			Host: envString("WEB_HOST", def.Web.Host),
		},
	}
}
