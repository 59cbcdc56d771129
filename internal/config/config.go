package config

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

var (
	cfg     *APIConfig
	loadErr error
	once    sync.Once
)

// APIConfig represents the root element.
type APIConfig struct {
	XMLName        xml.Name             `xml:"API"`
	RequestDump    bool                 `xml:"REQUEST_DUMP,attr"`
	Context        ContextConfig        `xml:"CONTEXT"`
	Authentication AuthenticationConfig `xml:"AUTHENTICATION"`
	Pagination     PaginationConfig     `xml:"PAGINATION"`
	DB             DBConfig             `xml:"DB"`
	LLM            LLMConfig            `xml:"LLM"`
	Logging        LoggingConfig        `xml:"LOGGING"`
	RateLimit      RateLimitConfig      `xml:"RATE_LIMIT"`
}

// ContextConfig holds basic server settings.
type ContextConfig struct {
	Port     int    `xml:"PORT"`
	Host     string `xml:"HOST"`
	Path     string `xml:"PATH"`
	TimeZone string `xml:"TIME_ZONE"`
}

// AuthenticationConfig holds token validation settings.
type AuthenticationConfig struct {
	EnableTokenAuth bool   `xml:"ENABLE_TOKEN_AUTH"`
	SessionTimeout  int    `xml:"SESSION_TIMEOUT"`
	AccessSecret    string `xml:"JWT_ACCESS_SECRET"`
	RefreshSecret   string `xml:"JWT_REFRESH_SECRET"`
}

// PaginationConfig holds pagination settings.
type PaginationConfig struct {
	PageSize int `xml:"PAGE_SIZE"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	Initialize bool         `xml:"INITIALIZE"`
	Host       string       `xml:"HOST"`
	Port       int          `xml:"PORT"`
	Driver     string       `xml:"DRIVER"`
	SSLMode    string       `xml:"SSL_MODE"`
	Names      DBNames      `xml:"NAMES"`
	Username   string       `xml:"USERNAME"`
	Password   DBPassword   `xml:"PASSWORD"`
	Pool       DBPoolConfig `xml:"POOL"`
}

// DBNames holds the names defined in the DB section.
type DBNames struct {
	Analysis string `xml:"ANALYSIS,attr"`
}

// DBPassword holds password details.
type DBPassword struct {
	Type  string `xml:"TYPE,attr"`
	Value string `xml:",chardata"`
}

// DBPoolConfig holds database connection pooling settings.
type DBPoolConfig struct {
	MaxOpenConns    int `xml:"MAX_OPEN_CONNS"`
	MaxIdleConns    int `xml:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int `xml:"CONN_MAX_LIFETIME"`
}

// LLMConfig configures the optional Ollama-backed topic classifier.
type LLMConfig struct {
	Enabled         bool   `xml:"ENABLED,attr"`
	URL             string `xml:"URL"`
	Model           string `xml:"MODEL"`
	TimeoutSeconds  int    `xml:"TIMEOUT_SECONDS"`
	MaxPromptTokens int    `xml:"MAX_PROMPT_TOKENS"`
	EnrichAdvice    bool   `xml:"ENRICH_ADVICE"`
}

// LoggingConfig controls the rotating log files.
type LoggingConfig struct {
	Dir        string `xml:"DIR"`
	MaxSizeMB  int    `xml:"MAX_SIZE_MB"`
	MaxBackups int    `xml:"MAX_BACKUPS"`
	MaxAgeDays int    `xml:"MAX_AGE_DAYS"`
	Debug      bool   `xml:"DEBUG"`
}

// RateLimitConfig limits analysis requests per client.
type RateLimitConfig struct {
	RequestsPerMinute int `xml:"REQUESTS_PER_MINUTE"`
	Burst             int `xml:"BURST"`
}

// ParseConfig decodes an XML document and fills in defaults.
func ParseConfig(data []byte) (*APIConfig, error) {
	var newCfg APIConfig
	if err := xml.Unmarshal(data, &newCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	newCfg.ApplyDefaults()
	return &newCfg, nil
}

// LoadConfig loads and parses the XML configuration from the given file.
// Values from a .env file (or the process environment) override the XML.
func LoadConfig(xmlPath string) (*APIConfig, error) {
	once.Do(func() {
		f, err := os.Open(xmlPath)
		if err != nil {
			loadErr = fmt.Errorf("failed to open config %s: %w", xmlPath, err)
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			loadErr = fmt.Errorf("failed to read config %s: %w", xmlPath, err)
			return
		}

		newCfg, err := ParseConfig(data)
		if err != nil {
			loadErr = err
			return
		}

		// A missing .env file is fine; the environment may already be set.
		_ = godotenv.Load()
		newCfg.ApplyEnv()

		cfg = newCfg
	})

	if cfg == nil {
		if loadErr == nil {
			loadErr = os.ErrInvalid
		}
		return nil, loadErr
	}
	return cfg, nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *APIConfig {
	return cfg
}

// ApplyDefaults fills zero values with working defaults.
func (c *APIConfig) ApplyDefaults() {
	if c.Context.Port == 0 {
		c.Context.Port = 8080
	}
	if c.Context.Host == "" {
		c.Context.Host = "0.0.0.0"
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.DB.SSLMode == "" {
		c.DB.SSLMode = "disable"
	}
	if c.DB.Names.Analysis == "" {
		c.DB.Names.Analysis = "testinsight"
	}
	if c.LLM.URL == "" {
		c.LLM.URL = "http://localhost:11434/api/generate"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "mistral"
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = 20
	}
	if c.LLM.MaxPromptTokens <= 0 {
		c.LLM.MaxPromptTokens = 3000
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = "logs"
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = 50
	}
	if c.Logging.MaxBackups <= 0 {
		c.Logging.MaxBackups = 5
	}
	if c.Logging.MaxAgeDays <= 0 {
		c.Logging.MaxAgeDays = 28
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		c.RateLimit.RequestsPerMinute = 30
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 5
	}
}

// ApplyEnv overrides secrets and endpoints from environment variables.
func (c *APIConfig) ApplyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.DB.Password.Value = v
	}
	if v := os.Getenv("JWT_ACCESS_SECRET"); v != "" {
		c.Authentication.AccessSecret = v
	}
	if v := os.Getenv("JWT_REFRESH_SECRET"); v != "" {
		c.Authentication.RefreshSecret = v
	}
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		c.LLM.URL = v
	}
	if v := os.Getenv("LLM_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LLM.Enabled = b
		}
	}
}
