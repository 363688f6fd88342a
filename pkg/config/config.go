package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/autocrud/config"
	ConfigFileName    = "autocrud.yml"
)

const masked = "*****"

// AutocrudConfig holds all autocrud configuration settings
type AutocrudConfig struct {
	// ModelsDir is the directory published model definitions are written to
	ModelsDir string `yaml:"models_dir" json:"models_dir"`

	// TokenTTL is the lifetime of issued tokens in seconds
	TokenTTL int `yaml:"token_ttl" json:"token_ttl"`

	// JWTSecret signs and verifies tokens
	JWTSecret string `yaml:"jwt_secret" json:"-"`

	// MockAuth turns anonymous requests into an Admin principal. Development only.
	MockAuth bool `yaml:"mock_auth" json:"mock_auth"`

	// DefaultRole is assumed for principals without a role
	DefaultRole string `yaml:"default_role" json:"default_role"`

	// OwnerScopedReads applies the owner rule to read and list
	OwnerScopedReads bool `yaml:"owner_scoped_reads" json:"owner_scoped_reads"`

	// SeedUsers creates the demo users when the users table is empty
	SeedUsers bool `yaml:"seed_users" json:"seed_users"`

	// SeedPassword is the password given to seeded users
	SeedPassword string `yaml:"seed_password" json:"-"`

	// APIListLimitMax caps the limit parameter of list requests
	APIListLimitMax int `yaml:"api_list_limit_max" json:"api_list_limit_max"`

	// CORSAllowedOrigins is passed to the CORS handler
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" json:"cors_allowed_origins"`

	// WatchModels reloads definitions when files in ModelsDir change
	WatchModels bool `yaml:"watch_models" json:"watch_models"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// fileConfig uses pointers so that values explicitly set in the file can be
// told apart from zero values.
type fileConfig struct {
	ModelsDir          *string  `yaml:"models_dir"`
	TokenTTL           *int     `yaml:"token_ttl"`
	JWTSecret          *string  `yaml:"jwt_secret"`
	MockAuth           *bool    `yaml:"mock_auth"`
	DefaultRole        *string  `yaml:"default_role"`
	OwnerScopedReads   *bool    `yaml:"owner_scoped_reads"`
	SeedUsers          *bool    `yaml:"seed_users"`
	SeedPassword       *string  `yaml:"seed_password"`
	APIListLimitMax    *int     `yaml:"api_list_limit_max"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	WatchModels        *bool    `yaml:"watch_models"`
}

// envConfig is parsed with caarlos0/env. Nil pointers mean the variable is unset.
type envConfig struct {
	ModelsDir          *string  `env:"AUTOCRUD_MODELS_DIR"`
	TokenTTL           *int     `env:"AUTOCRUD_TOKEN_TTL"`
	JWTSecret          *string  `env:"AUTOCRUD_JWT_SECRET"`
	LegacyJWTSecret    *string  `env:"JWT_SECRET"`
	MockAuth           *bool    `env:"AUTOCRUD_MOCK_AUTH"`
	DefaultRole        *string  `env:"AUTOCRUD_DEFAULT_ROLE"`
	OwnerScopedReads   *bool    `env:"AUTOCRUD_OWNER_SCOPED_READS"`
	SeedUsers          *bool    `env:"AUTOCRUD_SEED_USERS"`
	SeedPassword       *string  `env:"AUTOCRUD_SEED_PASSWORD"`
	APIListLimitMax    *int     `env:"AUTOCRUD_API_LIST_LIMIT_MAX"`
	CORSAllowedOrigins []string `env:"AUTOCRUD_CORS_ALLOWED_ORIGINS" envSeparator:","`
	WatchModels        *bool    `env:"AUTOCRUD_WATCH_MODELS"`
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *AutocrudConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *AutocrudConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *AutocrudConfig {
	return &AutocrudConfig{
		ModelsDir:          "models",
		TokenTTL:           28800,
		DefaultRole:        "Viewer",
		SeedUsers:          true,
		SeedPassword:       "pass",
		APIListLimitMax:    1000,
		CORSAllowedOrigins: []string{"*"},
		sources:            make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*AutocrudConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("AUTOCRUD_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.apply(file.values(), "file")
	}

	var ev envConfig
	if err := env.Parse(&ev); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	config.apply(ev.values(), "environment")

	return config, nil
}

func attributeNames() []string {
	return []string{
		"models_dir", "token_ttl", "jwt_secret", "mock_auth", "default_role",
		"owner_scoped_reads", "seed_users", "seed_password", "api_list_limit_max",
		"cors_allowed_origins", "watch_models",
	}
}

// overrides is the common shape of the file and environment layers.
type overrides struct {
	ModelsDir          *string
	TokenTTL           *int
	JWTSecret          *string
	MockAuth           *bool
	DefaultRole        *string
	OwnerScopedReads   *bool
	SeedUsers          *bool
	SeedPassword       *string
	APIListLimitMax    *int
	CORSAllowedOrigins []string
	WatchModels        *bool
}

func (f fileConfig) values() overrides {
	return overrides(f)
}

func (e envConfig) values() overrides {
	secret := e.JWTSecret
	if secret == nil {
		secret = e.LegacyJWTSecret
	}
	return overrides{
		ModelsDir:          e.ModelsDir,
		TokenTTL:           e.TokenTTL,
		JWTSecret:          secret,
		MockAuth:           e.MockAuth,
		DefaultRole:        e.DefaultRole,
		OwnerScopedReads:   e.OwnerScopedReads,
		SeedUsers:          e.SeedUsers,
		SeedPassword:       e.SeedPassword,
		APIListLimitMax:    e.APIListLimitMax,
		CORSAllowedOrigins: e.CORSAllowedOrigins,
		WatchModels:        e.WatchModels,
	}
}

func (c *AutocrudConfig) apply(o overrides, source string) {
	if o.ModelsDir != nil && *o.ModelsDir != "" {
		c.ModelsDir = *o.ModelsDir
		c.sources["models_dir"] = source
	}
	if o.TokenTTL != nil {
		c.TokenTTL = *o.TokenTTL
		c.sources["token_ttl"] = source
	}
	if o.JWTSecret != nil && *o.JWTSecret != "" {
		c.JWTSecret = *o.JWTSecret
		c.sources["jwt_secret"] = source
	}
	if o.MockAuth != nil {
		c.MockAuth = *o.MockAuth
		c.sources["mock_auth"] = source
	}
	if o.DefaultRole != nil && *o.DefaultRole != "" {
		c.DefaultRole = *o.DefaultRole
		c.sources["default_role"] = source
	}
	if o.OwnerScopedReads != nil {
		c.OwnerScopedReads = *o.OwnerScopedReads
		c.sources["owner_scoped_reads"] = source
	}
	if o.SeedUsers != nil {
		c.SeedUsers = *o.SeedUsers
		c.sources["seed_users"] = source
	}
	if o.SeedPassword != nil && *o.SeedPassword != "" {
		c.SeedPassword = *o.SeedPassword
		c.sources["seed_password"] = source
	}
	if o.APIListLimitMax != nil {
		c.APIListLimitMax = *o.APIListLimitMax
		c.sources["api_list_limit_max"] = source
	}
	if len(o.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = trimAll(o.CORSAllowedOrigins)
		c.sources["cors_allowed_origins"] = source
	}
	if o.WatchModels != nil {
		c.WatchModels = *o.WatchModels
		c.sources["watch_models"] = source
	}
}

// ConfigFilePath returns the path to the config file
func (c *AutocrudConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *AutocrudConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenLifetime returns the token TTL as a duration
func (c *AutocrudConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}

// ListLimit clamps a requested list limit. Zero or negative means the maximum.
func (c *AutocrudConfig) ListLimit(requested int) int {
	if requested <= 0 || requested > c.APIListLimitMax {
		return c.APIListLimitMax
	}
	return requested
}

// Validate validates the configuration
func (c *AutocrudConfig) Validate() error {
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid token_ttl value: %d", c.TokenTTL)
	}
	if c.APIListLimitMax <= 0 {
		return fmt.Errorf("invalid api_list_limit_max value: %d", c.APIListLimitMax)
	}
	if strings.TrimSpace(c.DefaultRole) == "" {
		return fmt.Errorf("default_role cannot be empty")
	}
	if c.ModelsDir == "" {
		return fmt.Errorf("models_dir cannot be empty")
	}
	return nil
}

// ValidateServer checks the settings the HTTP server cannot run without
func (c *AutocrudConfig) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required (set AUTOCRUD_JWT_SECRET or JWT_SECRET)")
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources.
// Secrets are masked.
func (c *AutocrudConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "models_dir", Value: c.ModelsDir, Source: c.Source("models_dir")},
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTL), Source: c.Source("token_ttl")},
		{Name: "jwt_secret", Value: mask(c.JWTSecret), Source: c.Source("jwt_secret")},
		{Name: "mock_auth", Value: strconv.FormatBool(c.MockAuth), Source: c.Source("mock_auth")},
		{Name: "default_role", Value: c.DefaultRole, Source: c.Source("default_role")},
		{Name: "owner_scoped_reads", Value: strconv.FormatBool(c.OwnerScopedReads), Source: c.Source("owner_scoped_reads")},
		{Name: "seed_users", Value: strconv.FormatBool(c.SeedUsers), Source: c.Source("seed_users")},
		{Name: "seed_password", Value: mask(c.SeedPassword), Source: c.Source("seed_password")},
		{Name: "api_list_limit_max", Value: strconv.Itoa(c.APIListLimitMax), Source: c.Source("api_list_limit_max")},
		{Name: "cors_allowed_origins", Value: strings.Join(c.CORSAllowedOrigins, ","), Source: c.Source("cors_allowed_origins")},
		{Name: "watch_models", Value: strconv.FormatBool(c.WatchModels), Source: c.Source("watch_models")},
	}
}

// FormatText returns a text representation of the configuration
func (c *AutocrudConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *AutocrudConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return masked
}

func trimAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}
