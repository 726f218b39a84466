package core

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default endpoints of the BitoPro API.
const (
	DefaultRESTURL      = "https://api.bitopro.com/v3"
	DefaultWebsocketURL = "wss://stream.bitopro.com:443/ws/v1"
)

// Environment variables read by CredentialsFromEnv.
const (
	EnvIdentity  = "BITOPRO_IDENTITY"
	EnvAPIKey    = "BITOPRO_API_KEY"
	EnvAPISecret = "BITOPRO_API_SECRET"
)

// Credentials holds the account identity and the API key pair used for signing.
type Credentials struct {
	// Identity is the account e-mail that owns the API key.
	Identity string `json:"identity" yaml:"identity"`
	// APIKey is sent verbatim in the X-BITOPRO-APIKEY header.
	APIKey string `json:"api_key" yaml:"api_key"`
	// APISecret keys the HMAC and is never transmitted.
	APISecret string `json:"api_secret" yaml:"api_secret"`
}

// Valid reports whether both halves of the key pair are present.
func (c *Credentials) Valid() bool {
	return c != nil && c.APIKey != "" && c.APISecret != ""
}

// String masks the key and omits the secret so credentials are safe to log.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{identity=%s key=%s}", c.Identity, maskKey(c.APIKey))
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// CredentialsFromEnv reads credentials from BITOPRO_IDENTITY, BITOPRO_API_KEY
// and BITOPRO_API_SECRET. It returns nil when no key pair is set.
func CredentialsFromEnv() *Credentials {
	creds := &Credentials{
		Identity:  os.Getenv(EnvIdentity),
		APIKey:    os.Getenv(EnvAPIKey),
		APISecret: os.Getenv(EnvAPISecret),
	}
	if !creds.Valid() {
		return nil
	}
	return creds
}

// Config contains all configuration options for a BitoPro client.
type Config struct {
	RESTURL      string       `json:"rest_url" yaml:"rest_url" validate:"required,url"`
	WebsocketURL string       `json:"websocket_url" yaml:"websocket_url" validate:"required,url"`
	Credentials  *Credentials `json:"credentials,omitempty" yaml:"credentials,omitempty"`

	// Timeout is the maximum duration for HTTP requests.
	Timeout time.Duration `json:"timeout" yaml:"timeout" validate:"min=1ms"`

	// ReconnectInterval is the fixed wait between a dropped stream and the next attempt.
	ReconnectInterval time.Duration `json:"reconnect_interval" yaml:"reconnect_interval" validate:"min=1ms"`
	HandshakeTimeout  time.Duration `json:"handshake_timeout" yaml:"handshake_timeout" validate:"min=0"`
	// ReadTimeout drops a stream that stays silent for longer than this. Zero disables it.
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout" validate:"min=0"`

	LogLevel string `json:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config pointing at the production endpoints with a
// 10s request timeout and the 3s reconnect interval used by BitoPro streams.
func DefaultConfig() *Config {
	return &Config{
		RESTURL:           DefaultRESTURL,
		WebsocketURL:      DefaultWebsocketURL,
		Timeout:           10 * time.Second,
		ReconnectInterval: 3 * time.Second,
		HandshakeTimeout:  10 * time.Second,
		LogLevel:          "info",
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	return validate.Struct(c)
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return config, nil
}

// WithCredentials sets the API credentials and returns the config for chaining.
func (c *Config) WithCredentials(creds *Credentials) *Config {
	c.Credentials = creds
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithReconnectInterval sets the stream reconnect interval and returns the config for chaining.
func (c *Config) WithReconnectInterval(interval time.Duration) *Config {
	c.ReconnectInterval = interval
	return c
}

// WithEndpoints overrides the REST and WebSocket base URLs and returns the config for chaining.
func (c *Config) WithEndpoints(restURL, websocketURL string) *Config {
	c.RESTURL = restURL
	c.WebsocketURL = websocketURL
	return c
}

// WithLogLevel sets the log level and returns the config for chaining.
func (c *Config) WithLogLevel(level string) *Config {
	c.LogLevel = level
	return c
}
