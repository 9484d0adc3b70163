package apiclient

import (
	"maps"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"
	DefaultTimeout = 10 * time.Second
)

// Config is an immutable client configuration. The With* methods return
// modified copies; the client swaps its active Config as a whole.
type Config struct {
	BaseURL string
	Timeout time.Duration
	headers map[string]string
}

type environment struct {
	APIURL string `env:"API_URL" envDefault:"http://localhost:5000/api"`
}

// DefaultConfig returns the configuration for the API at baseURL with JSON
// headers and the default timeout.
func DefaultConfig(baseURL string) *Config {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Config{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: DefaultTimeout,
		headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
	}
}

// ConfigFromEnv resolves the base URL from API_URL.
func ConfigFromEnv() (*Config, error) {
	var e environment
	if err := env.Parse(&e); err != nil {
		return nil, err
	}
	return DefaultConfig(e.APIURL), nil
}

// Header returns a default header value.
func (c *Config) Header(key string) (string, bool) {
	v, ok := c.headers[key]
	return v, ok
}

// Headers returns a copy of the default headers.
func (c *Config) Headers() map[string]string {
	return maps.Clone(c.headers)
}

func (c *Config) WithHeader(key, value string) *Config {
	next := *c
	next.headers = maps.Clone(c.headers)
	if next.headers == nil {
		next.headers = map[string]string{}
	}
	next.headers[key] = value
	return &next
}

func (c *Config) WithoutHeader(key string) *Config {
	next := *c
	next.headers = maps.Clone(c.headers)
	delete(next.headers, key)
	return &next
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	next := *c
	next.headers = maps.Clone(c.headers)
	next.Timeout = timeout
	return &next
}
