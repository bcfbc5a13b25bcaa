package box

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
)

const (
	DefaultBaseURL      = "https://api.box.com/2.0"
	DefaultUploadURL    = "https://upload.box.com/api/2.0"
	DefaultAuthorizeURL = "https://account.box.com/api/oauth2/authorize"
	DefaultTokenURL     = "https://api.box.com/oauth2/token"
)

// Config contains the transport configuration for a Box client.
//
// Example configuration (HCL, see internal/config):
//
//	box {
//	  timeout     = "30s"
//	  max_retries = 3
//	  retry_delay = "1s"
//	}
type Config struct {
	// BaseURL is the Box API root.
	// Default: https://api.box.com/2.0
	BaseURL string `json:"baseUrl,omitempty"`

	// UploadURL is the root used for content uploads.
	// Default: https://upload.box.com/api/2.0
	UploadURL string `json:"uploadUrl,omitempty"`

	// AuthorizeURL and TokenURL are the OAuth 2.0 endpoints.
	AuthorizeURL string `json:"authorizeUrl,omitempty"`
	TokenURL     string `json:"tokenUrl,omitempty"`

	// TLSVerify controls TLS certificate verification
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool `json:"tlsVerify,omitempty"`

	// Timeout for API requests
	// Default: 30 seconds
	Timeout time.Duration `json:"timeout,omitempty"`

	// MaxRetries for requests rejected with 429 or 5xx
	// Default: 3
	MaxRetries int `json:"maxRetries,omitempty"`

	// RetryDelay is the initial delay between retries. It grows
	// exponentially unless Box sends a Retry-After header.
	// Default: 1 second
	RetryDelay time.Duration `json:"retryDelay,omitempty"`

	// UserAgent sent with every request.
	UserAgent string `json:"userAgent,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		BaseURL:      DefaultBaseURL,
		UploadURL:    DefaultUploadURL,
		AuthorizeURL: DefaultAuthorizeURL,
		TokenURL:     DefaultTokenURL,
		TLSVerify:    &tlsVerify,
		Timeout:      30 * time.Second,
		MaxRetries:   3,
		RetryDelay:   1 * time.Second,
		UserAgent:    "boxkit",
	}
}

// SetDefaults fills every zero-valued field from DefaultConfig.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.UploadURL == "" {
		c.UploadURL = d.UploadURL
	}
	if c.AuthorizeURL == "" {
		c.AuthorizeURL = d.AuthorizeURL
	}
	if c.TokenURL == "" {
		c.TokenURL = d.TokenURL
	}
	if c.TLSVerify == nil {
		c.TLSVerify = d.TLSVerify
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = d.RetryDelay
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
}

// Validate checks if the configuration is valid. All problems are
// reported together.
func (c *Config) Validate() error {
	var result *multierror.Error

	for name, raw := range map[string]string{
		"base_url":      c.BaseURL,
		"upload_url":    c.UploadURL,
		"authorize_url": c.AuthorizeURL,
		"token_url":     c.TokenURL,
	} {
		if err := validateURL(name, raw); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if c.Timeout <= 0 {
		result = multierror.Append(result,
			fmt.Errorf("timeout must be positive, got: %v", c.Timeout))
	}
	if c.MaxRetries < 0 {
		result = multierror.Append(result,
			fmt.Errorf("max_retries must be non-negative, got: %d", c.MaxRetries))
	}
	if c.RetryDelay < 0 {
		result = multierror.Append(result,
			fmt.Errorf("retry_delay must be non-negative, got: %v", c.RetryDelay))
	}

	return result.ErrorOrNil()
}

func validateURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme, got: %s", name, u.Scheme)
	}
	return nil
}

// NewHTTPClient creates the unauthenticated HTTP client used as the base
// transport for API calls and token requests.
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}
