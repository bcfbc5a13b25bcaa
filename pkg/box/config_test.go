package box

import (
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_SetDefaults(t *testing.T) {
	tlsVerify := false
	cfg := &Config{
		BaseURL:   "https://box.internal/2.0",
		TLSVerify: &tlsVerify,
		Timeout:   5 * time.Second,
	}
	cfg.SetDefaults()

	assert.Equal(t, "https://box.internal/2.0", cfg.BaseURL)
	assert.Equal(t, DefaultUploadURL, cfg.UploadURL)
	assert.Equal(t, DefaultTokenURL, cfg.TokenURL)
	assert.False(t, *cfg.TLSVerify)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErrs []string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name: "missing and bad urls",
			mutate: func(c *Config) {
				c.BaseURL = ""
				c.TokenURL = "ftp://box.com/token"
			},
			wantErrs: []string{
				"base_url is required",
				"token_url must use http or https scheme, got: ftp",
			},
		},
		{
			name: "negative durations",
			mutate: func(c *Config) {
				c.Timeout = 0
				c.MaxRetries = -1
				c.RetryDelay = -time.Second
			},
			wantErrs: []string{
				"timeout must be positive",
				"max_retries must be non-negative",
				"retry_delay must be non-negative",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.wantErrs) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			merr, ok := err.(*multierror.Error)
			require.True(t, ok)
			assert.Len(t, merr.Errors, len(tt.wantErrs))
			for _, want := range tt.wantErrs {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestConfig_NewHTTPClient(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 7 * time.Second

	hc := cfg.NewHTTPClient()
	assert.Equal(t, 7*time.Second, hc.Timeout)
	assert.NotNil(t, hc.Transport)
}
