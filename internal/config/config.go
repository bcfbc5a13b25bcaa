// Package config loads the boxkit CLI configuration.
//
// Example configuration:
//
//	log_level = "info"
//
//	box {
//	  timeout     = "30s"
//	  max_retries = 3
//	}
//
//	auth {
//	  type          = "ccg"
//	  client_id     = env("BOX_CLIENT_ID")
//	  client_secret = env("BOX_CLIENT_SECRET")
//	  subject_type  = "enterprise"
//	  subject_id    = "12345"
//	}
package config

import (
	"context"
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"golang.org/x/oauth2"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

// Auth types.
const (
	AuthCCG   = "ccg"
	AuthOAuth = "oauth"
	AuthJWT   = "jwt"
	AuthToken = "token"
)

// Environment variables read by FromEnv.
const (
	EnvClientID       = "BOX_CLIENT_ID"
	EnvClientSecret   = "BOX_CLIENT_SECRET"
	EnvSubjectType    = "BOX_SUBJECT_TYPE"
	EnvSubjectID      = "BOX_SUBJECT_ID"
	EnvRedirectURL    = "BOX_REDIRECT_URL"
	EnvTokenFile      = "BOX_TOKEN_FILE"
	EnvJWTConfigFile  = "BOX_JWT_CONFIG_FILE"
	EnvDeveloperToken = "BOX_DEVELOPER_TOKEN"
	EnvLogLevel       = "BOX_LOG_LEVEL"
)

// DefaultRedirectURL is the loopback address used by the OAuth flow when
// none is configured.
const DefaultRedirectURL = "http://localhost:8000/callback"

// Config is the root of the HCL configuration.
type Config struct {
	LogLevel string      `hcl:"log_level,optional"`
	Box      *BoxConfig  `hcl:"box,block"`
	Auth     *AuthConfig `hcl:"auth,block"`
}

// BoxConfig overrides the Box transport settings.
type BoxConfig struct {
	BaseURL      string `hcl:"base_url,optional"`
	UploadURL    string `hcl:"upload_url,optional"`
	AuthorizeURL string `hcl:"authorize_url,optional"`
	TokenURL     string `hcl:"token_url,optional"`
	TLSVerify    *bool  `hcl:"tls_verify,optional"`
	Timeout      string `hcl:"timeout,optional"`
	MaxRetries   int    `hcl:"max_retries,optional"`
	RetryDelay   string `hcl:"retry_delay,optional"`
	UserAgent    string `hcl:"user_agent,optional"`
}

// AuthConfig selects and configures the credentials.
type AuthConfig struct {
	// Type is ccg, oauth, jwt or token.
	Type string `hcl:"type"`

	ClientID     string `hcl:"client_id,optional"`
	ClientSecret string `hcl:"client_secret,optional"`

	// ccg
	SubjectType string `hcl:"subject_type,optional"`
	SubjectID   string `hcl:"subject_id,optional"`

	// oauth
	RedirectURL string `hcl:"redirect_url,optional"`
	TokenFile   string `hcl:"token_file,optional"`

	// jwt, either from a developer console file or inline.
	ConfigFile   string `hcl:"config_file,optional"`
	PublicKeyID  string `hcl:"public_key_id,optional"`
	PrivateKey   string `hcl:"private_key,optional"`
	Passphrase   string `hcl:"passphrase,optional"`
	EnterpriseID string `hcl:"enterprise_id,optional"`
	UserID       string `hcl:"user_id,optional"`

	// token
	Token string `hcl:"token,optional"`
}

// Load reads the configuration file at path. An empty path builds the
// configuration from the environment instead.
func Load(fs afero.Fs, path string) (*Config, error) {
	if path == "" {
		return FromEnv(), nil
	}

	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return Parse(path, src)
}

// Parse decodes HCL source. filename is used in diagnostics and decides
// between native and JSON syntax.
func Parse(filename string, src []byte) (*Config, error) {
	var cfg Config
	if err := hclsimple.Decode(filename, src, evalContext(), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Auth != nil && cfg.Auth.Type == AuthOAuth && cfg.Auth.RedirectURL == "" {
		cfg.Auth.RedirectURL = DefaultRedirectURL
	}
	return &cfg, nil
}

// evalContext exposes env("NAME") to configuration files.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"env": envFunc,
		},
	}
}

var envFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.StringVal(os.Getenv(args[0].AsString())), nil
	},
})

// FromEnv builds a configuration from BOX_* environment variables. The
// auth type is inferred from which variables are set: a developer token
// wins, then a JWT config file, then a CCG subject, and OAuth otherwise.
func FromEnv() *Config {
	auth := &AuthConfig{
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		SubjectType:  os.Getenv(EnvSubjectType),
		SubjectID:    os.Getenv(EnvSubjectID),
		RedirectURL:  os.Getenv(EnvRedirectURL),
		TokenFile:    os.Getenv(EnvTokenFile),
		ConfigFile:   os.Getenv(EnvJWTConfigFile),
		Token:        os.Getenv(EnvDeveloperToken),
	}

	switch {
	case auth.Token != "":
		auth.Type = AuthToken
	case auth.ConfigFile != "":
		auth.Type = AuthJWT
	case auth.SubjectType != "" || auth.SubjectID != "":
		auth.Type = AuthCCG
	default:
		auth.Type = AuthOAuth
		if auth.RedirectURL == "" {
			auth.RedirectURL = DefaultRedirectURL
		}
	}

	return &Config{
		LogLevel: os.Getenv(EnvLogLevel),
		Auth:     auth,
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.LogLevel != "" && hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("invalid log_level %q", c.LogLevel))
	}

	boxCfg, err := c.BoxConfig()
	if err != nil {
		result = multierror.Append(result, err)
	} else if err := boxCfg.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	if c.Auth == nil {
		result = multierror.Append(result, fmt.Errorf("auth block is required"))
		return result.ErrorOrNil()
	}
	if err := validation.Validate(c.Auth.Type,
		validation.Required,
		validation.In(AuthCCG, AuthOAuth, AuthJWT, AuthToken),
	); err != nil {
		result = multierror.Append(result, fmt.Errorf("auth type: %w", err))
		return result.ErrorOrNil()
	}

	switch c.Auth.Type {
	case AuthCCG:
		err = c.Auth.CCG().Validate()
	case AuthOAuth:
		err = c.Auth.OAuth().Validate()
	case AuthJWT:
		// A config file is only read when the token source is built.
		if c.Auth.ConfigFile == "" {
			err = c.Auth.jwt().Validate()
		}
	case AuthToken:
		err = validation.Validate(c.Auth.Token, validation.Required)
	}
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("auth %s: %w", c.Auth.Type, err))
	}

	return result.ErrorOrNil()
}

// BoxConfig returns the transport configuration with defaults applied.
func (c *Config) BoxConfig() (*box.Config, error) {
	cfg := box.DefaultConfig()
	if c.Box == nil {
		return cfg, nil
	}

	b := c.Box
	if b.BaseURL != "" {
		cfg.BaseURL = b.BaseURL
	}
	if b.UploadURL != "" {
		cfg.UploadURL = b.UploadURL
	}
	if b.AuthorizeURL != "" {
		cfg.AuthorizeURL = b.AuthorizeURL
	}
	if b.TokenURL != "" {
		cfg.TokenURL = b.TokenURL
	}
	if b.TLSVerify != nil {
		cfg.TLSVerify = b.TLSVerify
	}
	if b.UserAgent != "" {
		cfg.UserAgent = b.UserAgent
	}
	if b.MaxRetries != 0 {
		cfg.MaxRetries = b.MaxRetries
	}

	var err error
	if b.Timeout != "" {
		if cfg.Timeout, err = time.ParseDuration(b.Timeout); err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
	}
	if b.RetryDelay != "" {
		if cfg.RetryDelay, err = time.ParseDuration(b.RetryDelay); err != nil {
			return nil, fmt.Errorf("invalid retry_delay: %w", err)
		}
	}
	return cfg, nil
}

// TokenSource builds the credentials selected by the auth block. fs is
// used for the JWT config file and the OAuth token cache.
func (c *Config) TokenSource(ctx context.Context, fs afero.Fs) (oauth2.TokenSource, error) {
	if c.Auth == nil {
		return nil, fmt.Errorf("auth block is required")
	}
	boxCfg, err := c.BoxConfig()
	if err != nil {
		return nil, err
	}

	switch c.Auth.Type {
	case AuthToken:
		if c.Auth.Token == "" {
			return nil, fmt.Errorf("auth token: token is required")
		}
		return box.DeveloperToken(c.Auth.Token), nil
	case AuthCCG:
		return c.Auth.CCG().TokenSource(ctx, boxCfg)
	case AuthJWT:
		j := c.Auth.jwt()
		if c.Auth.ConfigFile != "" {
			if j, err = box.LoadJWTConfigFile(fs, c.Auth.ConfigFile); err != nil {
				return nil, err
			}
			if c.Auth.UserID != "" {
				j.UserID = c.Auth.UserID
				j.EnterpriseID = ""
			}
		}
		return j.TokenSource(ctx, boxCfg)
	case AuthOAuth:
		return box.OAuthTokenSource(ctx, boxCfg, c.Auth.OAuth(), c.Auth.TokenStore(fs))
	default:
		return nil, fmt.Errorf("unknown auth type %q", c.Auth.Type)
	}
}

// CCG returns the client credentials grant settings.
func (a *AuthConfig) CCG() box.CCGConfig {
	return box.CCGConfig{
		ClientID:     a.ClientID,
		ClientSecret: a.ClientSecret,
		SubjectType:  a.SubjectType,
		SubjectID:    a.SubjectID,
	}
}

// OAuth returns the authorization code settings.
func (a *AuthConfig) OAuth() box.OAuthConfig {
	return box.OAuthConfig{
		ClientID:     a.ClientID,
		ClientSecret: a.ClientSecret,
		RedirectURL:  a.RedirectURL,
	}
}

// TokenStore returns the cache for OAuth tokens on fs.
func (a *AuthConfig) TokenStore(fs afero.Fs) *box.FileTokenStore {
	store := box.NewFileTokenStore(a.TokenFile)
	store.Fs = fs
	return store
}

func (a *AuthConfig) jwt() box.JWTConfig {
	return box.JWTConfig{
		ClientID:     a.ClientID,
		ClientSecret: a.ClientSecret,
		PublicKeyID:  a.PublicKeyID,
		PrivateKey:   a.PrivateKey,
		Passphrase:   a.Passphrase,
		EnterpriseID: a.EnterpriseID,
		UserID:       a.UserID,
	}
}
