package box

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/browser"
	"github.com/spf13/afero"
	"golang.org/x/oauth2"
)

// DefaultTokenFile is where the OAuth token is cached when no path is
// configured.
const DefaultTokenFile = ".auth.oauth"

// ErrNoStoredToken is returned when an OAuth token source is requested
// before the app has been authorized.
var ErrNoStoredToken = errors.New("box: no stored oauth token, run the authorization flow first")

// OAuthConfig holds OAuth 2.0 authorization code credentials.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string

	// RedirectURL must be a loopback URL registered with the Box app,
	// e.g. http://localhost:8000/callback.
	RedirectURL string
}

// Validate checks that every credential is present.
func (o OAuthConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.ClientID, validation.Required),
		validation.Field(&o.ClientSecret, validation.Required),
		validation.Field(&o.RedirectURL, validation.Required),
	)
}

// OAuth2Config builds the oauth2.Config for the Box endpoints in cfg.
func (o OAuthConfig) OAuth2Config(cfg *Config) *oauth2.Config {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.SetDefaults()

	return &oauth2.Config{
		ClientID:     o.ClientID,
		ClientSecret: o.ClientSecret,
		RedirectURL:  o.RedirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:   cfg.AuthorizeURL,
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// TokenStore persists OAuth tokens between runs.
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(*oauth2.Token) error
}

// FileTokenStore keeps the token as JSON in a single file.
type FileTokenStore struct {
	Fs   afero.Fs
	Path string
}

// NewFileTokenStore returns a store on the OS filesystem. An empty path
// selects DefaultTokenFile.
func NewFileTokenStore(path string) *FileTokenStore {
	if path == "" {
		path = DefaultTokenFile
	}
	return &FileTokenStore{Fs: afero.NewOsFs(), Path: path}
}

// Load reads the stored token. A missing file yields ErrNoStoredToken.
func (s *FileTokenStore) Load() (*oauth2.Token, error) {
	data, err := afero.ReadFile(s.Fs, s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoStoredToken
	}
	if err != nil {
		return nil, fmt.Errorf("error reading token file: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("error decoding token file: %w", err)
	}
	return &tok, nil
}

// Save writes the token with owner-only permissions.
func (s *FileTokenStore) Save(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("error encoding token: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := s.Fs.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("error creating token directory: %w", err)
		}
	}
	if err := afero.WriteFile(s.Fs, s.Path, data, 0o600); err != nil {
		return fmt.Errorf("error writing token file: %w", err)
	}
	return nil
}

// OAuthTokenSource returns a refreshing token source seeded from store.
// Refreshed tokens are written back to the store.
func OAuthTokenSource(
	ctx context.Context, cfg *Config, o OAuthConfig, store TokenStore,
) (oauth2.TokenSource, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	tok, err := store.Load()
	if err != nil {
		return nil, err
	}

	conf := o.OAuth2Config(cfg)
	return &storingTokenSource{
		src:   conf.TokenSource(tokenContext(ctx, cfg), tok),
		store: store,
		last:  tok.AccessToken,
	}, nil
}

type storingTokenSource struct {
	mu    sync.Mutex
	src   oauth2.TokenSource
	store TokenStore
	last  string
}

func (s *storingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := s.store.Save(tok); err != nil {
			return nil, err
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}

// AuthorizeOptions customise AuthorizeApp.
type AuthorizeOptions struct {
	Logger hclog.Logger

	// OpenURL opens the authorization page. Defaults to the system
	// browser.
	OpenURL func(string) error
}

// AuthorizeApp runs the OAuth 2.0 authorization code flow: it listens on
// the redirect URL, sends the user to the Box consent page, exchanges the
// returned code and saves the token in store.
func AuthorizeApp(
	ctx context.Context, cfg *Config, o OAuthConfig, store TokenStore, opts AuthorizeOptions,
) (*oauth2.Token, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = browser.OpenURL
	}

	redirect, err := url.Parse(o.RedirectURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect url: %w", err)
	}

	listener, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return nil, fmt.Errorf("error listening on %s: %w", redirect.Host, err)
	}

	conf := o.OAuth2Config(cfg)
	state := uuid.NewString()

	type result struct {
		code string
		err  error
	}
	results := make(chan result, 1)

	mux := http.NewServeMux()
	callbackPath := redirect.Path
	if callbackPath == "" {
		callbackPath = "/"
	}
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var res result
		switch {
		case q.Get("error") != "":
			res.err = fmt.Errorf("authorization denied: %s: %s",
				q.Get("error"), q.Get("error_description"))
		case q.Get("state") != state:
			res.err = errors.New("authorization state mismatch")
		case q.Get("code") == "":
			res.err = errors.New("authorization code missing from callback")
		default:
			res.code = q.Get("code")
		}

		if res.err != nil {
			http.Error(w, res.err.Error(), http.StatusBadRequest)
		} else {
			fmt.Fprintln(w, "Authorization complete. You can close this window.")
		}

		select {
		case results <- res:
		default:
		}
	})

	srv := &http.Server{Handler: mux}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("callback server failed", "error", err)
		}
	}()
	defer srv.Close()

	authURL := conf.AuthCodeURL(state)
	logger.Info("opening browser for authorization", "url", authURL)
	if err := openURL(authURL); err != nil {
		logger.Warn("failed to open browser, visit the url manually", "url", authURL, "error", err)
	}

	var res result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-results:
	}
	if res.err != nil {
		return nil, res.err
	}

	tok, err := conf.Exchange(tokenContext(ctx, cfg), res.code)
	if err != nil {
		return nil, fmt.Errorf("error exchanging authorization code: %w", err)
	}
	if err := store.Save(tok); err != nil {
		return nil, err
	}

	logger.Info("authorization complete")
	return tok, nil
}
