package box

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/youmark/pkcs8"
	"golang.org/x/oauth2"
)

const jwtBearerGrant = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// JWTConfig holds server authentication (JWT) credentials.
type JWTConfig struct {
	ClientID     string
	ClientSecret string
	PublicKeyID  string

	// PrivateKey is a PEM encoded RSA key, optionally encrypted with
	// Passphrase.
	PrivateKey string
	Passphrase string

	// EnterpriseID authenticates as the service account. UserID, when
	// set, authenticates as that managed user instead.
	EnterpriseID string
	UserID       string
}

// Validate checks that every credential is present.
func (j JWTConfig) Validate() error {
	return validation.ValidateStruct(&j,
		validation.Field(&j.ClientID, validation.Required),
		validation.Field(&j.ClientSecret, validation.Required),
		validation.Field(&j.PublicKeyID, validation.Required),
		validation.Field(&j.PrivateKey, validation.Required),
		validation.Field(&j.EnterpriseID,
			validation.When(j.UserID == "", validation.Required.Error("enterprise id or user id is required"))),
	)
}

// jwtConfigFile is the JSON document downloaded from the Box developer
// console.
type jwtConfigFile struct {
	BoxAppSettings struct {
		ClientID     string `json:"clientID"`
		ClientSecret string `json:"clientSecret"`
		AppAuth      struct {
			PublicKeyID string `json:"publicKeyID"`
			PrivateKey  string `json:"privateKey"`
			Passphrase  string `json:"passphrase"`
		} `json:"appAuth"`
	} `json:"boxAppSettings"`
	EnterpriseID string `json:"enterpriseID"`
}

// LoadJWTConfigFile reads a developer console config file.
func LoadJWTConfigFile(fs afero.Fs, path string) (JWTConfig, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return JWTConfig{}, fmt.Errorf("error reading jwt config: %w", err)
	}

	var f jwtConfigFile
	if err := json.Unmarshal(data, &f); err != nil {
		return JWTConfig{}, fmt.Errorf("error decoding jwt config: %w", err)
	}

	return JWTConfig{
		ClientID:     f.BoxAppSettings.ClientID,
		ClientSecret: f.BoxAppSettings.ClientSecret,
		PublicKeyID:  f.BoxAppSettings.AppAuth.PublicKeyID,
		PrivateKey:   f.BoxAppSettings.AppAuth.PrivateKey,
		Passphrase:   f.BoxAppSettings.AppAuth.Passphrase,
		EnterpriseID: f.EnterpriseID,
	}, nil
}

// TokenSource returns a caching token source that signs a fresh
// assertion whenever the access token expires.
func (j JWTConfig) TokenSource(ctx context.Context, cfg *Config) (oauth2.TokenSource, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}
	key, err := parseRSAPrivateKey(j.PrivateKey, j.Passphrase)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.SetDefaults()

	src := &jwtTokenSource{
		ctx:    ctx,
		conf:   j,
		key:    key,
		url:    cfg.TokenURL,
		client: cfg.NewHTTPClient(),
		now:    time.Now,
	}
	return oauth2.ReuseTokenSource(nil, src), nil
}

type jwtTokenSource struct {
	ctx    context.Context
	conf   JWTConfig
	key    *rsa.PrivateKey
	url    string
	client *http.Client
	now    func() time.Time
}

func (s *jwtTokenSource) assertion() (string, error) {
	subType, subID := SubjectEnterprise, s.conf.EnterpriseID
	if s.conf.UserID != "" {
		subType, subID = SubjectUser, s.conf.UserID
	}

	now := s.now()
	claims := jwt.MapClaims{
		"iss":          s.conf.ClientID,
		"sub":          subID,
		"box_sub_type": subType,
		"aud":          s.url,
		"jti":          uuid.NewString(),
		"exp":          now.Add(45 * time.Second).Unix(),
		"iat":          now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = s.conf.PublicKeyID

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("error signing jwt assertion: %w", err)
	}
	return signed, nil
}

func (s *jwtTokenSource) Token() (*oauth2.Token, error) {
	assertion, err := s.assertion()
	if err != nil {
		return nil, err
	}

	form := url.Values{
		"grant_type":    {jwtBearerGrant},
		"assertion":     {assertion},
		"client_id":     {s.conf.ClientID},
		"client_secret": {s.conf.ClientSecret},
	}
	req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, s.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		AccessToken      string `json:"access_token"`
		TokenType        string `json:"token_type"`
		ExpiresIn        int64  `json:"expires_in"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || body.AccessToken == "" {
		return nil, &oauth2.RetrieveError{
			Response:         resp,
			ErrorCode:        body.Error,
			ErrorDescription: body.ErrorDescription,
		}
	}

	return &oauth2.Token{
		AccessToken: body.AccessToken,
		TokenType:   body.TokenType,
		Expiry:      s.now().Add(time.Duration(body.ExpiresIn) * time.Second),
	}, nil
}

func parseRSAPrivateKey(pemData, passphrase string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return nil, errors.New("private key is not PEM encoded")
	}

	var (
		key any
		err error
	)
	switch {
	case block.Type == "RSA PRIVATE KEY":
		key, err = jwt.ParseRSAPrivateKeyFromPEM([]byte(pemData))
	case passphrase != "":
		key, err = pkcs8.ParsePKCS8PrivateKey(block.Bytes, []byte(passphrase))
	default:
		key, err = pkcs8.ParsePKCS8PrivateKey(block.Bytes)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing private key: %w", err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is %T, want RSA", key)
	}
	return rsaKey, nil
}
