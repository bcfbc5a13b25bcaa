package box

import (
	"context"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Subject types accepted by the client credentials and JWT grants.
const (
	SubjectEnterprise = "enterprise"
	SubjectUser       = "user"
)

// DeveloperToken returns a token source for a short-lived developer token
// copied from the Box developer console.
func DeveloperToken(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}

// CCGConfig holds Client Credentials Grant credentials.
type CCGConfig struct {
	ClientID     string
	ClientSecret string

	// SubjectType is "enterprise" (service account) or "user".
	SubjectType string
	SubjectID   string
}

// Validate checks that every credential is present.
func (c CCGConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ClientID, validation.Required),
		validation.Field(&c.ClientSecret, validation.Required),
		validation.Field(&c.SubjectType,
			validation.Required,
			validation.In(SubjectEnterprise, SubjectUser)),
		validation.Field(&c.SubjectID, validation.Required),
	)
}

// TokenSource returns a caching token source for the grant. Tokens are
// fetched from cfg.TokenURL with the transport settings in cfg.
func (c CCGConfig) TokenSource(ctx context.Context, cfg *Config) (oauth2.TokenSource, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.SetDefaults()

	cc := &clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     cfg.TokenURL,
		EndpointParams: url.Values{
			"box_subject_type": {c.SubjectType},
			"box_subject_id":   {c.SubjectID},
		},
		AuthStyle: oauth2.AuthStyleInParams,
	}

	return cc.TokenSource(tokenContext(ctx, cfg)), nil
}

// tokenContext makes token endpoint calls use the configured transport.
func tokenContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, cfg.NewHTTPClient())
}
