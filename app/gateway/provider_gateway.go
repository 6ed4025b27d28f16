package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"

	"session-service/app/domain"
)

// ProviderConfig is the OAuth configuration for one external identity
// provider.
type ProviderConfig struct {
	Name         string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	Scopes       []string
}

// ProviderGateway implements port.ProviderGateway interface
// It exchanges authorization codes with external identity providers and
// normalizes the returned profiles.
type ProviderGateway struct {
	providers map[string]*registeredProvider
	mapper    *ProfileMapper
	client    *http.Client
	logger    *slog.Logger
}

type registeredProvider struct {
	oauth       *oauth2.Config
	userInfoURL string
}

// NewProviderGateway creates a new ProviderGateway instance
func NewProviderGateway(configs []ProviderConfig, logger *slog.Logger) (*ProviderGateway, error) {
	g := &ProviderGateway{
		providers: make(map[string]*registeredProvider),
		mapper:    NewProfileMapper(logger),
		client:    http.DefaultClient,
		logger:    logger.With("component", "provider_gateway"),
	}

	for _, cfg := range configs {
		if cfg.Name == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
			return nil, fmt.Errorf("provider config missing required fields: %q", cfg.Name)
		}
		if cfg.AuthURL == "" || cfg.TokenURL == "" || cfg.UserInfoURL == "" {
			return nil, fmt.Errorf("provider %q missing endpoint URLs", cfg.Name)
		}

		g.providers[cfg.Name] = &registeredProvider{
			oauth: &oauth2.Config{
				ClientID:     cfg.ClientID,
				ClientSecret: cfg.ClientSecret,
				RedirectURL:  cfg.RedirectURL,
				Scopes:       cfg.Scopes,
				Endpoint: oauth2.Endpoint{
					AuthURL:  cfg.AuthURL,
					TokenURL: cfg.TokenURL,
				},
			},
			userInfoURL: cfg.UserInfoURL,
		}
	}

	return g, nil
}

// WithHTTPClient overrides the HTTP client used for userinfo requests.
func (g *ProviderGateway) WithHTTPClient(client *http.Client) *ProviderGateway {
	g.client = client
	return g
}

// AuthCodeURL returns the provider's authorization URL for a state value.
func (g *ProviderGateway) AuthCodeURL(provider, state string) (string, error) {
	p, ok := g.providers[provider]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrProviderUnknown, provider)
	}
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// Exchange trades an authorization code for the provider's tokens, then
// fetches and normalizes the user profile. Any failure along the way
// maps to domain.ErrExchangeFailed; callers must treat that as a failed
// login, never a partial one.
func (g *ProviderGateway) Exchange(ctx context.Context, provider, code string) (*domain.ProviderProfile, error) {
	p, ok := g.providers[provider]
	if !ok {
		g.logger.Error("unknown provider requested", "provider", provider)
		return nil, fmt.Errorf("%w: %q", domain.ErrProviderUnknown, provider)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.client)
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		g.logger.Error("code exchange failed", "provider", provider, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrExchangeFailed, err)
	}

	claims, err := g.fetchUserInfo(ctx, p, token)
	if err != nil {
		g.logger.Error("userinfo fetch failed", "provider", provider, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrExchangeFailed, err)
	}

	profile, err := g.mapper.MapProfile(provider, claims)
	if err != nil {
		g.logger.Error("profile mapping failed", "provider", provider, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrExchangeFailed, err)
	}

	g.logger.Info("provider exchange completed",
		"provider", provider,
		"provider_user_id", profile.ProviderUserID)

	return profile, nil
}

func (g *ProviderGateway) fetchUserInfo(ctx context.Context, p *registeredProvider, token *oauth2.Token) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("userinfo returned %d: %s", resp.StatusCode, body)
	}

	var claims map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	return claims, nil
}
