package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lokamart-be/internal/user"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// now is swapped out in tests that pin token expiries.
var now = time.Now

const googleUserinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleOAuth implements GoogleProvider on top of the x/oauth2 Google
// endpoint.
type googleOAuth struct {
	config *oauth2.Config
	client *http.Client
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string) GoogleProvider {
	return &googleOAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *googleOAuth) AuthURL(state string) string {
	return g.config.AuthCodeURL(state)
}

func (g *googleOAuth) Exchange(ctx context.Context, code string) (user.GoogleProfile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.client)

	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return user.GoogleProfile{}, fmt.Errorf("token exchange failed: %w", err)
	}

	return g.fetchProfile(ctx, token.AccessToken)
}

func (g *googleOAuth) fetchProfile(ctx context.Context, accessToken string) (user.GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserinfoEndpoint, nil)
	if err != nil {
		return user.GoogleProfile{}, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return user.GoogleProfile{}, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return user.GoogleProfile{}, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var info struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return user.GoogleProfile{}, fmt.Errorf("failed to decode userinfo response: %w", err)
	}

	profile := user.GoogleProfile{
		GoogleID: info.ID,
		Email:    info.Email,
		Name:     info.Name,
	}
	if info.Picture != "" {
		profile.AvatarURL = &info.Picture
	}
	return profile, nil
}
