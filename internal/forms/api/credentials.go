package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	forms "google.golang.org/api/forms/v1"
)

// Credentials points at a previously obtained OAuth token. The interactive
// consent flow that produces the file is outside this package.
type Credentials struct {
	TokenFile    string
	ClientID     string
	ClientSecret string
}

// tokenFile accepts both the oauth2.Token JSON layout and the layout written
// by the Python google-auth library ("token", "client_id", ...).
type tokenFile struct {
	AccessToken  string `json:"access_token"`
	Token        string `json:"token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	Expiry       string `json:"expiry"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// TokenSource reads the token file and returns a source that refreshes the
// access token when client credentials and a refresh token are available.
func TokenSource(ctx context.Context, creds Credentials) (oauth2.TokenSource, error) {
	path := strings.TrimSpace(creds.TokenFile)
	if path == "" {
		return nil, errors.New("forms api: token file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("forms api: read token file: %w", err)
	}
	var raw tokenFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("forms api: decode token file: %w", err)
	}

	tok := &oauth2.Token{
		AccessToken:  firstNonEmpty(raw.AccessToken, raw.Token),
		TokenType:    raw.TokenType,
		RefreshToken: raw.RefreshToken,
	}
	if raw.Expiry != "" {
		expiry, err := time.Parse(time.RFC3339Nano, raw.Expiry)
		if err != nil {
			return nil, fmt.Errorf("forms api: parse expiry: %w", err)
		}
		tok.Expiry = expiry
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, errors.New("forms api: token file has neither an access nor a refresh token")
	}

	clientID := firstNonEmpty(creds.ClientID, raw.ClientID)
	clientSecret := firstNonEmpty(creds.ClientSecret, raw.ClientSecret)
	if tok.RefreshToken == "" || clientID == "" || clientSecret == "" {
		return oauth2.StaticTokenSource(tok), nil
	}

	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{forms.FormsBodyReadonlyScope},
	}
	return cfg.TokenSource(ctx, tok), nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
