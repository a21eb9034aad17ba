package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

// ProviderClient calls the identity provider's admin API. It is used to look
// up a subject's email when the resolved token carries no email claim.
// Requests are authenticated with the client-credentials grant.
type ProviderClient struct {
	baseURL string
	client  *http.Client
}

// NewProviderClient creates a client for the identity provider admin API.
// Returns nil when the provider is not configured; callers treat a nil client
// as "no lookup available".
func NewProviderClient(baseURL, tokenURL, clientID, clientSecret string) *ProviderClient {
	if baseURL == "" || tokenURL == "" || clientID == "" {
		return nil
	}

	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	client := cfg.Client(context.Background())
	client.Timeout = 10 * time.Second

	return &ProviderClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

type providerUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SubjectEmail fetches the email address registered at the identity provider
// for the given subject. Returns an empty string when the provider has none.
func (c *ProviderClient) SubjectEmail(ctx context.Context, subjectID string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1/users/%s", c.baseURL, url.PathEscape(subjectID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build provider request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var user providerUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("failed to decode provider response: %w", err)
	}

	return user.Email, nil
}
