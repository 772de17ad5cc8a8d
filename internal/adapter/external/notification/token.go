package notification

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/songcast/internal/ports"
)

// ScopeConversation authorizes posting into active assistant
// conversations.
const ScopeConversation = "https://www.googleapis.com/auth/actions.fulfillment.conversation"

const (
	tokenCacheKey  = "notification:access_token"
	grantTypeJWT   = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionValid = time.Hour

	// Tokens are dropped from the cache a bit before the server-side
	// expiry so a cached token is never presented stale.
	expirySlack = time.Minute
)

// ServiceAccountKey is the credential file issued for the push sender.
type ServiceAccountKey struct {
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// ParseServiceAccountKey decodes a credential JSON blob.
func ParseServiceAccountKey(data []byte) (*ServiceAccountKey, error) {
	var key ServiceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("failed to parse service account key: %w", err)
	}
	if key.ClientEmail == "" || key.PrivateKey == "" || key.TokenURI == "" {
		return nil, fmt.Errorf("service account key missing client_email, private_key or token_uri")
	}
	return &key, nil
}

// TokenSource exchanges a signed service-account assertion for a bearer
// access token and caches it until shortly before expiry.
type TokenSource struct {
	key        *ServiceAccountKey
	signingKey *rsa.PrivateKey
	scope      string
	cache      ports.Cache
	httpClient *http.Client
	log        *zap.Logger
}

type assertionClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// NewTokenSource parses the PEM private key up front so signing failures
// surface at startup, not on the first push.
func NewTokenSource(key *ServiceAccountKey, cache ports.Cache, log *zap.Logger) (*TokenSource, error) {
	signingKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(key.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account private key: %w", err)
	}

	log.Info("Notification token source initialized",
		zap.String("client_email", key.ClientEmail),
	)

	return &TokenSource{
		key:        key,
		signingKey: signingKey,
		scope:      ScopeConversation,
		cache:      cache,
		httpClient: &http.Client{},
		log:        log,
	}, nil
}

// Token returns a valid access token, exchanging a fresh assertion only
// on cache miss.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	if tok, err := ts.cache.Get(ctx, tokenCacheKey); err == nil && tok != "" {
		return tok, nil
	}

	assertion, err := ts.signAssertion()
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", grantTypeJWT)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.key.TokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("token: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token: exchange request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token: exchange failed with status %d", resp.StatusCode)
	}

	var decoded tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("token: decode response: %w", err)
	}
	if decoded.AccessToken == "" {
		return "", fmt.Errorf("token: exchange returned empty access token")
	}

	ttl := time.Duration(decoded.ExpiresIn)*time.Second - expirySlack
	if ttl > 0 {
		if err := ts.cache.Set(ctx, tokenCacheKey, decoded.AccessToken, ttl); err != nil {
			ts.log.Warn("Failed to cache access token", zap.Error(err))
		}
	}

	ts.log.Debug("Access token exchanged", zap.Int("expires_in", decoded.ExpiresIn))
	return decoded.AccessToken, nil
}

func (ts *TokenSource) signAssertion() (string, error) {
	now := time.Now()
	claims := assertionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.key.ClientEmail,
			Audience:  jwt.ClaimStrings{ts.key.TokenURI},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(assertionValid)),
			ID:        uuid.New().String(),
		},
		Scope: ts.scope,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", fmt.Errorf("token: sign assertion: %w", err)
	}
	return signed, nil
}
