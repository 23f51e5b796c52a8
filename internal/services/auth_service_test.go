// internal/services/auth_service_test.go
package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecocupon/ecocanasta-api/internal/config"
)

func newTokenInfoServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newOAuthTestService(serverURL, clientID string) *AuthService {
	return &AuthService{
		config:       &config.Config{OAuth: config.OAuthConfig{GoogleClientID: clientID}},
		httpClient:   http.DefaultClient,
		tokenInfoURL: serverURL,
	}
}

func TestVerifyGoogleTokenAcceptsMatchingAudience(t *testing.T) {
	server := newTokenInfoServer(t, `{
		"aud": "ecocanasta-client-id",
		"sub": "1234567890",
		"email": "cliente@example.com",
		"email_verified": "true",
		"name": "Cliente"
	}`, http.StatusOK)

	svc := newOAuthTestService(server.URL, "ecocanasta-client-id")

	info, err := svc.verifyGoogleToken("some-id-token")
	require.NoError(t, err)
	assert.Equal(t, "1234567890", info.Sub)
	assert.Equal(t, "cliente@example.com", info.Email)
}

func TestVerifyGoogleTokenRejectsForeignAudience(t *testing.T) {
	server := newTokenInfoServer(t, `{
		"aud": "some-other-app",
		"sub": "1234567890",
		"email": "cliente@example.com",
		"email_verified": "true"
	}`, http.StatusOK)

	svc := newOAuthTestService(server.URL, "ecocanasta-client-id")

	_, err := svc.verifyGoogleToken("some-id-token")
	assert.ErrorContains(t, err, "audience")
}

func TestVerifyGoogleTokenRejectsUnverifiedEmail(t *testing.T) {
	server := newTokenInfoServer(t, `{
		"aud": "ecocanasta-client-id",
		"sub": "1234567890",
		"email": "cliente@example.com",
		"email_verified": "false"
	}`, http.StatusOK)

	svc := newOAuthTestService(server.URL, "ecocanasta-client-id")

	_, err := svc.verifyGoogleToken("some-id-token")
	assert.Error(t, err)
}

func TestVerifyGoogleTokenRequiresConfiguredClientID(t *testing.T) {
	server := newTokenInfoServer(t, `{}`, http.StatusOK)

	svc := newOAuthTestService(server.URL, "")

	_, err := svc.verifyGoogleToken("some-id-token")
	assert.ErrorContains(t, err, "not configured")
}

func TestVerifyGoogleTokenRejectsProviderError(t *testing.T) {
	server := newTokenInfoServer(t, `{"error": "invalid_token"}`, http.StatusBadRequest)

	svc := newOAuthTestService(server.URL, "ecocanasta-client-id")

	_, err := svc.verifyGoogleToken("bad-token")
	assert.Error(t, err)
}
