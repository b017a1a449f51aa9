package oidc_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/esiddiqui/goidc-session/config"
	"github.com/esiddiqui/goidc-session/oidc"
	"github.com/esiddiqui/goidc-session/session"
	"github.com/esiddiqui/goidc-session/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(metadata *config.AuthServerMetadata) *config.GoidcConfig {
	mount := "/oidc"
	callback := "/authorization-code/callback"
	signout := "/signout"
	sessionPath := "/session"
	info := "/info"
	return &config.GoidcConfig{
		Server: config.ServerConfig{Port: 0},
		Session: config.SessionConfig{
			Cookie: config.CookieConfig{Name: "goidcsession", AgeSeconds: 3600},
			Store:  config.StoreConfig{Type: config.StoreTypeMemory},
		},
		Oidc: config.OidcConfig{
			ClientId:          "test-client",
			ClientSecret:      "test-secret",
			Metadata:          metadata,
			EndpiontMountBase: &mount,
			CallbackPath:      &callback,
			SignOutPath:       &signout,
			SessionPath:       &sessionPath,
			InfoPath:          &info,
			Scopes:            []string{"openid", "profile"},
		},
	}
}

// newTestServer stands up a canned auth server token endpoint & an HttpServer
// configured against it, backed by an in-memory store.
func newTestServer(t *testing.T, subject string) (*oidc.HttpServer, *httptest.Server) {
	t.Helper()

	idToken := signedIdToken(t, subject)
	refresh := "RT1"
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		w.Header().Set("content-type", "application/json")
		_ = json.NewEncoder(w).Encode(types.AccessTokenResponse{
			AccessToken:  "AT1",
			TokenType:    "Bearer",
			IdToken:      idToken,
			RefreshToken: &refresh,
		})
	}))
	t.Cleanup(authServer.Close)

	metadata := &config.AuthServerMetadata{
		Issuer:                "https://auth.example.com",
		AuthorizationEndpoint: "https://auth.example.com/v1/authorize",
		TokenEndpoint:         authServer.URL + "/v1/token",
	}

	server, err := oidc.NewHttpServer(testConfig(metadata), session.NewInMemoryStore())
	require.NoError(t, err)
	return server, authServer
}

// cookieByName picks a cookie off a response, failing the test when absent.
func cookieByName(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no cookie named %v in response", name)
	return nil
}

// issuedStateCookie is the cookie redirectToAuthServer would have set for an
// in-flight auth flow with the supplied state value.
func issuedStateCookie(state string) *http.Cookie {
	return &http.Cookie{Name: "goidcstate", Value: state}
}

// completeSignIn drives the auth-code callback with a matching issued state &
// returns the resulting session cookie.
func completeSignIn(t *testing.T, server *oidc.HttpServer) *http.Cookie {
	t.Helper()
	r := httptest.NewRequest("GET", "/oidc/authorization-code/callback?code=some-code&state=xyz", nil)
	r.AddCookie(issuedStateCookie("xyz"))
	w := httptest.NewRecorder()
	server.AuthCodeCallbackHandler(w, r)
	resp := w.Result()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	return cookieByName(t, resp, "goidcsession")
}

func TestAuthCodeCallbackCreatesSession(t *testing.T) {
	server, _ := newTestServer(t, "user-42")

	r := httptest.NewRequest("GET", "/oidc/authorization-code/callback?code=some-code&state=xyz", nil)
	r.AddCookie(issuedStateCookie("xyz"))
	w := httptest.NewRecorder()
	server.AuthCodeCallbackHandler(w, r)

	resp := w.Result()
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	cookie := cookieByName(t, resp, "goidcsession")
	expected, err := server.Client().GetUUID("user-42")
	require.NoError(t, err)
	assert.Equal(t, expected, cookie.Value)

	// the issued state is single use & gets expired with the response
	assert.Equal(t, -1, cookieByName(t, resp, "goidcstate").MaxAge)

	bundle, err := server.Client().GetUserSession(r.Context(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-42", bundle.Subject)
	assert.Equal(t, "AT1", bundle.AccessToken)
	assert.Equal(t, "RT1", bundle.RefreshToken)
}

func TestAuthCodeCallbackForgedState(t *testing.T) {
	server, _ := newTestServer(t, "user-42")

	// no state was ever issued for this browser; the callback must not mint
	// a session
	r := httptest.NewRequest("GET", "/oidc/authorization-code/callback?code=some-code&state=attacker-forged-state", nil)
	w := httptest.NewRecorder()
	server.AuthCodeCallbackHandler(w, r)

	resp := w.Result()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	for _, c := range resp.Cookies() {
		assert.NotEqual(t, "goidcsession", c.Name, "forged-state callback must not set a session cookie")
	}

	unknown, err := server.Client().GetUUID("user-42")
	require.NoError(t, err)
	assert.False(t, server.Client().IsAuthenticated(r.Context(), unknown))
}

func TestAuthCodeCallbackStateMismatch(t *testing.T) {
	server, _ := newTestServer(t, "user-42")

	r := httptest.NewRequest("GET", "/oidc/authorization-code/callback?code=some-code&state=not-the-issued-value", nil)
	r.AddCookie(issuedStateCookie("the-issued-value"))
	w := httptest.NewRecorder()
	server.AuthCodeCallbackHandler(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestAuthCodeCallbackMissingCode(t *testing.T) {
	server, _ := newTestServer(t, "user-42")

	r := httptest.NewRequest("GET", "/oidc/authorization-code/callback?state=xyz", nil)
	r.AddCookie(issuedStateCookie("xyz"))
	w := httptest.NewRecorder()
	server.AuthCodeCallbackHandler(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestAuthCodeCallbackAuthServerError(t *testing.T) {
	server, _ := newTestServer(t, "user-42")

	r := httptest.NewRequest("GET", "/oidc/authorization-code/callback?error=access_denied", nil)
	w := httptest.NewRecorder()
	server.AuthCodeCallbackHandler(w, r)
	assert.Equal(t, http.StatusBadGateway, w.Result().StatusCode)
}

func TestSignOutHandler(t *testing.T) {
	server, _ := newTestServer(t, "user-42")
	cookie := completeSignIn(t, server)

	r := httptest.NewRequest("POST", "/oidc/signout", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	server.SignOutHandler(w, r)

	resp := w.Result()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, -1, cookieByName(t, resp, "goidcsession").MaxAge)

	assert.False(t, server.Client().IsAuthenticated(r.Context(), cookie.Value))
}

func TestSignOutHandlerWithoutCookie(t *testing.T) {
	server, _ := newTestServer(t, "user-42")

	r := httptest.NewRequest("POST", "/oidc/signout", nil)
	w := httptest.NewRecorder()
	server.SignOutHandler(w, r)
	assert.Equal(t, http.StatusNoContent, w.Result().StatusCode)
}

func TestGetSessionHandler(t *testing.T) {
	server, _ := newTestServer(t, "user-42")
	cookie := completeSignIn(t, server)

	r := httptest.NewRequest("GET", "/oidc/session", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	server.GetSessionHandler(w, r)

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, cookie.Value, payload["session_id"])
	assert.Equal(t, "user-42", payload["subject"])
}

func TestGetSessionHandlerUnauthenticated(t *testing.T) {
	server, _ := newTestServer(t, "user-42")

	r := httptest.NewRequest("GET", "/oidc/session", nil)
	w := httptest.NewRecorder()
	server.GetSessionHandler(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestRequireSessionRedirectsAnonymous(t *testing.T) {
	server, _ := newTestServer(t, "user-42")

	handler := server.RequireSession(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	})

	r := httptest.NewRequest("GET", "/app?evil=1", nil)
	w := httptest.NewRecorder()
	handler(w, r)

	resp := w.Result()
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	location := resp.Header.Get("Location")
	assert.True(t, strings.HasPrefix(location, "https://auth.example.com/v1/authorize?"))
	assert.Contains(t, location, "client_id=test-client")
	assert.Contains(t, location, "response_type=code")
	assert.Contains(t, location, "state=")
	// inbound request parameters must not leak into the authorize url
	assert.NotContains(t, location, "evil")

	// the issued state rides back on a cookie for the callback to check
	state := cookieByName(t, resp, "goidcstate")
	assert.NotEmpty(t, state.Value)
	assert.True(t, state.HttpOnly)
	assert.Contains(t, location, "state="+state.Value)
}

func TestRequireSessionPassesBundle(t *testing.T) {
	server, _ := newTestServer(t, "user-42")
	cookie := completeSignIn(t, server)

	var gotSubject string
	handler := server.RequireSession(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = r.Header.Get("x-goidc-subject")
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest("GET", "/app", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, "user-42", gotSubject)
}
