package oidc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/esiddiqui/goidc-session/config"
	"github.com/esiddiqui/goidc-session/session"
	"github.com/esiddiqui/goidc-session/types"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Engine is the protocol capability consumed by this layer: given an
// authorization code (or a refresh credential) it performs the OAuth2/OIDC
// exchange with the auth server & returns the resulting token bundle. Token
// contents are treated opaquely above this boundary.
type Engine interface {
	ExchangeCode(ctx context.Context, code, redirectUri string) (*session.TokenBundle, error)
	Refresh(ctx context.Context, refreshToken string) (*session.TokenBundle, error)
}

// tokenClient is the concrete Engine talking to the auth server's token
// endpoint with basic client authentication.
type tokenClient struct {
	clientId     string
	clientSecret string
	metadata     *config.AuthServerMetadata
	httpClient   *http.Client
}

// NewEngine returns an Engine for the auth server described by metadata,
// authenticating as the supplied client.
func NewEngine(clientId, clientSecret string, metadata *config.AuthServerMetadata) Engine {
	return &tokenClient{
		clientId:     clientId,
		clientSecret: clientSecret,
		metadata:     metadata,
		httpClient:   &http.Client{},
	}
}

// ExchangeCode exchanges the auth "code" for an access_token & id_token at
// the auth server's token endpoint.
func (c *tokenClient) ExchangeCode(ctx context.Context, code, redirectUri string) (*session.TokenBundle, error) {

	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", redirectUri)

	return c.tokenRequest(ctx, data)
}

// Refresh exchanges a refresh token for a fresh token set.
func (c *tokenClient) Refresh(ctx context.Context, refreshToken string) (*session.TokenBundle, error) {

	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)

	return c.tokenRequest(ctx, data)
}

// tokenRequest posts the supplied form to the token endpoint & maps the
// response payload to a session.TokenBundle, with Subject filled in from the
// id token's sub claim.
func (c *tokenClient) tokenRequest(ctx context.Context, data url.Values) (*session.TokenBundle, error) {

	endpoint := c.metadata.TokenEndpoint
	log.WithField("url", endpoint).Debug("token endpoint request")

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}

	basicAuthCredentials := base64.StdEncoding.EncodeToString(
		[]byte(c.clientId + ":" + c.clientSecret))

	h := req.Header
	h.Add("Authorization", fmt.Sprintf("Basic %v", basicAuthCredentials))
	h.Add("Accept", "application/json")
	h.Add("User-Agent", "goidc-session")
	h.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "token endpoint request failed")
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "error reading token endpoint response")
	}

	var payload types.AccessTokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.Wrap(err, "error parsing token endpoint response")
	}
	if payload.Failed() {
		return nil, errors.Errorf("token endpoint returned %v: %v", payload.Error, payload.ErrorDescription)
	}

	return bundleFromResponse(payload)
}

// bundleFromResponse maps the wire payload to the stored token bundle shape.
func bundleFromResponse(payload types.AccessTokenResponse) (*session.TokenBundle, error) {

	subject, err := SubjectFromIdToken(payload.IdToken)
	if err != nil {
		return nil, err
	}

	bundle := &session.TokenBundle{
		Subject:     subject,
		AccessToken: payload.AccessToken,
		TokenType:   payload.TokenType,
		IdToken:     payload.IdToken,
		ExpiresIn:   payload.ExpiresIn,
	}
	if payload.RefreshToken != nil {
		bundle.RefreshToken = *payload.RefreshToken
	}
	if payload.Scope != nil {
		bundle.Scope = *payload.Scope
	}
	return bundle, nil
}
