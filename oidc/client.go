package oidc

import (
	"context"

	"github.com/esiddiqui/goidc-session/session"
	log "github.com/sirupsen/logrus"
)

// Client is the facade consumed by an application server. It pairs the
// protocol Engine with the session Manager; every method is a thin
// pass-through, protocol work happens in the engine & session work in the
// manager.
type Client struct {
	engine   Engine
	sessions *session.Manager
}

func NewClient(engine Engine, sessions *session.Manager) *Client {
	return &Client{
		engine:   engine,
		sessions: sessions,
	}
}

// SignIn completes a sign-in: the authorization code is exchanged for a token
// bundle & a session record is created for the bundle's subject. The returned
// session id is the principal's handle; the caller must deliver it to the end
// user, e.g. via a cookie.
func (c *Client) SignIn(ctx context.Context, code, redirectUri string) (string, error) {
	bundle, err := c.engine.ExchangeCode(ctx, code, redirectUri)
	if err != nil {
		return "", err
	}
	return c.sessions.CreateUserSession(ctx, bundle.Subject, *bundle)
}

// CreateUserSession stores bundle under the id derived for subject &
// returns that id. Use this instead of SignIn when the caller has already
// completed the protocol exchange itself.
func (c *Client) CreateUserSession(ctx context.Context, subject string, bundle session.TokenBundle) (string, error) {
	return c.sessions.CreateUserSession(ctx, subject, bundle)
}

// GetUserSession resolves a session id to its stored token bundle.
func (c *Client) GetUserSession(ctx context.Context, id string) (*session.TokenBundle, error) {
	return c.sessions.GetUserSession(ctx, id)
}

// GetUUID returns the session id that subject derives to; pure derivation,
// no store access.
func (c *Client) GetUUID(subject string) (string, error) {
	return c.sessions.UUID(subject)
}

// SignOut destroys the session record for id. Safe to call with a stale or
// already-removed id; fails for empty or malformed ids.
func (c *Client) SignOut(ctx context.Context, id string) (bool, error) {
	return c.sessions.DestroyUserSession(ctx, id)
}

// DestroyUserSession is SignOut under the session-lifecycle name.
func (c *Client) DestroyUserSession(ctx context.Context, id string) (bool, error) {
	return c.sessions.DestroyUserSession(ctx, id)
}

// IsAuthenticated reports whether id resolves to a stored session. Store
// failures read as not-authenticated; callers that need to distinguish should
// use GetUserSession directly.
func (c *Client) IsAuthenticated(ctx context.Context, id string) bool {
	_, err := c.sessions.GetUserSession(ctx, id)
	if err != nil && !session.IsCode(err, session.CodeSessionNotFound) {
		log.WithField("id", id).WithError(err).Warn("session lookup failed")
	}
	return err == nil
}

// GetIdToken returns the id token stored in the session for id.
func (c *Client) GetIdToken(ctx context.Context, id string) (string, error) {
	bundle, err := c.sessions.GetUserSession(ctx, id)
	if err != nil {
		return "", err
	}
	return bundle.IdToken, nil
}
