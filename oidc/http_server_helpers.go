package oidc

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	// stateCookieName carries the issued state value across the auth flow so
	// the callback can confirm the response belongs to a flow this server
	// started.
	stateCookieName = "goidcstate"
	// stateCookieMaxAge bounds how long an issued state stays redeemable.
	stateCookieMaxAge = 300
)

// RequireSession wraps next so it only runs when the request carries a
// resolvable session; otherwise the caller is redirected into the auth flow.
// The session's token bundle is exposed to next via request headers, the way
// an authenticating reverse proxy would.
func (p *HttpServer) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := p.cookieManager.GetSessionID(r)
		if err != nil {
			p.redirectToAuthServer(w, r)
			return
		}

		bundle, err := p.client.GetUserSession(r.Context(), id)
		if err != nil {
			p.redirectToAuthServer(w, r)
			return
		}

		r.Header.Set("x-goidc-subject", bundle.Subject)
		r.Header.Set("x-goidc-id-token", bundle.IdToken)
		r.Header.Set("x-goidc-scope", bundle.Scope)
		next(w, r)
	}
}

// redirectToAuthServer sets up an http redirect response for the caller
// with the correct query string parameters (response_type, client_id, scope,
// redirect_uri etc) to the auth server's /authorize endpoint.
func (p *HttpServer) redirectToAuthServer(w http.ResponseWriter, r *http.Request) {

	state := uuid.NewString()
	log.WithField("state", state).Debug("starting auth flow")

	redirectUri := p.getRedirectUri(r)
	log.WithField("redirect_uri", redirectUri).Debug("auth flow redirect uri")

	// remember the issued state so the callback can check it; the callback
	// rejects a response carrying a state this server never issued
	p.setStateCookie(w, state)

	w.Header().Add("Cache-Control", "no-cache")
	q := url.Values{}
	q.Add("client_id", p.cfg.Oidc.ClientId)
	q.Add("response_type", "code")
	q.Add("response_mode", "query")
	scopesString := "openid"
	if len(p.cfg.Oidc.Scopes) > 0 {
		scopesString = strings.Join(p.cfg.Oidc.Scopes, " ")
	}
	q.Add("scope", scopesString)
	q.Add("redirect_uri", redirectUri)
	q.Add("state", state)

	authRedirectEndpoint := fmt.Sprintf("%v?%v", p.metadata.AuthorizationEndpoint, q.Encode())
	http.Redirect(w, r, authRedirectEndpoint, http.StatusTemporaryRedirect)
}

// setStateCookie stores the issued state value in a short-lived cookie.
func (p *HttpServer) setStateCookie(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Path:     "/",
		Value:    state,
		MaxAge:   stateCookieMaxAge,
		HttpOnly: true,
		Secure:   p.cookieManager.Secure,
	})
}

// verifyState checks the callback's state parameter against the value issued
// for this browser's auth flow. The state cookie is single use; it is expired
// whenever a value was present to compare.
func (p *HttpServer) verifyState(w http.ResponseWriter, r *http.Request, state string) bool {
	cookie, err := r.Cookie(stateCookieName)
	if err != nil {
		log.WithField("state", state).Error("no state was issued for this auth callback")
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Path:     "/",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   p.cookieManager.Secure,
	})

	if state == "" || state != cookie.Value {
		log.WithFields(log.Fields{
			"state":  state,
			"issued": cookie.Value,
		}).Error("state & issued state values do not match")
		return false
	}
	return true
}

// getRedirectUri builds & returns the OIDC redirectUri to use
func (p *HttpServer) getRedirectUri(r *http.Request) string {

	cfg := p.cfg
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	baseUri := fmt.Sprintf("%v://%v", scheme, r.Host)
	return fmt.Sprintf("%v%v%v", baseUri, *cfg.Oidc.EndpiontMountBase, *cfg.Oidc.CallbackPath)
}
