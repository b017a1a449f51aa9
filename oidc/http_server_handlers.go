package oidc

import (
	"encoding/json"
	"net/http"

	"github.com/esiddiqui/goidc-session/session"
	log "github.com/sirupsen/logrus"
)

// AuthCodeCallbackHandler handles the oidc authorization-code/callback
// endpoint; this is the endpoint called by the OIDC authorization server with
// the results of the auth flow.
func (p *HttpServer) AuthCodeCallbackHandler(w http.ResponseWriter, r *http.Request) {

	q := r.URL.Query()

	// if the auth server returned an error; surface it as-is
	if errName := q.Get(QueryStringParamError); errName != "" {
		log.WithField("error", errName).Error("error response from authorization server")
		w.Header().Set("content-type", "application/json")
		payload, _ := json.Marshal(q)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write(payload)
		return
	}

	// check state integrity; a callback whose state does not match the value
	// issued for this browser's flow is forged or stale & must not mint a
	// session
	state := q.Get(QueryStringParamState)
	if !p.verifyState(w, r, state) {
		http.Error(w, "state does not match the value issued for this auth flow", http.StatusBadRequest)
		return
	}

	authCode := q.Get(QueryStringParamCode)
	if authCode == "" {
		log.Error("the auth code was not returned, or is not accessible")
		http.Error(w, "authorization code was not returned by auth server", http.StatusBadRequest)
		return
	}

	log.WithFields(log.Fields{
		"state": state,
	}).Info("auth code received from auth server")

	// exchange auth_code for tokens & create the session record; the session
	// id is the sha of the subject claim, so a repeat sign-in for the same
	// principal lands on the same record
	id, err := p.client.SignIn(r.Context(), authCode, p.getRedirectUri(r))
	if err != nil {
		log.WithError(err).Error("error completing sign-in")
		http.Error(w, "error creating a new session", http.StatusInternalServerError)
		return
	}

	p.cookieManager.SetSessionID(w, id)
	log.WithField("id", id).Debug("session cookie set")

	http.Redirect(w, r, "/", http.StatusFound)
}

// SignOutHandler destroys the session referenced by the request's session
// cookie & clears the cookie. A request with no cookie, or with a stale id,
// still signs out cleanly; only a malformed id is rejected.
func (p *HttpServer) SignOutHandler(w http.ResponseWriter, r *http.Request) {

	id, err := p.cookieManager.GetSessionID(r)
	if err != nil {
		// nothing to destroy; still clear the cookie
		p.cookieManager.ClearSessionID(w)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if _, err := p.client.SignOut(r.Context(), id); err != nil {
		if session.IsCode(err, session.CodeInvalidSessionID) || session.IsCode(err, session.CodeMissingIdentifier) {
			http.Error(w, "malformed session id", http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("error destroying session")
		http.Error(w, "error destroying session", http.StatusInternalServerError)
		return
	}

	p.cookieManager.ClearSessionID(w)
	w.WriteHeader(http.StatusNoContent)
}

// GetSessionHandler reports the session id & token bundle for the request's
// session cookie.
func (p *HttpServer) GetSessionHandler(w http.ResponseWriter, r *http.Request) {

	id, err := p.cookieManager.GetSessionID(r)
	if err != nil {
		http.Error(w, "no session cookie", http.StatusUnauthorized)
		return
	}

	bundle, err := p.client.GetUserSession(r.Context(), id)
	if err != nil {
		if session.IsCode(err, session.CodeSessionNotFound) {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("error reading session")
		http.Error(w, "error reading session", http.StatusInternalServerError)
		return
	}

	sessionInfo := make(map[string]any)
	sessionInfo["session_id"] = id
	sessionInfo["subject"] = bundle.Subject
	sessionInfo["token_type"] = bundle.TokenType
	sessionInfo["scope"] = bundle.Scope
	w.Header().Set("content-type", "application/json")
	payload, _ := json.Marshal(sessionInfo)
	_, _ = w.Write(payload)
}

// GetInfoHandler serves GET /<oidcEndpointMount>/info
func (p *HttpServer) GetInfoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("content-type", "application/json")
	infoMap := make(map[string]any)
	infoMap["version"] = "dev"
	infoMap["issuer"] = p.metadata.Issuer
	infoMap["metadata"] = p.metadata
	payload, _ := json.Marshal(infoMap)
	_, _ = w.Write(payload)
}
