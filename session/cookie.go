package session

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// CookieManager reads & writes the cookie that carries a session id between
// the browser & the application server. The cookie value is the session id
// itself; the record it addresses lives server-side in the store.
type CookieManager struct {
	Name   string
	MaxAge int
	Secure bool
}

func NewCookieManager(cookieName string, maxAge int, secure bool) CookieManager {
	return CookieManager{
		Name:   cookieName,
		MaxAge: maxAge,
		Secure: secure,
	}
}

// SetSessionID sets the session id cookie on the response.
func (c CookieManager) SetSessionID(w http.ResponseWriter, id string) {
	log.WithFields(log.Fields{
		"name": c.Name,
		"age":  c.MaxAge,
	}).Debug("setting session cookie")

	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Path:     "/",
		Value:    id,
		MaxAge:   c.MaxAge,
		HttpOnly: true,
		Secure:   c.Secure,
	})
}

// GetSessionID returns the session id carried by the request's cookie, else
// an error.
func (c CookieManager) GetSessionID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			log.WithField("name", c.Name).Debug("no session cookie found")
		}
		return "", err
	}
	return cookie.Value, nil
}

// ClearSessionID expires the session id cookie on the response.
func (c CookieManager) ClearSessionID(w http.ResponseWriter) {
	log.WithField("name", c.Name).Debug("clearing session cookie")
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Path:     "/",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
	})
}
