package oidc

import (
	"fmt"
	"net/http"

	"github.com/esiddiqui/goidc-session/config"
	"github.com/esiddiqui/goidc-session/session"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	QueryStringParamCode  string = "code"
	QueryStringParamState string = "state"
	QueryStringParamError string = "error"
)

// HttpServer mounts the goidc-session endpoints: the authorization-code
// callback that completes sign-in, the sign-out endpoint, & a couple of
// introspection endpoints. It is the transport shell around the Client
// facade; an application server can instead consume the facade directly.
type HttpServer struct {
	cfg           *config.GoidcConfig
	metadata      *config.AuthServerMetadata
	client        *Client
	cookieManager session.CookieManager
}

// StartHttpServer sets up all required pieces for goidc-session & starts the
// http server; any critical failure is returned before the server binds.
func StartHttpServer(cfg *config.GoidcConfig, store session.Store) error {

	server, err := NewHttpServer(cfg, store)
	if err != nil {
		return err
	}
	return server.ListenAndServe()
}

// NewHttpServer wires the session manager, protocol engine & cookie manager
// per the supplied config.
func NewHttpServer(cfg *config.GoidcConfig, store session.Store) (*HttpServer, error) {

	var err error
	if cfg == nil {
		return nil, errors.Errorf("invalid or nil config supplied to initialize HttpServer")
	}

	// initialize session manager over the supplied store
	sessionMgr, err := session.NewManager(session.WithStore(store))
	if err != nil {
		return nil, err
	}

	// configure oidc
	// start with the inline metadata if defined, else fetch from the
	// well-known url
	metadata := cfg.Oidc.Metadata
	if metadata == nil {
		log.WithField("url", cfg.Oidc.MetadataUrl).Info("loading oauth2.0/oidc auth server metadata")
		metadata, err = config.NewFromMetadataUrl(cfg.Oidc.MetadataUrl)
		if err != nil {
			return nil, err
		}
	}

	engine := NewEngine(cfg.Oidc.ClientId, cfg.Oidc.ClientSecret, metadata)

	cookieCfg := cfg.Session.Cookie
	server := &HttpServer{
		cfg:           cfg,
		metadata:      metadata,
		client:        NewClient(engine, sessionMgr),
		cookieManager: session.NewCookieManager(cookieCfg.Name, cookieCfg.AgeSeconds, cookieCfg.Secure),
	}
	return server, nil
}

// Client returns the facade backing this server, for callers embedding the
// server in a larger application.
func (p *HttpServer) Client() *Client {
	return p.client
}

// ListenAndServe mounts all <oidc>/ path handlers & serves.
func (p *HttpServer) ListenAndServe() error {

	cfg := p.cfg
	mount := *cfg.Oidc.EndpiontMountBase

	mux := http.NewServeMux()
	mux.HandleFunc(fmt.Sprintf("%v%v", mount, *cfg.Oidc.CallbackPath), p.AuthCodeCallbackHandler)
	mux.HandleFunc(fmt.Sprintf("%v%v", mount, *cfg.Oidc.SignOutPath), p.SignOutHandler)
	mux.HandleFunc(fmt.Sprintf("%v%v", mount, *cfg.Oidc.SessionPath), p.GetSessionHandler)
	mux.HandleFunc(fmt.Sprintf("%v%v", mount, *cfg.Oidc.InfoPath), p.GetInfoHandler)

	log.Infof("starting goidc-session server on port %v", cfg.Server.Port)
	return http.ListenAndServe(fmt.Sprintf(":%v", cfg.Server.Port), mux)
}
