package config

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var (
	defaultOidcMountBase    string = "/oidc"
	defaultAuthCallbackPath string = "/authorization-code/callback"
	defaultSignOutPath      string = "/signout"
	defaultSessionPath      string = "/session"
	defaultInfoPath         string = "/info"

	defaultCookieName       = "goidcsession"
	defaultCookieAgeSeconds = 3600
	defaultRedisKeyPrefix   = "goidc:session"
)

func LoadConfig(path string) (*GoidcConfig, error) {

	log.WithField("source", path).Info("loading config")
	cfg, err := loadFromFile(path)
	if err != nil {
		return nil, err
	}

	setDefaults(cfg)

	log.WithField("source", "environment").Debug("loading config")
	env := loadFromEnv()
	overrideFromEnv(env, cfg)
	return cfg, nil
}

// set defaults
func setDefaults(cfg *GoidcConfig) {

	oidc := &cfg.Oidc

	if oidc.EndpiontMountBase == nil {
		log.WithField("oidc.endpointMountBase", defaultOidcMountBase).Debug("setting value")
		oidc.EndpiontMountBase = &defaultOidcMountBase
	}

	if oidc.CallbackPath == nil {
		log.WithField("oidc.callbackPath", defaultAuthCallbackPath).Debug("setting value")
		oidc.CallbackPath = &defaultAuthCallbackPath
	}

	if oidc.SignOutPath == nil {
		log.WithField("oidc.signOutPath", defaultSignOutPath).Debug("setting value")
		oidc.SignOutPath = &defaultSignOutPath
	}

	if oidc.SessionPath == nil {
		log.WithField("oidc.sessionPath", defaultSessionPath).Debug("setting value")
		oidc.SessionPath = &defaultSessionPath
	}

	if oidc.InfoPath == nil {
		log.WithField("oidc.infoPath", defaultInfoPath).Debug("setting value")
		oidc.InfoPath = &defaultInfoPath
	}

	sess := &cfg.Session
	if sess.Cookie.Name == "" {
		sess.Cookie.Name = defaultCookieName
	}
	if sess.Cookie.AgeSeconds == 0 {
		sess.Cookie.AgeSeconds = defaultCookieAgeSeconds
	}
	if sess.Store.Type == "" {
		sess.Store.Type = StoreTypeMemory
	}
	if sess.Store.Redis.KeyPrefix == "" {
		sess.Store.Redis.KeyPrefix = defaultRedisKeyPrefix
	}
}

// loadFromFile reads & parses the goidc-session config from the supplied path
func loadFromFile(path string) (*GoidcConfig, error) {

	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := GoidcConfig{}
	err = yaml.Unmarshal(bytes, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// overrideFromEnv override GoidcConfig from env
// env values if set will always override the values from yaml config
func overrideFromEnv(env EnvConfig, cfg *GoidcConfig) {

	if env.ClientId != "" {
		log.Debug("the value of client_id is being overridden from env")
		cfg.Oidc.ClientId = env.ClientId
	}

	if env.ClientSecret != "" {
		log.Debug("the value of client_secret is being overridden from env")
		cfg.Oidc.ClientSecret = env.ClientSecret
	}

	if env.RedisPassword != "" {
		log.Debug("the value of the redis password is being overridden from env")
		cfg.Session.Store.Redis.Password = env.RedisPassword
	}
}
