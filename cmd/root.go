package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/esiddiqui/goidc-session/config"
	"github.com/esiddiqui/goidc-session/oidc"
	"github.com/esiddiqui/goidc-session/session"
	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type RootOpts struct {
	ConfigPath string
	LoggerMode string
}

func Exec() {
	ctx := context.Background() // for now
	cmd := getRootCommand()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		log.Error(err)
		os.Exit(-1)
	}
}

func getRootCommand() *cobra.Command {

	opts := &RootOpts{}
	version := "0.01"
	rootCmd := &cobra.Command{
		Use:           "goidc-session",
		Version:       version,
		Short:         "goidc-session manages durable per-user sessions for an oidc authentication client",
		SilenceErrors: true, // cobra prints errors returned from RunE by default. Disable that since we handle errors ourselves.
		SilenceUsage:  true, // cobra prints command usage by default if RunE returns an error.
		RunE:          getRun(opts),
	}

	persistentFlags := rootCmd.PersistentFlags()
	persistentFlags.StringVar(&opts.ConfigPath, "config", "goidc.yml", "The fully-qualified filename for goidc-session configuration")
	persistentFlags.StringVar(&opts.LoggerMode, "log-level", "info", "Set the logger break-level (fatal | error| warn| info| debug|trace)")

	return rootCmd
}

// getRun returns the run function that actually does the work
func getRun(opts *RootOpts) func(*cobra.Command, []string) error {
	return func(c *cobra.Command, s []string) error {
		// intialize logger
		configureLogger(opts.LoggerMode)

		// load config
		log.Debug("loading goidc-session configuration")
		cfg, err := config.LoadConfig(opts.ConfigPath)
		if err != nil {
			return err
		}

		// build the session store per config
		store, err := newStore(cfg)
		if err != nil {
			return err
		}

		// start goidc-session server
		return oidc.StartHttpServer(cfg, store)
	}
}

// newStore builds the configured session store backend
func newStore(cfg *config.GoidcConfig) (session.Store, error) {

	storeCfg := cfg.Session.Store
	switch storeCfg.Type {
	case config.StoreTypeMemory:
		log.Info("using in-memory session store")
		return session.NewInMemoryStore(), nil
	case config.StoreTypeRedis:
		redisCfg := storeCfg.Redis
		addr := fmt.Sprintf("%v:%v", redisCfg.Host, redisCfg.Port)
		log.WithField("addr", addr).Info("using redis session store")
		client := goredis.NewClient(&goredis.Options{
			Addr:     addr,
			Password: redisCfg.Password,
			DB:       redisCfg.Db,
		})
		return session.NewRedisStore(client, redisCfg.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("session store type %v not supported", storeCfg.Type)
	}
}

// configures the logger to the supplied level
func configureLogger(level string) {

	var logLevel log.Level

	switch level {
	case "trace":
		logLevel = log.TraceLevel
	case "debug":
		logLevel = log.DebugLevel
	case "info":
		logLevel = log.InfoLevel
	case "warn":
		logLevel = log.WarnLevel
	case "error":
		logLevel = log.ErrorLevel
	case "fatal":
		logLevel = log.FatalLevel
	case "panic":
		logLevel = log.PanicLevel
	default:
		logLevel = log.InfoLevel
	}

	//set log level & formatter..
	log.SetLevel(logLevel)
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})
	log.Debugf("log level set to %v", level)
}
