package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"gitlab.com/gitlab-org/go-mimedb"

	"gitlab.com/gitlab-org/pages-gateway/internal/config"
	"gitlab.com/gitlab-org/pages-gateway/internal/errortracking"
	"gitlab.com/gitlab-org/pages-gateway/internal/logging"
	"gitlab.com/gitlab-org/pages-gateway/metrics"
)

// VERSION stores the information about the semantic version of application
var VERSION = "dev"

// REVISION stores the information about the git revision of application
var REVISION = "HEAD"

func initErrorReporting(sentryDSN, sentryEnvironment string) {
	err := errortracking.Configure(sentryDSN, sentryEnvironment, fmt.Sprintf("%s-%s", VERSION, REVISION))
	if err != nil {
		log.WithError(err).Warn("Failed to initialize errortracking")
	}
}

func appMain() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	printVersion(cfg.General.ShowVersion, VERSION)

	if err := logging.ConfigureLogging(cfg.Log.Format, cfg.Log.Verbose); err != nil {
		log.WithError(err).Fatal("Failed to initialize logging")
	}

	if cfg.Sentry.DSN != "" {
		initErrorReporting(cfg.Sentry.DSN, cfg.Sentry.Environment)
	}

	log.WithFields(log.Fields{
		"version":  VERSION,
		"revision": REVISION,
	}).Print("Pages Gateway")

	config.LogConfig(cfg)

	if err := mimedb.LoadTypes(); err != nil {
		log.WithError(err).Warn("Loading mime types failed")
	}

	addExtraMIMETypes()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runApp(ctx, cfg); err != nil {
		errortracking.CaptureErr(err)
		log.WithError(err).Fatal("Gateway stopped")
	}
}

func printVersion(showVersion bool, version string) {
	if showVersion {
		fmt.Fprintf(os.Stdout, "%s\n", version)
		os.Exit(0)
	}
}

func main() {
	log.SetOutput(os.Stderr)

	metrics.MustRegister()

	appMain()
}
