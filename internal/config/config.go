package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/namsral/flag"
	log "github.com/sirupsen/logrus"
)

// Config stores all the config options relevant to the gateway.
type Config struct {
	General   General
	Listeners Listeners
	Serving   Serving
	Server    Server
	Log       Log
	Sentry    Sentry
}

// General groups settings that are general to the gateway and can not
// be categorized under other head.
type General struct {
	MetricsAddress         string
	MaxConns                   int
	MaxURILength               int
	PropagateCorrelationID     bool
	DisableCrossOriginRequests bool
	ShowVersion                bool

	CustomHeaders []string
}

// Listeners groups the addresses to listen on for HTTP requests
type Listeners struct {
	HTTP []string
}

// Mount maps a URL path onto a file or directory on disk
type Mount struct {
	URLPath string
	Target  string
}

// Serving groups settings related to the routes being served
type Serving struct {
	Files            []Mount
	Static           []Mount
	FileExpires      time.Duration
	FileCache        bool
	StaticStrictRoot bool
}

// Server groups the HTTP server timeouts
type Server struct {
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	ShutdownTimeout   time.Duration
}

// Log groups settings related to configuring logging
type Log struct {
	Format  string
	Verbose bool
}

// Sentry groups settings related to configuring Sentry
type Sentry struct {
	DSN         string
	Environment string
}

// parseMounts turns "url=target" values into mounts
func parseMounts(values []string) ([]Mount, error) {
	mounts := make([]Mount, 0, len(values))

	for _, value := range values {
		keyValue := strings.SplitN(value, "=", 2)
		if len(keyValue) != 2 || keyValue[0] == "" || keyValue[1] == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidMount, value)
		}

		mounts = append(mounts, Mount{
			URLPath: strings.TrimSpace(keyValue[0]),
			Target:  strings.TrimSpace(keyValue[1]),
		})
	}

	return mounts, nil
}

func loadConfig() (*Config, error) {
	config := &Config{
		General: General{
			MetricsAddress:             *metricsAddress,
			MaxConns:                   *maxConns,
			MaxURILength:               *maxURILength,
			PropagateCorrelationID:     *propagateCorrelationID,
			DisableCrossOriginRequests: *disableCrossOriginRequests,
			ShowVersion:                *showVersion,
			CustomHeaders:              header.Split(),
		},
		Listeners: Listeners{
			HTTP: listenHTTP.Split(),
		},
		Serving: Serving{
			FileExpires:      *fileExpires,
			FileCache:        *fileCache,
			StaticStrictRoot: *staticStrictRoot,
		},
		Server: Server{
			ReadTimeout:       *serverReadTimeout,
			ReadHeaderTimeout: *serverReadHeaderTimeout,
			WriteTimeout:      *serverWriteTimeout,
			ShutdownTimeout:   *serverShutdownTimeout,
		},
		Log: Log{
			Format:  *logFormat,
			Verbose: *logVerbose,
		},
		Sentry: Sentry{
			DSN:         *sentryDSN,
			Environment: *sentryEnvironment,
		},
	}

	var err error

	if config.Serving.Files, err = parseMounts(files.value); err != nil {
		return nil, err
	}

	if config.Serving.Static, err = parseMounts(static.value); err != nil {
		return nil, err
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LogConfig logs all the settings the gateway was started with
func LogConfig(config *Config) {
	log.WithFields(log.Fields{
		"default-config-filename":       flag.DefaultConfigFlagname,
		"listen-http":                   config.Listeners.HTTP,
		"metrics-address":               config.General.MetricsAddress,
		"max-conns":                     config.General.MaxConns,
		"max-uri-length":                config.General.MaxURILength,
		"propagate-correlation-id":      config.General.PropagateCorrelationID,
		"disable-cross-origin-requests": config.General.DisableCrossOriginRequests,
		"file":                          config.Serving.Files,
		"static":                        config.Serving.Static,
		"file-expires":                  config.Serving.FileExpires,
		"file-cache":                    config.Serving.FileCache,
		"static-strict-root":            config.Serving.StaticStrictRoot,
		"log-format":                    config.Log.Format,
		"log-verbose":                   config.Log.Verbose,
		"server-shutdown-timeout":       config.Server.ShutdownTimeout,
	}).Debug("Start daemon with configuration")
}

// LoadConfig parses configuration settings passed as command line arguments or
// via config file, and populates a Config object with those values
func LoadConfig() (*Config, error) {
	initFlags()

	return loadConfig()
}
