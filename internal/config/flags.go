package config

import (
	"time"

	"github.com/namsral/flag"
)

var (
	metricsAddress             = flag.String("metrics-address", "", "The address to listen on for metrics requests")
	maxConns                   = flag.Int("max-conns", 0, "Limit on the number of concurrent connections to the HTTP listeners, 0 for no limit")
	maxURILength               = flag.Int("max-uri-length", 1024, "Limit the length of URI, 0 for unlimited.")
	propagateCorrelationID     = flag.Bool("propagate-correlation-id", true, "Reuse existing Correlation-ID from the incoming request header `X-Request-ID` if present")
	disableCrossOriginRequests = flag.Bool("disable-cross-origin-requests", false, "Disable cross-origin requests")
	sentryDSN                  = flag.String("sentry-dsn", "", "The address for sending sentry crash reporting to")
	sentryEnvironment          = flag.String("sentry-environment", "", "The environment for sentry crash reporting")
	logFormat                  = flag.String("log-format", "json", "The log output format: 'text' or 'json'")
	logVerbose                 = flag.Bool("log-verbose", false, "Verbose logging")

	fileExpires      = flag.Duration("file-expires", time.Hour, "The max-age advertised for served files, truncated to seconds")
	fileCache        = flag.Bool("file-cache", true, "Keep the content of -file routes in memory until the file changes on disk")
	staticStrictRoot = flag.Bool("static-strict-root", false, "Refuse static files whose real path, after following symlinks, is outside of the static root")

	// HTTP server timeouts
	serverReadTimeout       = flag.Duration("server-read-timeout", 5*time.Second, "ReadTimeout is the maximum duration for reading the entire request, including the body. A zero or negative value means there will be no timeout.")
	serverReadHeaderTimeout = flag.Duration("server-read-header-timeout", time.Second, "ReadHeaderTimeout is the amount of time allowed to read request headers. A zero or negative value means there will be no timeout.")
	serverWriteTimeout      = flag.Duration("server-write-timeout", 0, "WriteTimeout is the maximum duration before timing out writes of the response. A zero or negative value means there will be no timeout.")
	serverShutdownTimeout   = flag.Duration("server-shutdown-timeout", 30*time.Second, "Server shutdown timeout (default: 30s)")

	showVersion = flag.Bool("version", false, "Show version")

	// See initFlags()
	listenHTTP = MultiStringFlag{separator: ","}
	files      = MultiStringFlag{}
	static     = MultiStringFlag{}

	header = MultiStringFlag{separator: ";;"}
)

// initFlags will be called from LoadConfig
func initFlags() {
	flag.Var(&listenHTTP, "listen-http", "The address(es) to listen on for HTTP requests")
	flag.Var(&files, "file", "A single file route as url-path=file-path, e.g. /=public/index.html")
	flag.Var(&static, "static", "A static directory route as mount=directory, e.g. /static=public/static")
	flag.Var(&header, "header", "The additional http header(s) that should be send to the client")

	// read from -config=/path/to/pages-gateway-config
	flag.String(flag.DefaultConfigFlagname, "", "path to config file")

	flag.Parse()
}
