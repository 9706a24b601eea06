package errortracking

import (
	"net/http"

	"gitlab.com/gitlab-org/labkit/errortracking"
)

// Configure sets up Sentry reporting. An empty dsn disables reporting.
func Configure(dsn, environment, version string) error {
	return errortracking.Initialize(
		errortracking.WithSentryDSN(dsn),
		errortracking.WithVersion(version),
		errortracking.WithLoggerName("pages-gateway"),
		errortracking.WithSentryEnvironment(environment),
	)
}

// CaptureErrWithReqAndStackTrace reports err along with the request it happened on
func CaptureErrWithReqAndStackTrace(err error, r *http.Request) {
	errortracking.Capture(err,
		errortracking.WithContext(r.Context()),
		errortracking.WithRequest(r),
		errortracking.WithStackTrace(),
	)
}

// CaptureErr reports an error that is not tied to a request
func CaptureErr(err error) {
	errortracking.Capture(err, errortracking.WithStackTrace())
}
