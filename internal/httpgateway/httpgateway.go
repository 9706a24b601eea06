package httpgateway

import (
	"errors"
	"net/http"
	"strconv"

	"gitlab.com/gitlab-org/pages-gateway/internal/errortracking"
	"gitlab.com/gitlab-org/pages-gateway/internal/gateway"
	"gitlab.com/gitlab-org/pages-gateway/internal/httperrors"
	"gitlab.com/gitlab-org/pages-gateway/internal/logging"
)

var errResponseNotStarted = errors.New("handler returned without starting a response")

// Handler serves a gateway handler over net/http. Errors returned by the
// gateway handler are logged, reported and answered with a JSON 500.
func Handler(h gateway.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			status  string
			headers []gateway.Header
			started bool
		)

		req := gateway.NewRequest(r.Context(), gateway.NewEnviron(r))
		body, err := h.Serve(req, func(s string, hs []gateway.Header) {
			status, headers, started = s, hs, true
		})
		if err == nil && !started {
			err = errResponseNotStarted
		}

		var code int
		if err == nil {
			code, err = gateway.ParseStatus(status)
		}

		if err != nil {
			logging.LogRequest(r).WithError(err).Error("could not serve request")
			errortracking.CaptureErrWithReqAndStackTrace(err, r)
			httperrors.Serve500(w)
			return
		}

		for _, header := range headers {
			w.Header().Add(header.Name, header.Value)
		}

		if code != http.StatusNotModified {
			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		}

		w.WriteHeader(code)

		if r.Method != http.MethodHead {
			w.Write(body)
		}
	})
}
