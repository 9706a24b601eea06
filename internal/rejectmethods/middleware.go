package rejectmethods

import (
	"net/http"

	"gitlab.com/gitlab-org/pages-gateway/internal/httperrors"
	"gitlab.com/gitlab-org/pages-gateway/metrics"
)

var acceptedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodConnect: true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
}

// NewMiddleware returns middleware which rejects all unknown http methods
func NewMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if acceptedMethods[r.Method] {
			handler.ServeHTTP(w, r)
			return
		}

		metrics.RejectedRequestsCount.Inc()
		httperrors.ServeJSON(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})
}
