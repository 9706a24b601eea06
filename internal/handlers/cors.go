package handlers

import (
	"net/http"

	"github.com/rs/cors"

	"gitlab.com/gitlab-org/pages-gateway/internal/config"
)

// files and static directories are read-only, so only safe methods are
// allowed cross origin
var corsHandler = cors.New(cors.Options{AllowedMethods: []string{http.MethodGet, http.MethodHead}})

// CorsHandler allows cross-origin GET and HEAD requests unless disabled
// in config
func CorsHandler(config *config.Config, handler http.Handler) http.Handler {
	if !config.General.DisableCrossOriginRequests {
		handler = corsHandler.Handler(handler)
	}
	return handler
}
