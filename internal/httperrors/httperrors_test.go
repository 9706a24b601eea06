package httperrors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/gitlab-org/pages-gateway/internal/gateway"
)

type errorBody struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

func TestNotFound(t *testing.T) {
	tests := map[string]struct {
		message         string
		expectedMessage string
	}{
		"default_message": {
			message:         "",
			expectedMessage: "Not found.",
		},
		"custom_message": {
			message:         "Path /srv/www/a.css not found.",
			expectedMessage: "Path /srv/www/a.css not found.",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var status string
			var hdrs []gateway.Header

			req := gateway.NewRequest(nil, gateway.Environ{gateway.PathInfo: "/nope"})
			body, err := NotFound(test.message).Serve(req, func(s string, h []gateway.Header) {
				status = s
				hdrs = h
			})
			require.NoError(t, err)

			require.Equal(t, "404 Not Found", status)
			require.Equal(t, []gateway.Header{{Name: "Content-Type", Value: "application/json"}}, hdrs)

			var got errorBody
			require.NoError(t, json.Unmarshal(body, &got))
			require.Equal(t, http.StatusNotFound, got.Error)
			require.Equal(t, test.expectedMessage, got.Message)
		})
	}
}

func TestServeJSON(t *testing.T) {
	tests := map[string]struct {
		serve           func(http.ResponseWriter)
		expectedStatus  int
		expectedMessage string
	}{
		"404": {
			serve:           Serve404,
			expectedStatus:  http.StatusNotFound,
			expectedMessage: DefaultNotFoundMessage,
		},
		"414": {
			serve:           Serve414,
			expectedStatus:  http.StatusRequestURITooLong,
			expectedMessage: "Request URI is too long.",
		},
		"500": {
			serve:           Serve500,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Whoops, something went wrong on our end.",
		},
		"custom": {
			serve: func(w http.ResponseWriter) {
				ServeJSON(w, http.StatusBadRequest, "bad")
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "bad",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			test.serve(w)

			require.Equal(t, test.expectedStatus, w.Code)
			require.Equal(t, "application/json", w.Header().Get("Content-Type"))
			require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

			var got errorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			require.Equal(t, test.expectedStatus, got.Error)
			require.Equal(t, test.expectedMessage, got.Message)
		})
	}
}
