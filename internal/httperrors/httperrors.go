package httperrors

import (
	"encoding/json"
	"net/http"

	"gitlab.com/gitlab-org/pages-gateway/internal/gateway"
)

// DefaultNotFoundMessage is used by NotFound when no message is given
const DefaultNotFoundMessage = "Not found."

const contentTypeJSON = "application/json"

type content struct {
	Status  int    `json:"error"`
	Message string `json:"message"`
}

var (
	content404 = content{http.StatusNotFound, DefaultNotFoundMessage}
	content414 = content{http.StatusRequestURITooLong, "Request URI is too long."}
	content500 = content{http.StatusInternalServerError, "Whoops, something went wrong on our end."}
)

func (c content) body() []byte {
	// marshalling an int and a string can't fail
	b, _ := json.Marshal(c)
	return b
}

// NotFound returns a gateway handler that always answers 404 with a JSON
// body naming the message. An empty message means DefaultNotFoundMessage.
func NotFound(message string) gateway.Handler {
	if message == "" {
		message = DefaultNotFoundMessage
	}

	c := content{http.StatusNotFound, message}

	return gateway.HandlerFunc(func(_ *gateway.Request, start gateway.StartResponse) ([]byte, error) {
		start(gateway.StatusLine(c.Status), []gateway.Header{{Name: "Content-Type", Value: contentTypeJSON}})
		return c.body(), nil
	})
}

func serveErrorPage(w http.ResponseWriter, c content) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(c.Status)
	w.Write(c.body())
}

// ServeJSON writes a JSON error response with the given status and message
func ServeJSON(w http.ResponseWriter, status int, message string) {
	serveErrorPage(w, content{status, message})
}

// Serve404 returns a 404 JSON error response to the http.ResponseWriter
func Serve404(w http.ResponseWriter) {
	serveErrorPage(w, content404)
}

// Serve414 returns a 414 JSON error response to the http.ResponseWriter
func Serve414(w http.ResponseWriter) {
	serveErrorPage(w, content414)
}

// Serve500 returns a 500 JSON error response to the http.ResponseWriter
func Serve500(w http.ResponseWriter) {
	serveErrorPage(w, content500)
}
