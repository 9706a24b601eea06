package middleware

import (
	"errors"
	"strings"

	"gitlab.com/gitlab-org/pages-gateway/internal/gateway"
)

var errInvalidHeaderParameter = errors.New("invalid syntax specified as header parameter")

// ParseHeaderString parses a list of "Key: Value" strings into headers
func ParseHeaderString(customHeaders []string) ([]gateway.Header, error) {
	headers := make([]gateway.Header, 0, len(customHeaders))
	for _, keyValueString := range customHeaders {
		keyValue := strings.SplitN(keyValueString, ":", 2)
		if len(keyValue) != 2 {
			return nil, errInvalidHeaderParameter
		}

		headers = append(headers, gateway.Header{
			Name:  strings.TrimSpace(keyValue[0]),
			Value: strings.TrimSpace(keyValue[1]),
		})
	}
	return headers, nil
}

// CustomHeaders appends headers to every response started by the wrapped handler
func CustomHeaders(headers []gateway.Header) func(gateway.Handler) gateway.Handler {
	return func(next gateway.Handler) gateway.Handler {
		if len(headers) == 0 {
			return next
		}

		return gateway.HandlerFunc(func(r *gateway.Request, start gateway.StartResponse) ([]byte, error) {
			return next.Serve(r, func(status string, responseHeaders []gateway.Header) {
				all := make([]gateway.Header, 0, len(responseHeaders)+len(headers))
				all = append(all, responseHeaders...)
				all = append(all, headers...)

				start(status, all)
			})
		})
	}
}
