package main

import (
	"mime"

	log "github.com/sirupsen/logrus"
)

// types missing from the mime database shipped with the binary
var extraMIMETypes = map[string]string{
	".avif": "image/avif",
	".mjs":  "text/javascript; charset=utf-8",
	".wasm": "application/wasm",
}

func addExtraMIMETypes() {
	for ext, mimeType := range extraMIMETypes {
		if err := mime.AddExtensionType(ext, mimeType); err != nil {
			log.WithError(err).Errorf("failed to add extension: %q with MIME type: %q", ext, mimeType)
		}
	}
}
