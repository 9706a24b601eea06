package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrNoListener          = errors.New("no listener defined, please specify at least one --listen-* flag")
	ErrNoRoutes            = errors.New("no routes defined, please specify at least one --file or --static flag")
	ErrNegativeExpires     = errors.New("file-expires must not be negative")
	ErrNegativeMaxConns    = errors.New("max-conns must not be negative")
	ErrNegativeURILength   = errors.New("max-uri-length must not be negative")
	ErrMountNotAbsolute    = errors.New("route url path must start with /")
	ErrInvalidHeader       = errors.New("invalid syntax specified as header parameter")
	ErrUnknownLogFormat    = errors.New("log-format must be 'text' or 'json'")
	errInvalidMount        = errors.New("invalid route, expected url-path=target")
	errDuplicatedFileRoute = errors.New("file route defined more than once")
)

// Validate checks that the config is usable, reporting every problem found
func Validate(config *Config) error {
	var result *multierror.Error

	if len(config.Listeners.HTTP) == 0 {
		result = multierror.Append(result, ErrNoListener)
	}

	if len(config.Serving.Files) == 0 && len(config.Serving.Static) == 0 {
		result = multierror.Append(result, ErrNoRoutes)
	}

	if config.Serving.FileExpires < 0 {
		result = multierror.Append(result, ErrNegativeExpires)
	}

	if config.General.MaxConns < 0 {
		result = multierror.Append(result, ErrNegativeMaxConns)
	}

	if config.General.MaxURILength < 0 {
		result = multierror.Append(result, ErrNegativeURILength)
	}

	if config.Log.Format != "" && config.Log.Format != "text" && config.Log.Format != "json" {
		result = multierror.Append(result, fmt.Errorf("%w: %q", ErrUnknownLogFormat, config.Log.Format))
	}

	result = multierror.Append(result, validateMounts(config.Serving)...)

	for _, h := range config.General.CustomHeaders {
		if !strings.Contains(h, ":") {
			result = multierror.Append(result, fmt.Errorf("%w: %q", ErrInvalidHeader, h))
		}
	}

	return result.ErrorOrNil()
}

func validateMounts(serving Serving) []error {
	var errs []error

	seen := make(map[string]bool)
	for _, m := range serving.Files {
		if !strings.HasPrefix(m.URLPath, "/") {
			errs = append(errs, fmt.Errorf("%w: %q", ErrMountNotAbsolute, m.URLPath))
		}

		if seen[m.URLPath] {
			errs = append(errs, fmt.Errorf("%w: %q", errDuplicatedFileRoute, m.URLPath))
		}
		seen[m.URLPath] = true
	}

	for _, m := range serving.Static {
		if !strings.HasPrefix(m.URLPath, "/") {
			errs = append(errs, fmt.Errorf("%w: %q", ErrMountNotAbsolute, m.URLPath))
		}
	}

	return errs
}
