package utils

import (
	"fmt"
	"net/url"
)

// ParseGrpcUrl converts a service URI to a grpc dial target.
// Supported schemes are tcp (default port 9090) and unix.
func ParseGrpcUrl(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", Errorf(ErrParse, "invalid uri: %s", uri)
	}

	switch u.Scheme {
	case "tcp", "tcp4", "tcp6":
		if u.Port() == "" {
			return fmt.Sprintf("%s:9090", u.Host), nil
		}
		return u.Host, nil
	case "unix":
		return fmt.Sprintf("unix:%s", u.Path), nil
	default:
		return "", Errorf(ErrParse, "unsupported protocol: %s", u.Scheme)
	}
}

// ParseHttpUrl converts a service URI to a listen address.
// Only tcp is supported, with a default port of 8080.
func ParseHttpUrl(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", Errorf(ErrParse, "invalid uri: %s", uri)
	}

	switch u.Scheme {
	case "tcp", "tcp4", "tcp6", "http":
		if u.Port() == "" {
			return fmt.Sprintf("%s:8080", u.Host), nil
		}
		return u.Host, nil
	default:
		return "", Errorf(ErrParse, "unsupported protocol: %s", u.Scheme)
	}
}
