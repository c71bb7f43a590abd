package telemetry

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rileyhilliard/tilemon/internal/errors"
)

// DefaultPort is appended to bare host addresses.
const DefaultPort = "8085"

// DataPath is the telemetry resource relative to the normalized base URL.
const DataPath = "api/data"

// NormalizeEndpoint turns a free-text server address into a base URL ending
// in a slash.
//
//	192.168.1.5        -> http://192.168.1.5:8085/
//	192.168.1.5:9000   -> http://192.168.1.5:9000/
//	http://host/       -> http://host/
//
// An address containing a colon is taken to already carry a port or scheme;
// only the scheme is added when missing. Anything else gets DefaultPort.
// The result must parse as an absolute http(s) URL with a host, otherwise
// an ErrEndpoint error is returned.
func NormalizeEndpoint(address string) (string, error) {
	addr := strings.TrimSpace(address)
	if addr == "" {
		return "", errors.New(errors.ErrEndpoint,
			"No telemetry server address set",
			"Pass an address like 192.168.1.5 or 192.168.1.5:9000")
	}

	var base string
	if strings.Contains(addr, ":") {
		base = addr
		if !strings.Contains(base, "://") {
			base = "http://" + base
		}
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
	} else {
		base = "http://" + addr + ":" + DefaultPort + "/"
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrEndpoint,
			fmt.Sprintf("Cannot build a request URL from '%s'", addr),
			"Check the address for typos or stray spaces")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return "", errors.New(errors.ErrEndpoint,
			fmt.Sprintf("Cannot build a request URL from '%s'", addr),
			"Use host, host:port, or http://host:port/")
	}

	return base, nil
}

// DataURL returns the telemetry URL for a normalized base.
func DataURL(base string) string {
	return base + DataPath
}
