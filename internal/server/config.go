// config.go - Server configuration and startup validation.
//
// Configuration is an explicit struct handed to New rather than
// package-level state, so tests can run several independent server
// instances against separate storage roots.
package server

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Config carries everything a Server needs at startup. The listen
// address and storage directory are fixed for the life of the server;
// there is no environment-variable configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8000". The server binds all
	// interfaces so other devices on the LAN can reach it.
	Addr string

	// Dir is the storage directory holding the shared files. Created
	// if absent.
	Dir string

	// BaseURL is the URL advertised on the index page and encoded in
	// the QR code, e.g. "http://192.168.1.20:8000/".
	BaseURL string
}

// Validate checks the configuration and fails fast with a clear error
// message rather than surfacing a runtime failure later.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: listen address is empty")
	}
	_, portStr, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return fmt.Errorf("config: invalid listen address %q: %w", c.Addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("config: invalid port %q in listen address", portStr)
	}

	if strings.TrimSpace(c.Dir) == "" {
		return fmt.Errorf("config: storage directory is empty")
	}

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid base URL %q: %w", c.BaseURL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("config: base URL %q must be http or https", c.BaseURL)
		}
	}

	return nil
}
