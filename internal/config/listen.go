package config

import (
	"fmt"
	"math"
	"net"
	"strconv"
	"strings"
)

// ParseListenAddr turns one --listen value into a host:port pair.
// Accepted forms:
//
//	3000            -> 127.0.0.1:3000
//	0.0.0.0         -> 0.0.0.0:<port>
//	localhost:8080  -> localhost:8080
//	::1             -> [::1]:<port>
//	[::1]:8080      -> [::1]:8080
func ParseListenAddr(s string, port uint16) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty listen address", ErrInvalid)
	}

	if isDigits(s) {
		p, err := ParsePort(s)
		if err != nil {
			return "", err
		}
		return net.JoinHostPort(DefaultListenHost, strconv.Itoa(int(p))), nil
	}

	if host, portStr, err := net.SplitHostPort(s); err == nil {
		p, err := ParsePort(portStr)
		if err != nil {
			return "", err
		}
		if err := validateHost(host); err != nil {
			return "", err
		}
		return net.JoinHostPort(host, strconv.Itoa(int(p))), nil
	}

	host := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if err := validateHost(host); err != nil {
		return "", err
	}
	return net.JoinHostPort(host, strconv.Itoa(int(port))), nil
}

// ParsePort parses a TCP port number.
func ParsePort(s string) (uint16, error) {
	p, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid port %q", ErrInvalid, s)
	}
	return uint16(p), nil
}

// ParseCacheSeconds parses the cache max-age. Negative, fractional and
// values beyond 32 bits are rejected.
func ParseCacheSeconds(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty cache time", ErrInvalid)
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: cache time %q must not be negative", ErrInvalid, s)
	}
	if strings.ContainsAny(s, ".eE") {
		return 0, fmt.Errorf("%w: cache time %q must be a whole number of seconds", ErrInvalid, s)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid cache time %q", ErrInvalid, s)
	}
	if n > math.MaxUint32 {
		return 0, fmt.Errorf("%w: cache time %q is too large (max %d)", ErrInvalid, s, uint32(math.MaxUint32))
	}
	return uint32(n), nil
}

func validateHost(host string) error {
	if host == "" {
		// ":8080" listens on every interface
		return nil
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	if len(host) > 253 {
		return fmt.Errorf("%w: listen host %q is too long", ErrInvalid, host)
	}
	for _, label := range strings.Split(host, ".") {
		if label == "" || len(label) > 63 {
			return fmt.Errorf("%w: invalid listen host %q", ErrInvalid, host)
		}
		for _, r := range label {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
				return fmt.Errorf("%w: invalid listen host %q", ErrInvalid, host)
			}
		}
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
