package tenancy

import (
	"net"
	"strings"
)

// NormalizeHost reduces an HTTP Host header to a comparable form: the
// port is stripped, a trailing dot from an absolute FQDN is removed,
// IPv6 brackets are dropped and the result is lowercased.
func NormalizeHost(host string) string {
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	} else if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		// Bare bracketed IPv6 literal without a port.
		host = host[1 : len(host)-1]
	}
	host = strings.TrimSuffix(host, ".")
	return strings.ToLower(host)
}

// IsIPLiteral reports whether the normalized host is an IPv4 or IPv6
// address rather than a name.
func IsIPLiteral(host string) bool {
	return net.ParseIP(host) != nil
}

// SubdomainLabel extracts the leftmost DNS label from a normalized
// host, but only when the host has at least three labels so that bare
// apex domains like chambers.app never resolve as a tenant.
func SubdomainLabel(host string) (string, bool) {
	parts := strings.Split(host, ".")
	if len(parts) < 3 || parts[0] == "" {
		return "", false
	}
	return parts[0], true
}
