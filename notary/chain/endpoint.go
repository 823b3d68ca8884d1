package chain

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// normalizeEndpoint converts a configured node address into a dialable URL.
// - Adds http:// scheme if missing
// - Rewrites wildcard hosts (0.0.0.0/::) to loopback 127.0.0.1
// - Leaves IPC socket paths untouched
func normalizeEndpoint(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "", fmt.Errorf("empty rpc endpoint")
	}
	if strings.HasPrefix(endpoint, "/") {
		return endpoint, nil
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	host, port, err := net.SplitHostPort(u.Host)
	if err == nil {
		clean := strings.Trim(host, "[]")
		if clean == "" {
			u.Host = net.JoinHostPort("127.0.0.1", port)
		} else if ip := net.ParseIP(clean); ip != nil && ip.IsUnspecified() {
			u.Host = net.JoinHostPort("127.0.0.1", port)
		}
	}
	return u.String(), nil
}
