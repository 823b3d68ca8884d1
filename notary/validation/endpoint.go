package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/trufnetwork/notary/notary/internal/constants"
)

// RPCEndpointRule checks that the node endpoint is present and parseable.
type RPCEndpointRule struct{}

func (r *RPCEndpointRule) Name() string {
	return "rpc_url"
}

func (r *RPCEndpointRule) Validate(fields Fields) error {
	return ValidateEndpoint(fields.RPCURL)
}

// ValidateEndpoint accepts http(s), ws(s) URLs, bare host:port and IPC paths.
func ValidateEndpoint(endpoint string) error {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return errors.New(constants.ErrMsgEmptyRequired)
	}
	// IPC socket path
	if strings.HasPrefix(endpoint, "/") {
		return nil
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%s: %w", constants.ErrMsgInvalidEndpoint, err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("%s: unsupported scheme %q", constants.ErrMsgInvalidEndpoint, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s: missing host", constants.ErrMsgInvalidEndpoint)
	}
	return nil
}

// RedactEndpoint reduces an endpoint to scheme and host for logs and errors.
// Credentials and the path, which often carries an API key, are dropped.
func RedactEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" || strings.HasPrefix(endpoint, "/") {
		return endpoint
	}
	bare := !strings.Contains(endpoint, "://")
	raw := endpoint
	if bare {
		raw = "http://" + endpoint
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return redactedEndpoint
	}
	if bare {
		return u.Host
	}
	return u.Scheme + "://" + u.Host
}

const redactedEndpoint = "<redacted endpoint>"

// ExplorerURLRule checks the optional block explorer prefix.
type ExplorerURLRule struct{}

func (r *ExplorerURLRule) Name() string {
	return "explorer_tx_url"
}

func (r *ExplorerURLRule) Validate(fields Fields) error {
	if fields.ExplorerTxURL == "" {
		return nil
	}
	u, err := url.Parse(fields.ExplorerTxURL)
	if err != nil {
		return fmt.Errorf("%s: %w", constants.ErrMsgInvalidExplorer, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: scheme must be http or https", constants.ErrMsgInvalidExplorer)
	}
	return nil
}

// MetricsEndpointRule checks the optional OTLP/HTTP collector URL.
type MetricsEndpointRule struct{}

func (r *MetricsEndpointRule) Name() string {
	return "metrics_endpoint"
}

func (r *MetricsEndpointRule) Validate(fields Fields) error {
	if fields.MetricsURL == "" {
		return nil
	}
	u, err := url.Parse(fields.MetricsURL)
	if err != nil {
		return fmt.Errorf("%s: %w", constants.ErrMsgInvalidMetrics, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: scheme must be http or https", constants.ErrMsgInvalidMetrics)
	}
	if u.Host == "" {
		return fmt.Errorf("%s: missing host", constants.ErrMsgInvalidMetrics)
	}
	return nil
}
