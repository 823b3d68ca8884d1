package errors

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/samber/lo"
)

// IsConnectivityError checks if an error means the node could not be reached
// or did not answer in time.
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return lo.ContainsBy(ConnectivityErrorPatterns, func(pattern string) bool {
		return strings.Contains(errStr, pattern)
	})
}

// SubmissionReason returns a short label for a rejected transaction, or
// "rejected" when the node message matches no known pattern.
func SubmissionReason(err error) string {
	if err == nil {
		return "none"
	}

	errStr := strings.ToLower(err.Error())
	for _, r := range SubmissionReasons {
		if strings.Contains(errStr, r.Pattern) {
			return r.Reason
		}
	}
	return "rejected"
}
