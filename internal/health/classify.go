package health

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// Failure classes reported in Result.Reason.
const (
	ReasonTimeout = "timeout"
	ReasonDNS     = "dns"
	ReasonRefused = "refused"
	ReasonAuth    = "auth"
	ReasonConfig  = "config"
	ReasonError   = "error"
)

// ErrAuth marks a failure caused by rejected credentials.  Probes wrap
// driver-specific authentication errors with it.
var ErrAuth = errors.New("authentication failed")

// ErrMisconfigured marks a probe that cannot run because its settings are
// missing or invalid.
var ErrMisconfigured = errors.New("probe misconfigured")

// Classify maps a probe error to a coarse failure class.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrAuth):
		return ReasonAuth
	case errors.Is(err, ErrMisconfigured):
		return ReasonConfig
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ReasonDNS
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return ReasonRefused
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return ReasonError
}
