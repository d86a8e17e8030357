// Package managerapi defines the contract consumed by the middleware on
// behalf of hosts: the ManagerInterface a manager plug-in implements,
// the HostSession threaded into every call, and the paged-result
// interface for relationship queries.
package managerapi

import (
	openassetio "github.com/foundrytom/openassetio-go"
	oaerrors "github.com/foundrytom/openassetio-go/errors"
	"github.com/foundrytom/openassetio-go/log"
)

// Host provides a manager with a view of the host it is serving. It
// wraps the host-supplied HostInterface so manager-facing additions can
// be made without changing the host contract.
type Host struct {
	iface openassetio.HostInterface
}

// NewHost wraps a HostInterface.
func NewHost(iface openassetio.HostInterface) (*Host, error) {
	if iface == nil {
		return nil, oaerrors.NewInputValidationError("HostInterface must not be nil")
	}
	return &Host{iface: iface}, nil
}

// Identifier returns the host's reverse-DNS identifier.
func (h *Host) Identifier() string { return h.iface.Identifier() }

// DisplayName returns the host's human-readable name.
func (h *Host) DisplayName() string { return h.iface.DisplayName() }

// Info returns the host's descriptive properties.
func (h *Host) Info() openassetio.InfoDictionary { return h.iface.Info() }

// HostSession pairs the calling Host with the logger a manager should
// use, and is appended to every ManagerInterface call. Sessions are
// shared between the host and the middleware and never mutated by the
// middleware.
type HostSession struct {
	host   *Host
	logger log.LoggerInterface
}

// NewHostSession creates a session for the given host and logger.
func NewHostSession(host *Host, logger log.LoggerInterface) (*HostSession, error) {
	if host == nil {
		return nil, oaerrors.NewInputValidationError("Host must not be nil")
	}
	if logger == nil {
		return nil, oaerrors.NewInputValidationError("Logger must not be nil")
	}
	return &HostSession{host: host, logger: logger}, nil
}

// Host returns the host the session belongs to.
func (s *HostSession) Host() *Host { return s.host }

// Logger returns the session's log sink.
func (s *HostSession) Logger() log.LoggerInterface { return s.logger }
