package hostapi

import (
	openassetio "github.com/foundrytom/openassetio-go"
	"github.com/foundrytom/openassetio-go/managerapi"
)

// EntityReferencePager is the host's cursor over one result set of a
// relationship query. It forwards to the manager's pager interface with
// the session injected.
//
// The wrapper holds a strong reference to the underlying interface for
// its whole lifetime: pagers constructed in a foreign runtime and
// immediately released by the manager must stay live for as long as any
// wrapper the middleware handed out remains reachable.
type EntityReferencePager struct {
	iface   managerapi.EntityReferencePagerInterface
	session *managerapi.HostSession
}

// NewEntityReferencePager wraps a manager pager for host consumption.
func NewEntityReferencePager(iface managerapi.EntityReferencePagerInterface,
	session *managerapi.HostSession) *EntityReferencePager {
	return &EntityReferencePager{iface: iface, session: session}
}

// HasNext reports whether a page follows the current one.
func (p *EntityReferencePager) HasNext() bool {
	return p.iface.HasNext(p.session)
}

// Get returns the current page of references.
func (p *EntityReferencePager) Get() []openassetio.EntityReference {
	return p.iface.Get(p.session)
}

// Next advances to the following page.
func (p *EntityReferencePager) Next() {
	p.iface.Next(p.session)
}
