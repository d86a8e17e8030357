package managerapi

import openassetio "github.com/foundrytom/openassetio-go"

// EntityReferencePagerInterface is the manager-side cursor over the
// results of a relationship query. Hosts consume it through the
// hostapi.EntityReferencePager wrapper, which keeps the interface alive
// and injects the session.
//
// Implementations need not be goroutine safe; the middleware calls from
// the host's thread only.
type EntityReferencePagerInterface interface {
	// HasNext reports whether a page follows the current one.
	HasNext(session *HostSession) bool

	// Get returns the current page. Pages before the last hold exactly
	// the requested page size; the final page may be short or empty.
	Get(session *HostSession) []openassetio.EntityReference

	// Next advances to the following page. Advancing past the last
	// page leaves the pager on an empty page.
	Next(session *HostSession)
}
