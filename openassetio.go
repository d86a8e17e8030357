// Package openassetio holds the core value types shared between the
// host-facing API (hostapi) and the manager plug-in contract (managerapi):
// entity references, the calling Context, opaque manager state, the
// HostInterface a host must supply, and the primitive dictionary types
// exchanged with manager implementations.
package openassetio

// InfoDictionary carries free-form descriptive properties exchanged with
// a manager, for example the result of ManagerInterface.Info. Values are
// restricted by convention to strings, signed 64-bit integers, 64-bit
// floats and booleans.
type InfoDictionary map[string]any

// Settings carries manager configuration supplied to Initialize and
// returned from Settings queries. Values follow the same primitive
// conventions as InfoDictionary.
type Settings map[string]any

// InfoKeyEntityReferencesMatchPrefix is a recognised InfoDictionary key.
// When a manager's Info result maps it to a string, every entity
// reference of that manager starts with the given prefix, and the
// middleware short-circuits IsEntityReferenceString to a prefix match
// without consulting the manager.
const InfoKeyEntityReferencesMatchPrefix = "openassetio.entityReferencesMatchPrefix"

// HostInterface describes the calling host to a manager. Hosts provide
// an implementation when constructing a session; managers receive it
// (wrapped) through the HostSession passed into every call.
type HostInterface interface {
	// Identifier returns the reverse-DNS identifier of the host tool.
	Identifier() string

	// DisplayName returns a human-readable name for the host.
	DisplayName() string

	// Info returns free-form descriptive properties of the host.
	Info() InfoDictionary
}
