package managerapi

import (
	openassetio "github.com/foundrytom/openassetio-go"
	"github.com/foundrytom/openassetio-go/access"
	oaerrors "github.com/foundrytom/openassetio-go/errors"
	"github.com/foundrytom/openassetio-go/trait"
)

// Capability enumerates the features a manager implementation may
// declare. Values mirror hostapi.Capability one-for-one.
type Capability int

const (
	CapabilityStatefulContexts Capability = iota
	CapabilityCustomTerminology
	CapabilityResolution
	CapabilityPublishing
	CapabilityRelationshipQueries
	CapabilityExistenceQueries
	CapabilityDefaultEntityReferences
	CapabilityEntityReferenceIdentification
	CapabilityManagementPolicyQueries
	CapabilityEntityTraitIntrospection
)

var capabilityNames = [...]string{
	"statefulContexts",
	"customTerminology",
	"resolution",
	"publishing",
	"relationshipQueries",
	"existenceQueries",
	"defaultEntityReferences",
	"entityReferenceIdentification",
	"managementPolicyQueries",
	"entityTraitIntrospection",
}

// Name returns the stable name of the capability, as used in
// configuration error messages.
func (c Capability) Name() string {
	if c < CapabilityStatefulContexts || c > CapabilityEntityTraitIntrospection {
		return "unknown"
	}
	return capabilityNames[c]
}

// Batched operations deliver per-element results through these
// callbacks, invoked synchronously during the call, in any order with
// respect to input indices.
type (
	// BatchElementErrorCallback delivers the failure of one element.
	BatchElementErrorCallback func(index int, err oaerrors.BatchElementError)

	// ResolveSuccessCallback delivers one resolved element.
	ResolveSuccessCallback func(index int, data *trait.Data)

	// ExistsSuccessCallback delivers one existence check result.
	ExistsSuccessCallback func(index int, exists bool)

	// EntityTraitsSuccessCallback delivers one entity's trait set.
	EntityTraitsSuccessCallback func(index int, traits trait.Set)

	// EntityReferenceSuccessCallback delivers one published or
	// preflighted reference.
	EntityReferenceSuccessCallback func(index int, ref openassetio.EntityReference)

	// DefaultEntityReferenceSuccessCallback delivers one default
	// reference; nil signals the manager has none for the trait set.
	DefaultEntityReferenceSuccessCallback func(index int, ref *openassetio.EntityReference)

	// PagerSuccessCallback delivers one relationship query cursor.
	PagerSuccessCallback func(index int, pager EntityReferencePagerInterface)
)

// ManagerInterface is the contract a manager plug-in implements. The
// middleware's Manager facade wraps an implementation and enforces the
// API contract on its behalf; hosts never call these methods directly.
//
// Batched methods must invoke the two callbacks during the call, before
// returning, once per input element at most. The returned error covers
// whole-call failures only; per-element failures go through the error
// callback.
//
// Implementations embed ManagerInterfaceBase and override the methods
// for the capabilities they declare through HasCapability.
type ManagerInterface interface {
	// Identifier returns the manager's unique reverse-DNS identifier.
	Identifier() string

	// DisplayName returns the manager's human-readable name.
	DisplayName() string

	// Info returns descriptive properties. The middleware recognises
	// openassetio.InfoKeyEntityReferencesMatchPrefix.
	Info() openassetio.InfoDictionary

	// Settings returns the manager's current settings.
	Settings(session *HostSession) openassetio.Settings

	// Initialize applies settings and prepares the manager for entity
	// operations.
	Initialize(settings openassetio.Settings, session *HostSession) error

	// FlushCaches clears any internal caches.
	FlushCaches(session *HostSession)

	// UpdateTerminology substitutes the manager's preferred terms into
	// the given map and returns it.
	UpdateTerminology(terms map[string]string, session *HostSession) map[string]string

	// HasCapability reports whether the capability is implemented. Must
	// be callable before Initialize.
	HasCapability(capability Capability) bool

	// ManagementPolicy describes how the manager handles entities with
	// the given trait sets, one policy per input set.
	ManagementPolicy(traitSets []trait.Set, policyAccess access.PolicyAccess,
		ctx *openassetio.Context, session *HostSession) ([]*trait.Data, error)

	// IsEntityReferenceString checks whether the string should be
	// treated as one of the manager's entity references.
	IsEntityReferenceString(s string, session *HostSession) bool

	// EntityExists checks, per reference, whether the entity exists.
	EntityExists(refs []openassetio.EntityReference, ctx *openassetio.Context,
		session *HostSession,
		onSuccess ExistsSuccessCallback, onError BatchElementErrorCallback) error

	// EntityTraits returns, per reference, the full trait set of the
	// entity (read) or the traits required to publish to it (write).
	EntityTraits(refs []openassetio.EntityReference, entityTraitsAccess access.EntityTraitsAccess,
		ctx *openassetio.Context, session *HostSession,
		onSuccess EntityTraitsSuccessCallback, onError BatchElementErrorCallback) error

	// Resolve provides, per reference, the property data of the
	// requested traits.
	Resolve(refs []openassetio.EntityReference, traitSet trait.Set,
		resolveAccess access.ResolveAccess, ctx *openassetio.Context, session *HostSession,
		onSuccess ResolveSuccessCallback, onError BatchElementErrorCallback) error

	// DefaultEntityReference provides, per trait set, a sensible
	// starting reference for browsing or publishing, or nil when the
	// manager has none.
	DefaultEntityReference(traitSets []trait.Set, defaultEntityAccess access.DefaultEntityAccess,
		ctx *openassetio.Context, session *HostSession,
		onSuccess DefaultEntityReferenceSuccessCallback, onError BatchElementErrorCallback) error

	// Preflight readies the manager for publishing to each reference,
	// returning the reference to use for the subsequent Register.
	Preflight(refs []openassetio.EntityReference, hints []*trait.Data,
		publishingAccess access.PublishingAccess, ctx *openassetio.Context, session *HostSession,
		onSuccess EntityReferenceSuccessCallback, onError BatchElementErrorCallback) error

	// Register publishes each entity's data, returning the final
	// reference of the registered entity.
	Register(refs []openassetio.EntityReference, data []*trait.Data,
		publishingAccess access.PublishingAccess, ctx *openassetio.Context, session *HostSession,
		onSuccess EntityReferenceSuccessCallback, onError BatchElementErrorCallback) error

	// GetWithRelationship provides, per reference, a pager over the
	// entities related to it by the given relationship.
	GetWithRelationship(refs []openassetio.EntityReference, relationship *trait.Data,
		resultTraitSet trait.Set, pageSize int, relationsAccess access.RelationsAccess,
		ctx *openassetio.Context, session *HostSession,
		onSuccess PagerSuccessCallback, onError BatchElementErrorCallback) error

	// GetWithRelationships provides, per relationship, a pager over the
	// entities related to the given reference.
	GetWithRelationships(ref openassetio.EntityReference, relationships []*trait.Data,
		resultTraitSet trait.Set, pageSize int, relationsAccess access.RelationsAccess,
		ctx *openassetio.Context, session *HostSession,
		onSuccess PagerSuccessCallback, onError BatchElementErrorCallback) error

	// CreateState creates a new opaque state for a fresh Context.
	CreateState(session *HostSession) (openassetio.ManagerState, error)

	// CreateChildState creates a state scoped under the parent state.
	CreateChildState(parent openassetio.ManagerState, session *HostSession) (openassetio.ManagerState, error)

	// PersistenceTokenForState serialises the state into an opaque
	// token.
	PersistenceTokenForState(state openassetio.ManagerState, session *HostSession) (string, error)

	// StateFromPersistenceToken restores a state from a token.
	StateFromPersistenceToken(token string, session *HostSession) (openassetio.ManagerState, error)
}
