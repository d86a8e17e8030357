// Package hostapi provides the host-facing middleware: the Manager
// facade that wraps a managerapi.ManagerInterface and enforces the API
// contract on its behalf, the paged-result wrapper for relationship
// queries, and the factory that ties plug-in discovery to Manager
// construction.
package hostapi

import (
	"fmt"
	"strings"

	openassetio "github.com/foundrytom/openassetio-go"
	"github.com/foundrytom/openassetio-go/access"
	oaerrors "github.com/foundrytom/openassetio-go/errors"
	"github.com/foundrytom/openassetio-go/log"
	"github.com/foundrytom/openassetio-go/managerapi"
	"github.com/foundrytom/openassetio-go/trait"
)

// Capability enumerates the features a manager may support. Values
// mirror managerapi.Capability one-for-one.
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

// Name returns the stable name of the capability.
func (c Capability) Name() string {
	return managerapi.Capability(c).Name()
}

// requiredCapabilities are checked at Initialize, in this order.
var requiredCapabilities = []managerapi.Capability{
	managerapi.CapabilityEntityReferenceIdentification,
	managerapi.CapabilityManagementPolicyQueries,
	managerapi.CapabilityEntityTraitIntrospection,
}

// Manager is the host's view of an asset management system. It owns a
// ManagerInterface implementation and the HostSession for the duration
// of its lifetime, validating inputs and collating batched results so
// plug-ins see a uniform contract.
//
// A Manager is not usable for entity operations until Initialize
// succeeds.
type Manager struct {
	iface   managerapi.ManagerInterface
	session *managerapi.HostSession

	// Prefix fast path for IsEntityReferenceString, cached from the
	// manager's info() during Initialize.
	entityReferencePrefix    string
	hasEntityReferencePrefix bool
}

// NewManager wraps a manager implementation for use by a host.
func NewManager(iface managerapi.ManagerInterface, session *managerapi.HostSession) (*Manager, error) {
	if iface == nil {
		return nil, oaerrors.NewInputValidationError("ManagerInterface must not be nil")
	}
	if session == nil {
		return nil, oaerrors.NewInputValidationError("HostSession must not be nil")
	}
	return &Manager{iface: iface, session: session}, nil
}

// Identifier returns the manager's unique reverse-DNS identifier.
func (m *Manager) Identifier() string {
	return m.iface.Identifier()
}

// DisplayName returns the manager's human-readable name.
func (m *Manager) DisplayName() string {
	return m.iface.DisplayName()
}

// Info returns the manager's descriptive properties.
func (m *Manager) Info() openassetio.InfoDictionary {
	return m.iface.Info()
}

// Settings returns the manager's current settings.
func (m *Manager) Settings() openassetio.Settings {
	return m.iface.Settings(m.session)
}

// Initialize applies settings to the manager and readies it for entity
// operations. The manager must declare the required capabilities
// (entityReferenceIdentification, managementPolicyQueries,
// entityTraitIntrospection) or a ConfigurationError is returned. On
// success, the manager's info() is re-read to arm the entity reference
// prefix fast path.
func (m *Manager) Initialize(settings openassetio.Settings) error {
	m.entityReferencePrefix = ""
	m.hasEntityReferencePrefix = false

	if err := m.iface.Initialize(settings, m.session); err != nil {
		return err
	}

	var missing []string
	for _, capability := range requiredCapabilities {
		if !m.iface.HasCapability(capability) {
			missing = append(missing, capability.Name())
		}
	}
	if len(missing) > 0 {
		return oaerrors.NewConfigurationError(fmt.Sprintf(
			"Manager implementation for '%s' does not support the required capabilities: %s",
			m.iface.Identifier(), strings.Join(missing, ", ")), nil)
	}

	if value, ok := m.iface.Info()[openassetio.InfoKeyEntityReferencesMatchPrefix]; ok {
		if prefix, ok := value.(string); ok {
			m.entityReferencePrefix = prefix
			m.hasEntityReferencePrefix = true
			m.session.Logger().Log(log.SeverityDebugAPI, fmt.Sprintf(
				"Entity reference prefix '%s' provided by manager's info() dict."+
					" Subsequent calls to isEntityReferenceString will use this prefix rather"+
					" than call the manager's implementation.", prefix))
		} else {
			m.session.Logger().Log(log.SeverityWarning,
				"Entity reference prefix given but is an invalid type: should be a string.")
		}
	}
	return nil
}

// FlushCaches tells the manager to clear any internal caches, e.g. when
// the host knows stale results are no longer acceptable.
func (m *Manager) FlushCaches() {
	m.iface.FlushCaches(m.session)
}

// UpdateTerminology gives the manager a chance to substitute its
// preferred terms into the host's UI strings. The input map is not
// mutated.
func (m *Manager) UpdateTerminology(terms map[string]string) map[string]string {
	copied := make(map[string]string, len(terms))
	for key, value := range terms {
		copied[key] = value
	}
	return m.iface.UpdateTerminology(copied, m.session)
}

// HasCapability reports whether the manager supports the capability.
// Only valid once Initialize has succeeded.
func (m *Manager) HasCapability(capability Capability) bool {
	return m.iface.HasCapability(managerapi.Capability(capability))
}

// ManagementPolicy describes how the manager handles entities with the
// given trait sets. The returned slice holds one policy per input set,
// in input order.
func (m *Manager) ManagementPolicy(traitSets []trait.Set, policyAccess access.PolicyAccess,
	ctx *openassetio.Context) ([]*trait.Data, error) {
	return m.iface.ManagementPolicy(traitSets, policyAccess, ctx, m.session)
}

// IsEntityReferenceString checks whether the string should be treated
// as one of the manager's entity references. When the manager published
// a reference prefix, the check is a string prefix match and the
// manager is not consulted.
func (m *Manager) IsEntityReferenceString(s string) bool {
	if m.hasEntityReferencePrefix {
		return strings.HasPrefix(s, m.entityReferencePrefix)
	}
	return m.iface.IsEntityReferenceString(s, m.session)
}

// CreateEntityReference validates and wraps a reference string,
// failing with an InputValidationError when the manager does not
// recognise it.
func (m *Manager) CreateEntityReference(s string) (openassetio.EntityReference, error) {
	if !m.IsEntityReferenceString(s) {
		return openassetio.EntityReference{}, oaerrors.NewInputValidationError(
			"Invalid entity reference: " + s)
	}
	return openassetio.NewEntityReference(s), nil
}

// CreateEntityReferenceIfValid validates and wraps a reference string,
// returning nil when the manager does not recognise it.
func (m *Manager) CreateEntityReferenceIfValid(s string) *openassetio.EntityReference {
	if !m.IsEntityReferenceString(s) {
		return nil
	}
	ref := openassetio.NewEntityReference(s)
	return &ref
}

// CreateContext creates a Context with an empty locale. Managers with
// the statefulContexts capability are asked for a fresh state; others
// are not consulted and the context carries none.
func (m *Manager) CreateContext() (*openassetio.Context, error) {
	ctx := openassetio.NewContext()
	if m.iface.HasCapability(managerapi.CapabilityStatefulContexts) {
		state, err := m.iface.CreateState(m.session)
		if err != nil {
			return nil, err
		}
		ctx.ManagerState = state
	}
	return ctx, nil
}

// CreateChildContext creates a Context scoped under the parent: the
// locale is deep-copied, and when the parent carries manager state a
// child state is obtained from the manager. A parent without state
// yields a stateless child without consulting the manager.
func (m *Manager) CreateChildContext(parent *openassetio.Context) (*openassetio.Context, error) {
	if parent == nil {
		return nil, oaerrors.NewInputValidationError("parent context must not be nil")
	}
	child := openassetio.NewContext()
	if parent.Locale != nil {
		child.Locale = parent.Locale.Copy()
	}
	if parent.HasManagerState() {
		state, err := m.iface.CreateChildState(parent.ManagerState, m.session)
		if err != nil {
			return nil, err
		}
		child.ManagerState = state
	}
	return child, nil
}

// PersistenceTokenForContext serialises the context's manager state
// into an opaque token suitable for persistence or transmission. A
// context without state yields the empty string without consulting the
// manager.
func (m *Manager) PersistenceTokenForContext(ctx *openassetio.Context) (string, error) {
	if ctx == nil || !ctx.HasManagerState() {
		return "", nil
	}
	return m.iface.PersistenceTokenForState(ctx.ManagerState, m.session)
}

// ContextFromPersistenceToken restores a Context from a persistence
// token. The empty token yields a stateless Context without consulting
// the manager.
func (m *Manager) ContextFromPersistenceToken(token string) (*openassetio.Context, error) {
	ctx := openassetio.NewContext()
	if token == "" {
		return ctx, nil
	}
	state, err := m.iface.StateFromPersistenceToken(token, m.session)
	if err != nil {
		return nil, err
	}
	ctx.ManagerState = state
	return ctx, nil
}

// entityFor renders the entity reference at the index for exception
// messages, or nothing when the index is out of range.
func entityFor(refs []openassetio.EntityReference) func(int) string {
	return func(index int) string {
		if index < 0 || index >= len(refs) {
			return ""
		}
		return refs[index].String()
	}
}
