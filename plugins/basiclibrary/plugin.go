package basiclibrary

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	openassetio "github.com/foundrytom/openassetio-go"
	"github.com/foundrytom/openassetio-go/access"
	oaerrors "github.com/foundrytom/openassetio-go/errors"
	"github.com/foundrytom/openassetio-go/managerapi"
	"github.com/foundrytom/openassetio-go/pluginsystem"
	"github.com/foundrytom/openassetio-go/trait"
)

// Identifier is the manager identifier of the basic library manager.
const Identifier = "org.openassetio.examples.manager.basiclibrary"

// ReferencePrefix starts every entity reference of this manager, and is
// published through the info() prefix key so the middleware can
// short-circuit reference identification.
const ReferencePrefix = "bal:///"

// LibraryPathSetting configures the YAML asset library to serve.
const LibraryPathSetting = "library_path"

// Plugin is the plug-in surface, exposed under the conventional symbol
// name for shared-library discovery.
var Plugin pluginsystem.ManagerPlugin = &managerPlugin{}

// Register adds the plug-in to the default entry point group, making it
// discoverable by any PluginSystem in the process.
func Register() {
	pluginsystem.RegisterEntryPointPlugin(pluginsystem.DefaultEntryPointGroup, Plugin)
}

type managerPlugin struct{}

func (*managerPlugin) Identifier() string {
	return Identifier
}

func (*managerPlugin) Interface() (managerapi.ManagerInterface, error) {
	return NewManagerInterface(), nil
}

// libraryState tags a stateful context. Tokens round-trip the id.
type libraryState struct {
	openassetio.ManagerStateBase
	id uuid.UUID
}

// ManagerInterface is the basic library's manager implementation.
type ManagerInterface struct {
	managerapi.ManagerInterfaceBase

	settings openassetio.Settings
	library  *library
}

// NewManagerInterface creates an uninitialized instance.
func NewManagerInterface() *ManagerInterface {
	return &ManagerInterface{settings: openassetio.Settings{}, library: newLibrary()}
}

func (*ManagerInterface) Identifier() string {
	return Identifier
}

func (*ManagerInterface) DisplayName() string {
	return "Basic Asset Library"
}

func (*ManagerInterface) Info() openassetio.InfoDictionary {
	return openassetio.InfoDictionary{
		openassetio.InfoKeyEntityReferencesMatchPrefix: ReferencePrefix,
	}
}

func (m *ManagerInterface) Settings(*managerapi.HostSession) openassetio.Settings {
	out := make(openassetio.Settings, len(m.settings))
	for key, value := range m.settings {
		out[key] = value
	}
	return out
}

// Initialize loads the configured asset library. Without a
// library_path setting the manager starts with an empty library.
func (m *ManagerInterface) Initialize(settings openassetio.Settings, _ *managerapi.HostSession) error {
	if value, ok := settings[LibraryPathSetting]; ok {
		path, ok := value.(string)
		if !ok {
			return oaerrors.NewInputValidationError(
				fmt.Sprintf("%s setting must be a string", LibraryPathSetting))
		}
		lib, err := loadLibrary(path)
		if err != nil {
			return oaerrors.NewConfigurationError(
				fmt.Sprintf("Could not load asset library from '%s'", path), err)
		}
		m.library = lib
	}
	for key, value := range settings {
		m.settings[key] = value
	}
	return nil
}

func (*ManagerInterface) HasCapability(capability managerapi.Capability) bool {
	switch capability {
	case managerapi.CapabilityEntityReferenceIdentification,
		managerapi.CapabilityManagementPolicyQueries,
		managerapi.CapabilityEntityTraitIntrospection,
		managerapi.CapabilityResolution,
		managerapi.CapabilityPublishing,
		managerapi.CapabilityExistenceQueries,
		managerapi.CapabilityDefaultEntityReferences,
		managerapi.CapabilityStatefulContexts:
		return true
	default:
		return false
	}
}

// ManagementPolicy claims management of every queried trait by imbuing
// the requested traits in each policy result.
func (*ManagerInterface) ManagementPolicy(traitSets []trait.Set, _ access.PolicyAccess,
	_ *openassetio.Context, _ *managerapi.HostSession) ([]*trait.Data, error) {
	policies := make([]*trait.Data, len(traitSets))
	for i, traitSet := range traitSets {
		policies[i] = trait.NewDataWithTraitSet(traitSet)
	}
	return policies, nil
}

func (*ManagerInterface) IsEntityReferenceString(s string, _ *managerapi.HostSession) bool {
	return strings.HasPrefix(s, ReferencePrefix)
}

func missingEntityError(ref openassetio.EntityReference) oaerrors.BatchElementError {
	return oaerrors.BatchElementError{
		Code:    oaerrors.ErrorCodeEntityResolutionError,
		Message: fmt.Sprintf("Entity '%s' not found", ref.String()),
	}
}

func (m *ManagerInterface) EntityExists(refs []openassetio.EntityReference,
	_ *openassetio.Context, _ *managerapi.HostSession,
	onSuccess managerapi.ExistsSuccessCallback, _ managerapi.BatchElementErrorCallback) error {
	for i, ref := range refs {
		_, ok := m.library.asset(ref.String())
		onSuccess(i, ok)
	}
	return nil
}

func (m *ManagerInterface) EntityTraits(refs []openassetio.EntityReference,
	_ access.EntityTraitsAccess, _ *openassetio.Context, _ *managerapi.HostSession,
	onSuccess managerapi.EntityTraitsSuccessCallback, onError managerapi.BatchElementErrorCallback) error {
	for i, ref := range refs {
		asset, ok := m.library.asset(ref.String())
		if !ok {
			onError(i, missingEntityError(ref))
			continue
		}
		onSuccess(i, asset.TraitSet())
	}
	return nil
}

// Resolve returns, per entity, the requested traits the library holds
// data for. Requested traits the entity lacks are simply absent from
// the result.
func (m *ManagerInterface) Resolve(refs []openassetio.EntityReference, traitSet trait.Set,
	_ access.ResolveAccess, _ *openassetio.Context, _ *managerapi.HostSession,
	onSuccess managerapi.ResolveSuccessCallback, onError managerapi.BatchElementErrorCallback) error {
	for i, ref := range refs {
		asset, ok := m.library.asset(ref.String())
		if !ok {
			onError(i, missingEntityError(ref))
			continue
		}
		result := trait.NewData()
		traitSet.Each(func(traitID string) bool {
			if !asset.HasTrait(traitID) {
				return false
			}
			result.AddTrait(traitID)
			asset.TraitPropertyKeys(traitID).Each(func(key string) bool {
				if value, ok := asset.TraitProperty(traitID, key); ok {
					_ = result.SetTraitProperty(traitID, key, value)
				}
				return false
			})
			return false
		})
		onSuccess(i, result)
	}
	return nil
}

func (m *ManagerInterface) DefaultEntityReference(traitSets []trait.Set,
	_ access.DefaultEntityAccess, _ *openassetio.Context, _ *managerapi.HostSession,
	onSuccess managerapi.DefaultEntityReferenceSuccessCallback,
	_ managerapi.BatchElementErrorCallback) error {
	for i := range traitSets {
		if m.library.defaultRef == "" {
			onSuccess(i, nil)
			continue
		}
		ref := openassetio.NewEntityReference(m.library.defaultRef)
		onSuccess(i, &ref)
	}
	return nil
}

// Preflight accepts every publish; references are stable, so the
// working reference is the input reference.
func (*ManagerInterface) Preflight(refs []openassetio.EntityReference, _ []*trait.Data,
	_ access.PublishingAccess, _ *openassetio.Context, _ *managerapi.HostSession,
	onSuccess managerapi.EntityReferenceSuccessCallback, _ managerapi.BatchElementErrorCallback) error {
	for i, ref := range refs {
		onSuccess(i, ref)
	}
	return nil
}

func (m *ManagerInterface) Register(refs []openassetio.EntityReference, data []*trait.Data,
	_ access.PublishingAccess, _ *openassetio.Context, _ *managerapi.HostSession,
	onSuccess managerapi.EntityReferenceSuccessCallback, _ managerapi.BatchElementErrorCallback) error {
	for i, ref := range refs {
		m.library.store(ref.String(), data[i])
		onSuccess(i, ref)
	}
	return nil
}

func (*ManagerInterface) CreateState(*managerapi.HostSession) (openassetio.ManagerState, error) {
	return &libraryState{id: uuid.New()}, nil
}

func (*ManagerInterface) CreateChildState(parent openassetio.ManagerState,
	_ *managerapi.HostSession) (openassetio.ManagerState, error) {
	if _, ok := parent.(*libraryState); !ok {
		return nil, oaerrors.NewInputValidationError("unknown manager state type")
	}
	return &libraryState{id: uuid.New()}, nil
}

func (*ManagerInterface) PersistenceTokenForState(state openassetio.ManagerState,
	_ *managerapi.HostSession) (string, error) {
	libState, ok := state.(*libraryState)
	if !ok {
		return "", oaerrors.NewInputValidationError("unknown manager state type")
	}
	return libState.id.String(), nil
}

func (*ManagerInterface) StateFromPersistenceToken(token string,
	_ *managerapi.HostSession) (openassetio.ManagerState, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, oaerrors.NewInputValidationError(
			fmt.Sprintf("invalid persistence token '%s'", token))
	}
	return &libraryState{id: id}, nil
}
