package managerapi

import (
	"fmt"

	openassetio "github.com/foundrytom/openassetio-go"
	"github.com/foundrytom/openassetio-go/access"
	oaerrors "github.com/foundrytom/openassetio-go/errors"
	"github.com/foundrytom/openassetio-go/trait"
)

// ManagerInterfaceBase is a partial ManagerInterface implementation for
// embedding. Optional-capability methods fail with NotImplementedError,
// so a manager only overrides what it declares through HasCapability.
// Identifier and DisplayName are intentionally absent; every manager
// must provide them.
type ManagerInterfaceBase struct{}

func notImplemented(method string) error {
	return oaerrors.NewNotImplementedError(fmt.Sprintf("%s is not implemented by this manager", method))
}

// Info returns an empty dictionary.
func (ManagerInterfaceBase) Info() openassetio.InfoDictionary {
	return openassetio.InfoDictionary{}
}

// Settings returns an empty settings map.
func (ManagerInterfaceBase) Settings(*HostSession) openassetio.Settings {
	return openassetio.Settings{}
}

// Initialize accepts no settings.
func (ManagerInterfaceBase) Initialize(settings openassetio.Settings, _ *HostSession) error {
	if len(settings) > 0 {
		return oaerrors.NewInputValidationError("this manager does not accept any settings")
	}
	return nil
}

// FlushCaches is a no-op.
func (ManagerInterfaceBase) FlushCaches(*HostSession) {}

// UpdateTerminology returns the terms unchanged.
func (ManagerInterfaceBase) UpdateTerminology(terms map[string]string, _ *HostSession) map[string]string {
	return terms
}

// HasCapability declares nothing.
func (ManagerInterfaceBase) HasCapability(Capability) bool {
	return false
}

// ManagementPolicy fails; managers must implement it, as the capability
// is required.
func (ManagerInterfaceBase) ManagementPolicy([]trait.Set, access.PolicyAccess,
	*openassetio.Context, *HostSession) ([]*trait.Data, error) {
	return nil, notImplemented("managementPolicy")
}

// IsEntityReferenceString reports false for every string; managers must
// implement it, as the capability is required.
func (ManagerInterfaceBase) IsEntityReferenceString(string, *HostSession) bool {
	return false
}

func (ManagerInterfaceBase) EntityExists([]openassetio.EntityReference, *openassetio.Context,
	*HostSession, ExistsSuccessCallback, BatchElementErrorCallback) error {
	return notImplemented("entityExists")
}

func (ManagerInterfaceBase) EntityTraits([]openassetio.EntityReference, access.EntityTraitsAccess,
	*openassetio.Context, *HostSession, EntityTraitsSuccessCallback, BatchElementErrorCallback) error {
	return notImplemented("entityTraits")
}

func (ManagerInterfaceBase) Resolve([]openassetio.EntityReference, trait.Set,
	access.ResolveAccess, *openassetio.Context, *HostSession,
	ResolveSuccessCallback, BatchElementErrorCallback) error {
	return notImplemented("resolve")
}

func (ManagerInterfaceBase) DefaultEntityReference([]trait.Set, access.DefaultEntityAccess,
	*openassetio.Context, *HostSession,
	DefaultEntityReferenceSuccessCallback, BatchElementErrorCallback) error {
	return notImplemented("defaultEntityReference")
}

func (ManagerInterfaceBase) Preflight([]openassetio.EntityReference, []*trait.Data,
	access.PublishingAccess, *openassetio.Context, *HostSession,
	EntityReferenceSuccessCallback, BatchElementErrorCallback) error {
	return notImplemented("preflight")
}

func (ManagerInterfaceBase) Register([]openassetio.EntityReference, []*trait.Data,
	access.PublishingAccess, *openassetio.Context, *HostSession,
	EntityReferenceSuccessCallback, BatchElementErrorCallback) error {
	return notImplemented("register")
}

func (ManagerInterfaceBase) GetWithRelationship([]openassetio.EntityReference, *trait.Data,
	trait.Set, int, access.RelationsAccess, *openassetio.Context, *HostSession,
	PagerSuccessCallback, BatchElementErrorCallback) error {
	return notImplemented("getWithRelationship")
}

func (ManagerInterfaceBase) GetWithRelationships(openassetio.EntityReference, []*trait.Data,
	trait.Set, int, access.RelationsAccess, *openassetio.Context, *HostSession,
	PagerSuccessCallback, BatchElementErrorCallback) error {
	return notImplemented("getWithRelationships")
}

func (ManagerInterfaceBase) CreateState(*HostSession) (openassetio.ManagerState, error) {
	return nil, notImplemented("createState")
}

func (ManagerInterfaceBase) CreateChildState(openassetio.ManagerState, *HostSession) (openassetio.ManagerState, error) {
	return nil, notImplemented("createChildState")
}

func (ManagerInterfaceBase) PersistenceTokenForState(openassetio.ManagerState, *HostSession) (string, error) {
	return "", notImplemented("persistenceTokenForState")
}

func (ManagerInterfaceBase) StateFromPersistenceToken(string, *HostSession) (openassetio.ManagerState, error) {
	return nil, notImplemented("stateFromPersistenceToken")
}
