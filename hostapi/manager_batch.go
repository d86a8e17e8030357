package hostapi

import (
	"fmt"

	openassetio "github.com/foundrytom/openassetio-go"
	"github.com/foundrytom/openassetio-go/access"
	oaerrors "github.com/foundrytom/openassetio-go/errors"
	"github.com/foundrytom/openassetio-go/managerapi"
	"github.com/foundrytom/openassetio-go/trait"
)

// Each batched operation comes in four shapes routed through the same
// engine:
//
//   - Op(...)        callback form, forwarding to the interface
//   - OpBatch(...)   throwing policy, failing on the first element error
//   - OpResults(...) variant policy, embedding element errors
//   - OpOne(...)     singular form over a length-1 batch
//
// GetWithRelationships is the exception: it has the callback, Batch and
// Results forms but no One form.
//
// Returned batch slices are always in input-index order, whatever order
// the interface delivers its callbacks in.

// --- Resolve ---------------------------------------------------------

// Resolve queries the property data of the requested traits for each
// reference, delivering per-element results through the callbacks.
func (m *Manager) Resolve(refs []openassetio.EntityReference, traitSet trait.Set,
	resolveAccess access.ResolveAccess, ctx *openassetio.Context,
	onSuccess managerapi.ResolveSuccessCallback, onError managerapi.BatchElementErrorCallback) error {
	return m.iface.Resolve(refs, traitSet, resolveAccess, ctx, m.session, onSuccess, onError)
}

func (m *Manager) resolveAll(refs []openassetio.EntityReference, traitSet trait.Set,
	resolveAccess access.ResolveAccess, ctx *openassetio.Context,
) ([]Result[*trait.Data], *elementError, error) {
	return runBatch(len(refs), func(onSuccess func(int, *trait.Data), onError func(int, oaerrors.BatchElementError)) error {
		return m.iface.Resolve(refs, traitSet, resolveAccess, ctx, m.session,
			managerapi.ResolveSuccessCallback(onSuccess), onError)
	})
}

// ResolveBatch resolves all references, failing with a
// BatchElementException on the first per-element error.
func (m *Manager) ResolveBatch(refs []openassetio.EntityReference, traitSet trait.Set,
	resolveAccess access.ResolveAccess, ctx *openassetio.Context) ([]*trait.Data, error) {
	results, first, err := m.resolveAll(refs, traitSet, resolveAccess, ctx)
	if err != nil {
		return nil, err
	}
	return throwing(results, first, resolveAccess.Name(), entityFor(refs))
}

// ResolveResults resolves all references, embedding per-element errors
// in the returned sequence.
func (m *Manager) ResolveResults(refs []openassetio.EntityReference, traitSet trait.Set,
	resolveAccess access.ResolveAccess, ctx *openassetio.Context) ([]Result[*trait.Data], error) {
	results, _, err := m.resolveAll(refs, traitSet, resolveAccess, ctx)
	return results, err
}

// ResolveOne resolves a single reference.
func (m *Manager) ResolveOne(ref openassetio.EntityReference, traitSet trait.Set,
	resolveAccess access.ResolveAccess, ctx *openassetio.Context) (*trait.Data, error) {
	results, first, err := m.resolveAll([]openassetio.EntityReference{ref}, traitSet, resolveAccess, ctx)
	if err != nil {
		return nil, err
	}
	return singular(results, first, resolveAccess.Name(), ref.String())
}

// --- EntityExists ----------------------------------------------------

// EntityExists checks, per reference, whether the entity exists,
// delivering per-element results through the callbacks.
func (m *Manager) EntityExists(refs []openassetio.EntityReference, ctx *openassetio.Context,
	onSuccess managerapi.ExistsSuccessCallback, onError managerapi.BatchElementErrorCallback) error {
	return m.iface.EntityExists(refs, ctx, m.session, onSuccess, onError)
}

func (m *Manager) entityExistsAll(refs []openassetio.EntityReference, ctx *openassetio.Context,
) ([]Result[bool], *elementError, error) {
	return runBatch(len(refs), func(onSuccess func(int, bool), onError func(int, oaerrors.BatchElementError)) error {
		return m.iface.EntityExists(refs, ctx, m.session,
			managerapi.ExistsSuccessCallback(onSuccess), onError)
	})
}

// EntityExistsBatch checks all references, failing with a
// BatchElementException on the first per-element error.
func (m *Manager) EntityExistsBatch(refs []openassetio.EntityReference,
	ctx *openassetio.Context) ([]bool, error) {
	results, first, err := m.entityExistsAll(refs, ctx)
	if err != nil {
		return nil, err
	}
	return throwing(results, first, "", entityFor(refs))
}

// EntityExistsResults checks all references, embedding per-element
// errors in the returned sequence.
func (m *Manager) EntityExistsResults(refs []openassetio.EntityReference,
	ctx *openassetio.Context) ([]Result[bool], error) {
	results, _, err := m.entityExistsAll(refs, ctx)
	return results, err
}

// EntityExistsOne checks a single reference.
func (m *Manager) EntityExistsOne(ref openassetio.EntityReference,
	ctx *openassetio.Context) (bool, error) {
	results, first, err := m.entityExistsAll([]openassetio.EntityReference{ref}, ctx)
	if err != nil {
		return false, err
	}
	return singular(results, first, "", ref.String())
}

// --- EntityTraits ----------------------------------------------------

// EntityTraits queries, per reference, the trait set of the entity
// (read) or the traits required to publish to it (write), delivering
// per-element results through the callbacks.
func (m *Manager) EntityTraits(refs []openassetio.EntityReference,
	entityTraitsAccess access.EntityTraitsAccess, ctx *openassetio.Context,
	onSuccess managerapi.EntityTraitsSuccessCallback, onError managerapi.BatchElementErrorCallback) error {
	return m.iface.EntityTraits(refs, entityTraitsAccess, ctx, m.session, onSuccess, onError)
}

func (m *Manager) entityTraitsAll(refs []openassetio.EntityReference,
	entityTraitsAccess access.EntityTraitsAccess, ctx *openassetio.Context,
) ([]Result[trait.Set], *elementError, error) {
	return runBatch(len(refs), func(onSuccess func(int, trait.Set), onError func(int, oaerrors.BatchElementError)) error {
		return m.iface.EntityTraits(refs, entityTraitsAccess, ctx, m.session,
			managerapi.EntityTraitsSuccessCallback(onSuccess), onError)
	})
}

// EntityTraitsBatch queries all references, failing with a
// BatchElementException on the first per-element error.
func (m *Manager) EntityTraitsBatch(refs []openassetio.EntityReference,
	entityTraitsAccess access.EntityTraitsAccess, ctx *openassetio.Context) ([]trait.Set, error) {
	results, first, err := m.entityTraitsAll(refs, entityTraitsAccess, ctx)
	if err != nil {
		return nil, err
	}
	return throwing(results, first, entityTraitsAccess.Name(), entityFor(refs))
}

// EntityTraitsResults queries all references, embedding per-element
// errors in the returned sequence.
func (m *Manager) EntityTraitsResults(refs []openassetio.EntityReference,
	entityTraitsAccess access.EntityTraitsAccess, ctx *openassetio.Context) ([]Result[trait.Set], error) {
	results, _, err := m.entityTraitsAll(refs, entityTraitsAccess, ctx)
	return results, err
}

// EntityTraitsOne queries a single reference.
func (m *Manager) EntityTraitsOne(ref openassetio.EntityReference,
	entityTraitsAccess access.EntityTraitsAccess, ctx *openassetio.Context) (trait.Set, error) {
	results, first, err := m.entityTraitsAll([]openassetio.EntityReference{ref}, entityTraitsAccess, ctx)
	if err != nil {
		return nil, err
	}
	return singular(results, first, entityTraitsAccess.Name(), ref.String())
}

// --- DefaultEntityReference ------------------------------------------

// DefaultEntityReference queries, per trait set, a sensible reference
// to start browsing or publishing from, delivering per-element results
// through the callbacks. A nil success value means the manager has no
// default for that trait set.
func (m *Manager) DefaultEntityReference(traitSets []trait.Set,
	defaultEntityAccess access.DefaultEntityAccess, ctx *openassetio.Context,
	onSuccess managerapi.DefaultEntityReferenceSuccessCallback,
	onError managerapi.BatchElementErrorCallback) error {
	return m.iface.DefaultEntityReference(traitSets, defaultEntityAccess, ctx, m.session, onSuccess, onError)
}

func (m *Manager) defaultEntityReferenceAll(traitSets []trait.Set,
	defaultEntityAccess access.DefaultEntityAccess, ctx *openassetio.Context,
) ([]Result[*openassetio.EntityReference], *elementError, error) {
	return runBatch(len(traitSets), func(onSuccess func(int, *openassetio.EntityReference),
		onError func(int, oaerrors.BatchElementError)) error {
		return m.iface.DefaultEntityReference(traitSets, defaultEntityAccess, ctx, m.session,
			managerapi.DefaultEntityReferenceSuccessCallback(onSuccess), onError)
	})
}

// DefaultEntityReferenceBatch queries all trait sets, failing with a
// BatchElementException on the first per-element error.
func (m *Manager) DefaultEntityReferenceBatch(traitSets []trait.Set,
	defaultEntityAccess access.DefaultEntityAccess,
	ctx *openassetio.Context) ([]*openassetio.EntityReference, error) {
	results, first, err := m.defaultEntityReferenceAll(traitSets, defaultEntityAccess, ctx)
	if err != nil {
		return nil, err
	}
	return throwing(results, first, defaultEntityAccess.Name(), nil)
}

// DefaultEntityReferenceResults queries all trait sets, embedding
// per-element errors in the returned sequence.
func (m *Manager) DefaultEntityReferenceResults(traitSets []trait.Set,
	defaultEntityAccess access.DefaultEntityAccess,
	ctx *openassetio.Context) ([]Result[*openassetio.EntityReference], error) {
	results, _, err := m.defaultEntityReferenceAll(traitSets, defaultEntityAccess, ctx)
	return results, err
}

// DefaultEntityReferenceOne queries a single trait set.
func (m *Manager) DefaultEntityReferenceOne(traitSet trait.Set,
	defaultEntityAccess access.DefaultEntityAccess,
	ctx *openassetio.Context) (*openassetio.EntityReference, error) {
	results, first, err := m.defaultEntityReferenceAll([]trait.Set{traitSet}, defaultEntityAccess, ctx)
	if err != nil {
		return nil, err
	}
	return singular(results, first, defaultEntityAccess.Name(), "")
}

// --- Preflight -------------------------------------------------------

func validatePublishInputs(refs []openassetio.EntityReference, data []*trait.Data,
	dataDescription string) error {
	if len(refs) != len(data) {
		return oaerrors.NewInputValidationError(fmt.Sprintf(
			"Parameter lists must be of the same length: %d entity references vs. %d %s.",
			len(refs), len(data), dataDescription))
	}
	for i, d := range data {
		if d == nil {
			return oaerrors.NewInputValidationError(fmt.Sprintf(
				"Traits data at index %d must not be nil.", i))
		}
	}
	return nil
}

// Preflight readies the manager for publishing to each reference,
// delivering the references to use for the subsequent Register through
// the callbacks. Hints carry any already-known traits of the data to be
// published.
func (m *Manager) Preflight(refs []openassetio.EntityReference, hints []*trait.Data,
	publishingAccess access.PublishingAccess, ctx *openassetio.Context,
	onSuccess managerapi.EntityReferenceSuccessCallback,
	onError managerapi.BatchElementErrorCallback) error {
	if err := validatePublishInputs(refs, hints, "traits hints"); err != nil {
		return err
	}
	return m.iface.Preflight(refs, hints, publishingAccess, ctx, m.session, onSuccess, onError)
}

func (m *Manager) preflightAll(refs []openassetio.EntityReference, hints []*trait.Data,
	publishingAccess access.PublishingAccess, ctx *openassetio.Context,
) ([]Result[openassetio.EntityReference], *elementError, error) {
	if err := validatePublishInputs(refs, hints, "traits hints"); err != nil {
		return nil, nil, err
	}
	return runBatch(len(refs), func(onSuccess func(int, openassetio.EntityReference),
		onError func(int, oaerrors.BatchElementError)) error {
		return m.iface.Preflight(refs, hints, publishingAccess, ctx, m.session,
			managerapi.EntityReferenceSuccessCallback(onSuccess), onError)
	})
}

// PreflightBatch preflights all references, failing with a
// BatchElementException on the first per-element error.
func (m *Manager) PreflightBatch(refs []openassetio.EntityReference, hints []*trait.Data,
	publishingAccess access.PublishingAccess,
	ctx *openassetio.Context) ([]openassetio.EntityReference, error) {
	results, first, err := m.preflightAll(refs, hints, publishingAccess, ctx)
	if err != nil {
		return nil, err
	}
	return throwing(results, first, publishingAccess.Name(), entityFor(refs))
}

// PreflightResults preflights all references, embedding per-element
// errors in the returned sequence.
func (m *Manager) PreflightResults(refs []openassetio.EntityReference, hints []*trait.Data,
	publishingAccess access.PublishingAccess,
	ctx *openassetio.Context) ([]Result[openassetio.EntityReference], error) {
	results, _, err := m.preflightAll(refs, hints, publishingAccess, ctx)
	return results, err
}

// PreflightOne preflights a single reference.
func (m *Manager) PreflightOne(ref openassetio.EntityReference, hint *trait.Data,
	publishingAccess access.PublishingAccess,
	ctx *openassetio.Context) (openassetio.EntityReference, error) {
	if hint == nil {
		return openassetio.EntityReference{}, oaerrors.NewInputValidationError(
			"Traits hint must not be nil.")
	}
	results, first, err := m.preflightAll(
		[]openassetio.EntityReference{ref}, []*trait.Data{hint}, publishingAccess, ctx)
	if err != nil {
		return openassetio.EntityReference{}, err
	}
	return singular(results, first, publishingAccess.Name(), ref.String())
}

// --- Register --------------------------------------------------------

// Register publishes each entity's data, delivering the final
// references of the registered entities through the callbacks.
func (m *Manager) Register(refs []openassetio.EntityReference, data []*trait.Data,
	publishingAccess access.PublishingAccess, ctx *openassetio.Context,
	onSuccess managerapi.EntityReferenceSuccessCallback,
	onError managerapi.BatchElementErrorCallback) error {
	if err := validatePublishInputs(refs, data, "traits datas"); err != nil {
		return err
	}
	return m.iface.Register(refs, data, publishingAccess, ctx, m.session, onSuccess, onError)
}

func (m *Manager) registerAll(refs []openassetio.EntityReference, data []*trait.Data,
	publishingAccess access.PublishingAccess, ctx *openassetio.Context,
) ([]Result[openassetio.EntityReference], *elementError, error) {
	if err := validatePublishInputs(refs, data, "traits datas"); err != nil {
		return nil, nil, err
	}
	return runBatch(len(refs), func(onSuccess func(int, openassetio.EntityReference),
		onError func(int, oaerrors.BatchElementError)) error {
		return m.iface.Register(refs, data, publishingAccess, ctx, m.session,
			managerapi.EntityReferenceSuccessCallback(onSuccess), onError)
	})
}

// RegisterBatch registers all entities, failing with a
// BatchElementException on the first per-element error.
func (m *Manager) RegisterBatch(refs []openassetio.EntityReference, data []*trait.Data,
	publishingAccess access.PublishingAccess,
	ctx *openassetio.Context) ([]openassetio.EntityReference, error) {
	results, first, err := m.registerAll(refs, data, publishingAccess, ctx)
	if err != nil {
		return nil, err
	}
	return throwing(results, first, publishingAccess.Name(), entityFor(refs))
}

// RegisterResults registers all entities, embedding per-element errors
// in the returned sequence.
func (m *Manager) RegisterResults(refs []openassetio.EntityReference, data []*trait.Data,
	publishingAccess access.PublishingAccess,
	ctx *openassetio.Context) ([]Result[openassetio.EntityReference], error) {
	results, _, err := m.registerAll(refs, data, publishingAccess, ctx)
	return results, err
}

// RegisterOne registers a single entity.
func (m *Manager) RegisterOne(ref openassetio.EntityReference, data *trait.Data,
	publishingAccess access.PublishingAccess,
	ctx *openassetio.Context) (openassetio.EntityReference, error) {
	if data == nil {
		return openassetio.EntityReference{}, oaerrors.NewInputValidationError(
			"Traits data must not be nil.")
	}
	results, first, err := m.registerAll(
		[]openassetio.EntityReference{ref}, []*trait.Data{data}, publishingAccess, ctx)
	if err != nil {
		return openassetio.EntityReference{}, err
	}
	return singular(results, first, publishingAccess.Name(), ref.String())
}
