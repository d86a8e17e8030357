package hostapi

import (
	openassetio "github.com/foundrytom/openassetio-go"
	"github.com/foundrytom/openassetio-go/access"
	oaerrors "github.com/foundrytom/openassetio-go/errors"
	"github.com/foundrytom/openassetio-go/managerapi"
	"github.com/foundrytom/openassetio-go/trait"
)

// RelationshipSuccessCallback delivers one relationship query result as
// a host-facing pager.
type RelationshipSuccessCallback func(index int, pager *EntityReferencePager)

func (m *Manager) validateRelationshipInputs(pageSize int, resultTraitSet trait.Set) (trait.Set, error) {
	if pageSize <= 0 {
		return nil, oaerrors.NewInputValidationError("pageSize must be greater than zero.")
	}
	if resultTraitSet == nil {
		resultTraitSet = trait.NewSet()
	}
	return resultTraitSet, nil
}

// wrapPagerCallback adapts the host's pager callback to the interface's
// raw pager delivery, wrapping each pager with the session and keeping
// the underlying interface alive for the wrapper's lifetime.
func (m *Manager) wrapPagerCallback(onSuccess RelationshipSuccessCallback) managerapi.PagerSuccessCallback {
	return func(index int, pager managerapi.EntityReferencePagerInterface) {
		onSuccess(index, NewEntityReferencePager(pager, m.session))
	}
}

// GetWithRelationship queries, per reference, the entities related to
// it by the given relationship, delivering a pager over each result set
// through the callbacks. resultTraitSet optionally constrains the
// traits of the related entities returned; nil means no constraint.
func (m *Manager) GetWithRelationship(refs []openassetio.EntityReference, relationship *trait.Data,
	resultTraitSet trait.Set, pageSize int, relationsAccess access.RelationsAccess,
	ctx *openassetio.Context,
	onSuccess RelationshipSuccessCallback, onError managerapi.BatchElementErrorCallback) error {
	resultTraitSet, err := m.validateRelationshipInputs(pageSize, resultTraitSet)
	if err != nil {
		return err
	}
	return m.iface.GetWithRelationship(refs, relationship, resultTraitSet, pageSize,
		relationsAccess, ctx, m.session, m.wrapPagerCallback(onSuccess), onError)
}

func (m *Manager) getWithRelationshipAll(refs []openassetio.EntityReference, relationship *trait.Data,
	resultTraitSet trait.Set, pageSize int, relationsAccess access.RelationsAccess,
	ctx *openassetio.Context,
) ([]Result[*EntityReferencePager], *elementError, error) {
	resultTraitSet, err := m.validateRelationshipInputs(pageSize, resultTraitSet)
	if err != nil {
		return nil, nil, err
	}
	return runBatch(len(refs), func(onSuccess func(int, *EntityReferencePager),
		onError func(int, oaerrors.BatchElementError)) error {
		return m.iface.GetWithRelationship(refs, relationship, resultTraitSet, pageSize,
			relationsAccess, ctx, m.session,
			m.wrapPagerCallback(RelationshipSuccessCallback(onSuccess)), onError)
	})
}

// GetWithRelationshipBatch queries all references, failing with a
// BatchElementException on the first per-element error.
func (m *Manager) GetWithRelationshipBatch(refs []openassetio.EntityReference,
	relationship *trait.Data, resultTraitSet trait.Set, pageSize int,
	relationsAccess access.RelationsAccess,
	ctx *openassetio.Context) ([]*EntityReferencePager, error) {
	results, first, err := m.getWithRelationshipAll(refs, relationship, resultTraitSet,
		pageSize, relationsAccess, ctx)
	if err != nil {
		return nil, err
	}
	return throwing(results, first, relationsAccess.Name(), entityFor(refs))
}

// GetWithRelationshipResults queries all references, embedding
// per-element errors in the returned sequence.
func (m *Manager) GetWithRelationshipResults(refs []openassetio.EntityReference,
	relationship *trait.Data, resultTraitSet trait.Set, pageSize int,
	relationsAccess access.RelationsAccess,
	ctx *openassetio.Context) ([]Result[*EntityReferencePager], error) {
	results, _, err := m.getWithRelationshipAll(refs, relationship, resultTraitSet,
		pageSize, relationsAccess, ctx)
	return results, err
}

// GetWithRelationshipOne queries a single reference.
func (m *Manager) GetWithRelationshipOne(ref openassetio.EntityReference,
	relationship *trait.Data, resultTraitSet trait.Set, pageSize int,
	relationsAccess access.RelationsAccess,
	ctx *openassetio.Context) (*EntityReferencePager, error) {
	results, first, err := m.getWithRelationshipAll([]openassetio.EntityReference{ref},
		relationship, resultTraitSet, pageSize, relationsAccess, ctx)
	if err != nil {
		return nil, err
	}
	return singular(results, first, relationsAccess.Name(), ref.String())
}

// GetWithRelationships queries, per relationship, the entities related
// to the given reference, delivering a pager over each result set
// through the callbacks.
func (m *Manager) GetWithRelationships(ref openassetio.EntityReference, relationships []*trait.Data,
	resultTraitSet trait.Set, pageSize int, relationsAccess access.RelationsAccess,
	ctx *openassetio.Context,
	onSuccess RelationshipSuccessCallback, onError managerapi.BatchElementErrorCallback) error {
	resultTraitSet, err := m.validateRelationshipInputs(pageSize, resultTraitSet)
	if err != nil {
		return err
	}
	return m.iface.GetWithRelationships(ref, relationships, resultTraitSet, pageSize,
		relationsAccess, ctx, m.session, m.wrapPagerCallback(onSuccess), onError)
}

func (m *Manager) getWithRelationshipsAll(ref openassetio.EntityReference, relationships []*trait.Data,
	resultTraitSet trait.Set, pageSize int, relationsAccess access.RelationsAccess,
	ctx *openassetio.Context,
) ([]Result[*EntityReferencePager], *elementError, error) {
	resultTraitSet, err := m.validateRelationshipInputs(pageSize, resultTraitSet)
	if err != nil {
		return nil, nil, err
	}
	return runBatch(len(relationships), func(onSuccess func(int, *EntityReferencePager),
		onError func(int, oaerrors.BatchElementError)) error {
		return m.iface.GetWithRelationships(ref, relationships, resultTraitSet, pageSize,
			relationsAccess, ctx, m.session,
			m.wrapPagerCallback(RelationshipSuccessCallback(onSuccess)), onError)
	})
}

// GetWithRelationshipsBatch queries all relationships, failing with a
// BatchElementException on the first per-element error.
func (m *Manager) GetWithRelationshipsBatch(ref openassetio.EntityReference,
	relationships []*trait.Data, resultTraitSet trait.Set, pageSize int,
	relationsAccess access.RelationsAccess,
	ctx *openassetio.Context) ([]*EntityReferencePager, error) {
	results, first, err := m.getWithRelationshipsAll(ref, relationships, resultTraitSet,
		pageSize, relationsAccess, ctx)
	if err != nil {
		return nil, err
	}
	return throwing(results, first, relationsAccess.Name(), func(int) string { return ref.String() })
}

// GetWithRelationshipsResults queries all relationships, embedding
// per-element errors in the returned sequence.
func (m *Manager) GetWithRelationshipsResults(ref openassetio.EntityReference,
	relationships []*trait.Data, resultTraitSet trait.Set, pageSize int,
	relationsAccess access.RelationsAccess,
	ctx *openassetio.Context) ([]Result[*EntityReferencePager], error) {
	results, _, err := m.getWithRelationshipsAll(ref, relationships, resultTraitSet,
		pageSize, relationsAccess, ctx)
	return results, err
}
