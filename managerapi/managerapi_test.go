package managerapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	openassetio "github.com/foundrytom/openassetio-go"
	"github.com/foundrytom/openassetio-go/access"
	oaerrors "github.com/foundrytom/openassetio-go/errors"
	"github.com/foundrytom/openassetio-go/log"
	"github.com/foundrytom/openassetio-go/trait"
)

type stubHostInterface struct{}

func (stubHostInterface) Identifier() string  { return "test.host" }
func (stubHostInterface) DisplayName() string { return "Test Host" }
func (stubHostInterface) Info() openassetio.InfoDictionary {
	return openassetio.InfoDictionary{"host.version": "1.0"}
}

type nullLogger struct{}

func (nullLogger) Log(log.Severity, string) {}

func TestCapability_Names(t *testing.T) {
	t.Parallel()
	expected := []string{
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
	for value, name := range expected {
		assert.Equal(t, name, Capability(value).Name())
	}
	assert.Equal(t, "unknown", Capability(len(expected)).Name())
}

func TestHost_WrapsInterface(t *testing.T) {
	t.Parallel()
	host, err := NewHost(stubHostInterface{})
	require.NoError(t, err)

	assert.Equal(t, "test.host", host.Identifier())
	assert.Equal(t, "Test Host", host.DisplayName())
	assert.Equal(t, "1.0", host.Info()["host.version"])
}

func TestNewHost_NilInterface(t *testing.T) {
	t.Parallel()
	_, err := NewHost(nil)
	var validationErr *oaerrors.InputValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestHostSession_Accessors(t *testing.T) {
	t.Parallel()
	host, err := NewHost(stubHostInterface{})
	require.NoError(t, err)
	logger := nullLogger{}

	session, err := NewHostSession(host, logger)
	require.NoError(t, err)
	assert.Same(t, host, session.Host())
	assert.Equal(t, logger, session.Logger())
}

func TestNewHostSession_NilArguments(t *testing.T) {
	t.Parallel()
	host, err := NewHost(stubHostInterface{})
	require.NoError(t, err)

	var validationErr *oaerrors.InputValidationError
	_, err = NewHostSession(nil, nullLogger{})
	require.ErrorAs(t, err, &validationErr)
	_, err = NewHostSession(host, nil)
	require.ErrorAs(t, err, &validationErr)
}

// minimalManager exercises ManagerInterfaceBase defaults.
type minimalManager struct {
	ManagerInterfaceBase
}

func (minimalManager) Identifier() string  { return "org.test.minimal" }
func (minimalManager) DisplayName() string { return "Minimal" }

func TestManagerInterfaceBase_Defaults(t *testing.T) {
	t.Parallel()
	var manager ManagerInterface = minimalManager{}

	assert.Empty(t, manager.Info())
	assert.Empty(t, manager.Settings(nil))
	assert.False(t, manager.HasCapability(CapabilityResolution))
	assert.False(t, manager.IsEntityReferenceString("anything", nil))

	terms := map[string]string{"shot": "shot"}
	assert.Equal(t, terms, manager.UpdateTerminology(terms, nil))

	require.NoError(t, manager.Initialize(openassetio.Settings{}, nil))
	err := manager.Initialize(openassetio.Settings{"k": "v"}, nil)
	var validationErr *oaerrors.InputValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestManagerInterfaceBase_OptionalOperationsNotImplemented(t *testing.T) {
	t.Parallel()
	var manager ManagerInterface = minimalManager{}
	var notImplemented *oaerrors.NotImplementedError

	_, err := manager.ManagementPolicy(nil, access.PolicyRead, nil, nil)
	require.ErrorAs(t, err, &notImplemented)

	err = manager.Resolve(nil, trait.NewSet(), access.ResolveRead, nil, nil, nil, nil)
	require.ErrorAs(t, err, &notImplemented)

	err = manager.EntityExists(nil, nil, nil, nil, nil)
	require.ErrorAs(t, err, &notImplemented)

	err = manager.Register(nil, nil, access.PublishWrite, nil, nil, nil, nil)
	require.ErrorAs(t, err, &notImplemented)

	_, err = manager.CreateState(nil)
	require.ErrorAs(t, err, &notImplemented)

	_, err = manager.PersistenceTokenForState(nil, nil)
	require.ErrorAs(t, err, &notImplemented)
}
