package basiclibrary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	openassetio "github.com/foundrytom/openassetio-go"
	"github.com/foundrytom/openassetio-go/access"
	oaerrors "github.com/foundrytom/openassetio-go/errors"
	"github.com/foundrytom/openassetio-go/hostapi"
	"github.com/foundrytom/openassetio-go/log"
	"github.com/foundrytom/openassetio-go/managerapi"
	"github.com/foundrytom/openassetio-go/pluginsystem"
	"github.com/foundrytom/openassetio-go/trait"
)

type testHostInterface struct{}

func (testHostInterface) Identifier() string               { return "test.host" }
func (testHostInterface) DisplayName() string              { return "Test Host" }
func (testHostInterface) Info() openassetio.InfoDictionary { return openassetio.InfoDictionary{} }

type nullLogger struct{}

func (nullLogger) Log(log.Severity, string) {}

const testLibrary = `
default: bal:///shots/001
assets:
  bal:///shots/001:
    traits:
      locatableContent:
        location: file:///shots/001.exr
      frameRanged:
        startFrame: 1001
        endFrame: 1100
  bal:///shots/002:
    traits:
      locatableContent:
        location: file:///shots/002.exr
`

func writeTestLibrary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testLibrary), 0o600))
	return path
}

func newInitializedManager(t *testing.T) *hostapi.Manager {
	t.Helper()
	host, err := managerapi.NewHost(testHostInterface{})
	require.NoError(t, err)
	session, err := managerapi.NewHostSession(host, nullLogger{})
	require.NoError(t, err)
	manager, err := hostapi.NewManager(NewManagerInterface(), session)
	require.NoError(t, err)
	require.NoError(t, manager.Initialize(openassetio.Settings{
		LibraryPathSetting: writeTestLibrary(t),
	}))
	return manager
}

func TestPlugin_ProvidesManagerInterface(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Identifier, Plugin.Identifier())

	iface, err := Plugin.Interface()
	require.NoError(t, err)
	assert.Equal(t, Identifier, iface.Identifier())
	assert.Equal(t, "Basic Asset Library", iface.DisplayName())
}

func TestRegister_MakesPluginDiscoverable(t *testing.T) {
	Register()

	system := pluginsystem.NewPluginSystem(nullLogger{})
	require.True(t, system.ScanEntryPoints(pluginsystem.DefaultEntryPointGroup))
	record, err := system.Plugin(Identifier)
	require.NoError(t, err)
	assert.Same(t, Plugin, record.Plugin)
}

func TestManager_PrefixFastPath(t *testing.T) {
	t.Parallel()
	manager := newInitializedManager(t)

	assert.True(t, manager.IsEntityReferenceString("bal:///shots/001"))
	assert.False(t, manager.IsEntityReferenceString("/shots/001"))

	_, err := manager.CreateEntityReference("bal:///shots/001")
	require.NoError(t, err)
}

func TestManager_ResolveFromLibrary(t *testing.T) {
	t.Parallel()
	manager := newInitializedManager(t)

	ref, err := manager.CreateEntityReference("bal:///shots/001")
	require.NoError(t, err)

	data, err := manager.ResolveOne(ref, trait.NewSet("locatableContent"),
		access.ResolveRead, openassetio.NewContext())
	require.NoError(t, err)

	// Only the requested traits come back.
	assert.True(t, data.TraitSet().Equal(trait.NewSet("locatableContent")))
	location, ok := data.TraitProperty("locatableContent", "location")
	require.True(t, ok)
	assert.Equal(t, "file:///shots/001.exr", location)

	data, err = manager.ResolveOne(ref, trait.NewSet("frameRanged"),
		access.ResolveRead, openassetio.NewContext())
	require.NoError(t, err)
	startFrame, ok := data.TraitProperty("frameRanged", "startFrame")
	require.True(t, ok)
	assert.Equal(t, int64(1001), startFrame)
}

func TestManager_ResolveUnknownEntity(t *testing.T) {
	t.Parallel()
	manager := newInitializedManager(t)

	_, err := manager.ResolveOne(openassetio.NewEntityReference("bal:///missing"),
		trait.NewSet("locatableContent"), access.ResolveRead, openassetio.NewContext())

	var batchEx *oaerrors.BatchElementException
	require.ErrorAs(t, err, &batchEx)
	assert.Equal(t, oaerrors.ErrorCodeEntityResolutionError, batchEx.Err.Code)
}

func TestManager_EntityExists(t *testing.T) {
	t.Parallel()
	manager := newInitializedManager(t)

	exists, err := manager.EntityExistsBatch([]openassetio.EntityReference{
		openassetio.NewEntityReference("bal:///shots/001"),
		openassetio.NewEntityReference("bal:///missing"),
		openassetio.NewEntityReference("bal:///shots/002"),
	}, openassetio.NewContext())
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, exists)
}

func TestManager_EntityTraits(t *testing.T) {
	t.Parallel()
	manager := newInitializedManager(t)

	traits, err := manager.EntityTraitsOne(
		openassetio.NewEntityReference("bal:///shots/001"),
		access.EntityTraitsRead, openassetio.NewContext())
	require.NoError(t, err)
	assert.True(t, traits.Equal(trait.NewSet("locatableContent", "frameRanged")))
}

func TestManager_PublishRoundTrip(t *testing.T) {
	t.Parallel()
	manager := newInitializedManager(t)
	ctx := openassetio.NewContext()

	ref, err := manager.CreateEntityReference("bal:///shots/003")
	require.NoError(t, err)

	hint := trait.NewDataWithTraitSet(trait.NewSet("locatableContent"))
	workingRef, err := manager.PreflightOne(ref, hint, access.PublishWrite, ctx)
	require.NoError(t, err)
	assert.Equal(t, ref, workingRef)

	data := trait.NewData()
	require.NoError(t, data.SetTraitProperty("locatableContent", "location",
		"file:///shots/003.exr"))
	finalRef, err := manager.RegisterOne(workingRef, data, access.PublishWrite, ctx)
	require.NoError(t, err)

	resolved, err := manager.ResolveOne(finalRef, trait.NewSet("locatableContent"),
		access.ResolveRead, ctx)
	require.NoError(t, err)
	location, ok := resolved.TraitProperty("locatableContent", "location")
	require.True(t, ok)
	assert.Equal(t, "file:///shots/003.exr", location)
}

func TestManager_DefaultEntityReference(t *testing.T) {
	t.Parallel()
	manager := newInitializedManager(t)

	ref, err := manager.DefaultEntityReferenceOne(trait.NewSet("locatableContent"),
		access.DefaultEntityRead, openassetio.NewContext())
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "bal:///shots/001", ref.String())
}

func TestManager_ManagementPolicy(t *testing.T) {
	t.Parallel()
	manager := newInitializedManager(t)

	policies, err := manager.ManagementPolicy([]trait.Set{
		trait.NewSet("locatableContent"),
		trait.NewSet("frameRanged"),
	}, access.PolicyRead, openassetio.NewContext())
	require.NoError(t, err)
	require.Len(t, policies, 2)
	assert.True(t, policies[0].HasTrait("locatableContent"))
	assert.True(t, policies[1].HasTrait("frameRanged"))
}

func TestManager_StatefulContextRoundTrip(t *testing.T) {
	t.Parallel()
	manager := newInitializedManager(t)

	ctx, err := manager.CreateContext()
	require.NoError(t, err)
	require.True(t, ctx.HasManagerState())

	child, err := manager.CreateChildContext(ctx)
	require.NoError(t, err)
	assert.True(t, child.HasManagerState())

	token, err := manager.PersistenceTokenForContext(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	restored, err := manager.ContextFromPersistenceToken(token)
	require.NoError(t, err)
	require.True(t, restored.HasManagerState())

	restoredToken, err := manager.PersistenceTokenForContext(restored)
	require.NoError(t, err)
	assert.Equal(t, token, restoredToken)
}

func TestManagerInterface_InvalidLibraryPath(t *testing.T) {
	t.Parallel()
	iface := NewManagerInterface()

	err := iface.Initialize(openassetio.Settings{
		LibraryPathSetting: filepath.Join(t.TempDir(), "missing.yaml"),
	}, nil)

	var configErr *oaerrors.ConfigurationError
	require.ErrorAs(t, err, &configErr)
}

func TestLoadLibrary_RejectsBadPropertyTypes(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "library.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
assets:
  bal:///broken:
    traits:
      someTrait:
        values: [1, 2, 3]
`), 0o600))

	_, err := loadLibrary(path)
	require.Error(t, err)
}
