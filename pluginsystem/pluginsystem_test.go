package pluginsystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundrytom/openassetio-go/log"
	"github.com/foundrytom/openassetio-go/managerapi"
)

type logEntry struct {
	severity log.Severity
	message  string
}

type recordingLogger struct {
	entries []logEntry
}

func (l *recordingLogger) Log(severity log.Severity, message string) {
	l.entries = append(l.entries, logEntry{severity: severity, message: message})
}

type fakePlugin struct {
	identifier string
}

func (p *fakePlugin) Identifier() string { return p.identifier }

func (p *fakePlugin) Interface() (managerapi.ManagerInterface, error) {
	return nil, fmt.Errorf("not instantiable in tests")
}

// fakeLoader resolves plug-in identifiers from the loaded file's
// content, standing in for the shared-library runtime.
type fakeLoader struct {
	loaded []string
}

func (l *fakeLoader) Load(path string) (ManagerPlugin, error) {
	l.loaded = append(l.loaded, path)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	identifier := strings.TrimSpace(string(raw))
	if identifier == "" {
		return nil, fmt.Errorf("no plug-in in '%s'", path)
	}
	return &fakePlugin{identifier: identifier}, nil
}

// writeModulePlugin creates a single-file plug-in module in dir.
func writeModulePlugin(t *testing.T, dir, name, identifier string) string {
	t.Helper()
	path := filepath.Join(dir, name+sharedLibrarySuffix)
	require.NoError(t, os.WriteFile(path, []byte(identifier), 0o600))
	return path
}

// writePackagePlugin creates a package-directory plug-in in dir.
func writePackagePlugin(t *testing.T, dir, name, identifier string) string {
	t.Helper()
	packageDir := filepath.Join(dir, name)
	require.NoError(t, os.Mkdir(packageDir, 0o700))
	manifest := "entry: impl.so\napiVersion: 1.2.0\n"
	require.NoError(t, os.WriteFile(filepath.Join(packageDir, ManifestFileName),
		[]byte(manifest), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(packageDir, "impl.so"),
		[]byte(identifier), 0o600))
	return packageDir
}

func newTestPluginSystem(opts ...Option) (*PluginSystem, *recordingLogger, *fakeLoader) {
	logger := &recordingLogger{}
	loader := &fakeLoader{}
	opts = append([]Option{WithModuleLoader(loader)}, opts...)
	return NewPluginSystem(logger, opts...), logger, loader
}

func TestPluginSystem_Scan_ModulePlugin(t *testing.T) {
	t.Parallel()
	system, _, _ := newTestPluginSystem()
	dir := t.TempDir()
	writeModulePlugin(t, dir, "module_plugin", "org.test.module")

	system.Scan(dir)

	assert.Equal(t, []string{"org.test.module"}, system.Identifiers())
}

func TestPluginSystem_Scan_PackagePlugin(t *testing.T) {
	t.Parallel()
	system, _, _ := newTestPluginSystem()
	dir := t.TempDir()
	packageDir := writePackagePlugin(t, dir, "package_plugin", "org.test.package")

	system.Scan(dir)

	assert.Equal(t, []string{"org.test.package"}, system.Identifiers())
	record, err := system.Plugin("org.test.package")
	require.NoError(t, err)
	assert.Equal(t, packageDir, record.Origin)
}

func TestPluginSystem_Scan_MultiplePaths(t *testing.T) {
	t.Parallel()
	system, _, _ := newTestPluginSystem()
	dirA := t.TempDir()
	dirB := t.TempDir()
	writePackagePlugin(t, dirA, "package_plugin", "org.test.package")
	writeModulePlugin(t, dirB, "module_plugin", "org.test.module")

	system.Scan(dirA + string(os.PathListSeparator) + dirB)

	assert.ElementsMatch(t, []string{"org.test.package", "org.test.module"},
		system.Identifiers())
}

func TestPluginSystem_Scan_LeftmostPathWins(t *testing.T) {
	t.Parallel()
	system, _, _ := newTestPluginSystem()
	dirA := t.TempDir()
	dirC := t.TempDir()
	pathA := writeModulePlugin(t, dirA, "plugin", "org.test.shared")
	pathC := writeModulePlugin(t, dirC, "plugin", "org.test.shared")

	system.Scan(dirA + string(os.PathListSeparator) + dirC)
	record, err := system.Plugin("org.test.shared")
	require.NoError(t, err)
	assert.Equal(t, pathA, record.Origin)

	system.Reset()

	system.Scan(dirC + string(os.PathListSeparator) + dirA)
	record, err = system.Plugin("org.test.shared")
	require.NoError(t, err)
	assert.Equal(t, pathC, record.Origin)
}

func TestPluginSystem_Scan_FollowsSymlinks(t *testing.T) {
	t.Parallel()
	system, _, _ := newTestPluginSystem()
	realDir := t.TempDir()
	writeModulePlugin(t, realDir, "module_plugin", "org.test.module")
	realPackage := writePackagePlugin(t, realDir, "package_plugin", "org.test.package")

	scanDir := t.TempDir()
	require.NoError(t, os.Symlink(
		filepath.Join(realDir, "module_plugin"+sharedLibrarySuffix),
		filepath.Join(scanDir, "module_plugin"+sharedLibrarySuffix)))
	require.NoError(t, os.Symlink(realPackage, filepath.Join(scanDir, "package_plugin")))

	system.Scan(scanDir)

	assert.ElementsMatch(t, []string{"org.test.module", "org.test.package"},
		system.Identifiers())
}

func TestPluginSystem_Scan_Accumulates(t *testing.T) {
	t.Parallel()
	system, _, _ := newTestPluginSystem()
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeModulePlugin(t, dirA, "first", "org.test.first")
	writeModulePlugin(t, dirB, "second", "org.test.second")

	system.Scan(dirA)
	system.Scan(dirB)

	assert.ElementsMatch(t, []string{"org.test.first", "org.test.second"},
		system.Identifiers())
}

func TestPluginSystem_Scan_IgnoresUnrelatedEntries(t *testing.T) {
	t.Parallel()
	system, _, loader := newTestPluginSystem()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "not_a_plugin"), 0o700))

	system.Scan(dir)

	assert.Empty(t, system.Identifiers())
	assert.Empty(t, loader.loaded)
}

func TestPluginSystem_Scan_UnloadableModuleLoggedAndSkipped(t *testing.T) {
	t.Parallel()
	system, logger, _ := newTestPluginSystem()
	dir := t.TempDir()
	// Empty file: the loader rejects it.
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "broken"+sharedLibrarySuffix), nil, 0o600))
	writeModulePlugin(t, dir, "working", "org.test.working")

	system.Scan(dir)

	assert.Equal(t, []string{"org.test.working"}, system.Identifiers())
	found := false
	for _, entry := range logger.entries {
		if entry.severity == log.SeverityWarning &&
			strings.Contains(entry.message, "broken"+sharedLibrarySuffix) {
			found = true
		}
	}
	assert.True(t, found, "expected a warning about the broken module")
}

func TestPluginSystem_Reset(t *testing.T) {
	t.Parallel()
	system, _, _ := newTestPluginSystem()
	dir := t.TempDir()
	writeModulePlugin(t, dir, "plugin", "org.test.plugin")

	system.Scan(dir)
	require.NotEmpty(t, system.Identifiers())

	system.Reset()

	assert.Empty(t, system.Identifiers())
	_, err := system.Plugin("org.test.plugin")
	assert.Error(t, err)
}

func TestPluginSystem_Plugin_Unknown(t *testing.T) {
	t.Parallel()
	system, _, _ := newTestPluginSystem()

	_, err := system.Plugin("org.test.unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "org.test.unknown")
}

type listEntryPoints struct {
	plugins []ManagerPlugin
	group   string
}

func (p *listEntryPoints) Plugins(group string) []ManagerPlugin {
	p.group = group
	return p.plugins
}

func TestPluginSystem_ScanEntryPoints(t *testing.T) {
	t.Parallel()
	provider := &listEntryPoints{plugins: []ManagerPlugin{
		&fakePlugin{identifier: "org.test.entrypoint"},
	}}
	system, _, _ := newTestPluginSystem(WithEntryPointProvider(provider))

	assert.True(t, system.ScanEntryPoints(DefaultEntryPointGroup))
	assert.Equal(t, DefaultEntryPointGroup, provider.group)
	assert.Equal(t, []string{"org.test.entrypoint"}, system.Identifiers())
}

func TestPluginSystem_ScanEntryPoints_NoneRegistered(t *testing.T) {
	t.Parallel()
	system, _, _ := newTestPluginSystem(WithEntryPointProvider(&listEntryPoints{}))

	assert.True(t, system.ScanEntryPoints(DefaultEntryPointGroup))
	assert.Empty(t, system.Identifiers())
}

func TestPluginSystem_ScanEntryPoints_Unavailable(t *testing.T) {
	t.Parallel()
	system, logger, _ := newTestPluginSystem(WithEntryPointProvider(nil))

	assert.False(t, system.ScanEntryPoints("some.entrypoint"))

	require.Len(t, logger.entries, 1)
	assert.Equal(t, log.SeverityWarning, logger.entries[0].severity)
	assert.Contains(t, logger.entries[0].message, "entry point")
}

func TestPluginSystem_ProcessRegistry(t *testing.T) {
	plugin := &fakePlugin{identifier: "org.test.registered"}
	RegisterEntryPointPlugin("test.group.registry", plugin)

	system, _, _ := newTestPluginSystem()
	assert.True(t, system.ScanEntryPoints("test.group.registry"))
	record, err := system.Plugin("org.test.registered")
	require.NoError(t, err)
	assert.Same(t, plugin, record.Plugin)
}
