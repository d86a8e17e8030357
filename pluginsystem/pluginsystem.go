// Package pluginsystem discovers and instantiates manager plug-ins from
// filesystem paths and process-level entry points. Discovered plug-ins
// are held as records keyed by identifier; identifiers are unique within
// a PluginSystem instance, with the first registration winning.
package pluginsystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	oaerrors "github.com/foundrytom/openassetio-go/errors"
	"github.com/foundrytom/openassetio-go/log"
	"github.com/foundrytom/openassetio-go/managerapi"
)

// PluginPathsEnvVar lists plug-in directories separated by the platform
// path separator. Consumed by the factory adapters; the PluginSystem
// itself takes explicit paths.
const PluginPathsEnvVar = "OPENASSETIO_PLUGIN_PATH"

// ManagerPlugin is the well-known surface a plug-in exposes: a stable
// identifier and a factory for the manager implementation.
type ManagerPlugin interface {
	// Identifier returns the identifier of the manager this plug-in
	// provides. Must be callable without instantiating the manager.
	Identifier() string

	// Interface instantiates the plug-in's manager implementation.
	Interface() (managerapi.ManagerInterface, error)
}

// PluginRecord is one discovered plug-in.
type PluginRecord struct {
	// Identifier is the plug-in's unique identifier.
	Identifier string

	// Origin describes where the plug-in was found: the filesystem path
	// of its module or package, or "entry point group '<group>'".
	Origin string

	// Plugin is the discovered plug-in itself.
	Plugin ManagerPlugin
}

// ModuleLoader loads a plug-in from a shared library path. The seam
// exists so hosts with bespoke packaging can substitute their own
// loading, and so the scanning logic is testable without building
// shared libraries.
type ModuleLoader interface {
	Load(path string) (ManagerPlugin, error)
}

// EntryPointProvider enumerates plug-ins registered at process level
// under a named group.
type EntryPointProvider interface {
	Plugins(group string) []ManagerPlugin
}

// PluginSystem discovers manager plug-ins. Instances are independent;
// hosts may create several with different sources.
type PluginSystem struct {
	logger      log.LoggerInterface
	loader      ModuleLoader
	entryPoints EntryPointProvider

	records map[string]*PluginRecord
	order   []string
}

// Option configures a PluginSystem.
type Option func(*PluginSystem)

// WithModuleLoader substitutes the shared-library loader.
func WithModuleLoader(loader ModuleLoader) Option {
	return func(s *PluginSystem) { s.loader = loader }
}

// WithEntryPointProvider substitutes the entry point source. Passing
// nil marks the facility unavailable: ScanEntryPoints will warn and
// report failure rather than scan.
func WithEntryPointProvider(provider EntryPointProvider) Option {
	return func(s *PluginSystem) { s.entryPoints = provider }
}

// NewPluginSystem creates a PluginSystem that loads shared-library
// plug-ins and reads entry points from the process registry.
func NewPluginSystem(logger log.LoggerInterface, opts ...Option) *PluginSystem {
	s := &PluginSystem{
		logger:      logger,
		loader:      sharedLibraryLoader{},
		entryPoints: processEntryPoints{},
		records:     map[string]*PluginRecord{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan discovers plug-ins under each directory of the path-separated
// list. A directory's immediate children are considered: shared-library
// files are single-file plug-in modules, and directories containing a
// plugin manifest are plug-in packages. Symlinked children are
// followed. Unloadable candidates are logged and skipped.
//
// Scanning is additive across calls; plug-ins accumulate and an already
// registered identifier is never displaced (left-most path wins).
func (s *PluginSystem) Scan(paths string) {
	for _, dir := range filepath.SplitList(paths) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.logger.Log(log.SeverityWarning, fmt.Sprintf(
				"PluginSystem: can not scan '%s': %v", dir, err))
			continue
		}
		for _, entry := range entries {
			childPath := filepath.Join(dir, entry.Name())
			// Stat (rather than entry.Type) follows symlinks, so linked
			// modules and packages load like real ones.
			info, err := os.Stat(childPath)
			if err != nil {
				s.logger.Log(log.SeverityDebug, fmt.Sprintf(
					"PluginSystem: skipping '%s': %v", childPath, err))
				continue
			}
			if info.IsDir() {
				s.scanPackage(childPath)
			} else if strings.HasSuffix(entry.Name(), sharedLibrarySuffix) {
				s.loadModule(childPath)
			}
		}
	}
}

// loadModule loads a single-file plug-in module.
func (s *PluginSystem) loadModule(path string) {
	plugin, err := s.loader.Load(path)
	if err != nil {
		s.logger.Log(log.SeverityWarning, fmt.Sprintf(
			"PluginSystem: can not load plug-in module '%s': %v", path, err))
		return
	}
	s.register(&PluginRecord{Identifier: plugin.Identifier(), Origin: path, Plugin: plugin})
}

// scanPackage loads a package-directory plug-in via its manifest.
func (s *PluginSystem) scanPackage(dir string) {
	manifestPath := filepath.Join(dir, ManifestFileName)
	if _, err := os.Stat(manifestPath); err != nil {
		// Not a plug-in package; ignore quietly, directories of other
		// kinds are expected on shared search paths.
		return
	}
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		s.logger.Log(log.SeverityWarning, fmt.Sprintf(
			"PluginSystem: invalid plug-in package '%s': %v", dir, err))
		return
	}
	plugin, err := s.loader.Load(filepath.Join(dir, manifest.Entry))
	if err != nil {
		s.logger.Log(log.SeverityWarning, fmt.Sprintf(
			"PluginSystem: can not load plug-in package '%s': %v", dir, err))
		return
	}
	if manifest.Identifier != "" && manifest.Identifier != plugin.Identifier() {
		s.logger.Log(log.SeverityWarning, fmt.Sprintf(
			"PluginSystem: plug-in package '%s' declares identifier '%s' but its module reports '%s'",
			dir, manifest.Identifier, plugin.Identifier()))
		return
	}
	s.register(&PluginRecord{Identifier: plugin.Identifier(), Origin: dir, Plugin: plugin})
}

// ScanEntryPoints discovers plug-ins registered at process level under
// the named group, accumulating them like Scan. It reports false, after
// logging a warning, when no entry point facility is available.
func (s *PluginSystem) ScanEntryPoints(group string) bool {
	if s.entryPoints == nil {
		s.logger.Log(log.SeverityWarning,
			"PluginSystem: can not load entry point plugins as no entry point provider is available.")
		return false
	}
	for _, plugin := range s.entryPoints.Plugins(group) {
		s.register(&PluginRecord{
			Identifier: plugin.Identifier(),
			Origin:     fmt.Sprintf("entry point group '%s'", group),
			Plugin:     plugin,
		})
	}
	return true
}

// Reset discards all discovered plug-ins.
func (s *PluginSystem) Reset() {
	s.records = map[string]*PluginRecord{}
	s.order = nil
}

// Identifiers returns the discovered identifiers in registration order.
func (s *PluginSystem) Identifiers() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Plugin returns the record for the identifier.
func (s *PluginSystem) Plugin(identifier string) (*PluginRecord, error) {
	record, ok := s.records[identifier]
	if !ok {
		return nil, oaerrors.NewInputValidationError(fmt.Sprintf(
			"PluginSystem: no plug-in registered with identifier '%s'", identifier))
	}
	return record, nil
}

func (s *PluginSystem) register(record *PluginRecord) {
	if existing, ok := s.records[record.Identifier]; ok {
		s.logger.Log(log.SeverityDebug, fmt.Sprintf(
			"PluginSystem: ignoring duplicate plug-in '%s' from '%s', already registered from '%s'",
			record.Identifier, record.Origin, existing.Origin))
		return
	}
	s.records[record.Identifier] = record
	s.order = append(s.order, record.Identifier)
}
