package pluginsystem

import (
	"fmt"
	"plugin"
)

// PluginSymbol is the exported symbol a shared-library plug-in must
// provide: a value (or pointer to one) implementing ManagerPlugin.
const PluginSymbol = "Plugin"

// sharedLibrarySuffix is the filename suffix of single-file plug-in
// modules and package entry libraries.
const sharedLibrarySuffix = ".so"

// sharedLibraryLoader loads plug-ins through the Go plugin runtime.
type sharedLibraryLoader struct{}

func (sharedLibraryLoader) Load(path string) (ManagerPlugin, error) {
	module, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	symbol, err := module.Lookup(PluginSymbol)
	if err != nil {
		return nil, err
	}
	switch v := symbol.(type) {
	case ManagerPlugin:
		return v, nil
	case *ManagerPlugin:
		if *v == nil {
			return nil, fmt.Errorf("symbol '%s' in '%s' is nil", PluginSymbol, path)
		}
		return *v, nil
	default:
		return nil, fmt.Errorf(
			"symbol '%s' in '%s' does not implement ManagerPlugin", PluginSymbol, path)
	}
}
