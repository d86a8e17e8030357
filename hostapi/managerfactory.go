package hostapi

import (
	"fmt"
	"os"

	openassetio "github.com/foundrytom/openassetio-go"
	oaerrors "github.com/foundrytom/openassetio-go/errors"
	"github.com/foundrytom/openassetio-go/log"
	"github.com/foundrytom/openassetio-go/managerapi"
	"github.com/foundrytom/openassetio-go/pluginsystem"
	"github.com/spf13/viper"
)

// ManagerImplementationFactoryInterface provides manager
// implementations by identifier, decoupling ManagerFactory from how
// implementations are discovered.
type ManagerImplementationFactoryInterface interface {
	// Identifiers returns the identifiers of the available managers.
	Identifiers() ([]string, error)

	// Instantiate creates the manager implementation with the given
	// identifier.
	Instantiate(identifier string) (managerapi.ManagerInterface, error)
}

// PluginSystemImplementationFactory adapts a pluginsystem.PluginSystem
// to ManagerImplementationFactoryInterface. Discovery runs lazily on
// first use: directories from the OPENASSETIO_PLUGIN_PATH environment
// variable are scanned, then the default entry point group.
type PluginSystemImplementationFactory struct {
	system  *pluginsystem.PluginSystem
	logger  log.LoggerInterface
	scanned bool
}

// NewPluginSystemImplementationFactory creates the adapter over a fresh
// PluginSystem.
func NewPluginSystemImplementationFactory(logger log.LoggerInterface,
	opts ...pluginsystem.Option) *PluginSystemImplementationFactory {
	return &PluginSystemImplementationFactory{
		system: pluginsystem.NewPluginSystem(logger, opts...),
		logger: logger,
	}
}

func (f *PluginSystemImplementationFactory) scanOnce() {
	if f.scanned {
		return
	}
	f.scanned = true
	paths := os.Getenv(pluginsystem.PluginPathsEnvVar)
	if paths == "" {
		f.logger.Log(log.SeverityDebug, fmt.Sprintf(
			"%s is not set, only entry point plug-ins will be available",
			pluginsystem.PluginPathsEnvVar))
	} else {
		f.system.Scan(paths)
	}
	f.system.ScanEntryPoints(pluginsystem.DefaultEntryPointGroup)
}

// Identifiers returns the identifiers of the discovered plug-ins.
func (f *PluginSystemImplementationFactory) Identifiers() ([]string, error) {
	f.scanOnce()
	return f.system.Identifiers(), nil
}

// Instantiate creates the manager implementation provided by the
// plug-in with the given identifier.
func (f *PluginSystemImplementationFactory) Instantiate(identifier string) (managerapi.ManagerInterface, error) {
	f.scanOnce()
	record, err := f.system.Plugin(identifier)
	if err != nil {
		return nil, err
	}
	return record.Plugin.Interface()
}

// ManagerDetail describes an available manager without requiring the
// caller to hold an instance.
type ManagerDetail struct {
	Identifier  string
	DisplayName string
	Info        openassetio.InfoDictionary
}

// DefaultManagerConfigEnvVar names the config file consumed by
// DefaultManagerForInterface.
const DefaultManagerConfigEnvVar = "OPENASSETIO_DEFAULT_CONFIG"

// ManagerFactory creates Managers from discovered implementations,
// bound to the host's identity and logger.
type ManagerFactory struct {
	hostInterface openassetio.HostInterface
	implFactory   ManagerImplementationFactoryInterface
	logger        log.LoggerInterface
}

// NewManagerFactory creates a factory for the given host.
func NewManagerFactory(hostInterface openassetio.HostInterface,
	implFactory ManagerImplementationFactoryInterface,
	logger log.LoggerInterface) (*ManagerFactory, error) {
	if hostInterface == nil {
		return nil, oaerrors.NewInputValidationError("HostInterface must not be nil")
	}
	if implFactory == nil {
		return nil, oaerrors.NewInputValidationError("ManagerImplementationFactoryInterface must not be nil")
	}
	if logger == nil {
		return nil, oaerrors.NewInputValidationError("Logger must not be nil")
	}
	return &ManagerFactory{
		hostInterface: hostInterface,
		implFactory:   implFactory,
		logger:        logger,
	}, nil
}

// Identifiers returns the identifiers of the available managers.
func (f *ManagerFactory) Identifiers() ([]string, error) {
	return f.implFactory.Identifiers()
}

// AvailableManagers describes each available manager, keyed by
// identifier. Implementations are instantiated to read their
// properties, but not initialized.
func (f *ManagerFactory) AvailableManagers() (map[string]ManagerDetail, error) {
	identifiers, err := f.implFactory.Identifiers()
	if err != nil {
		return nil, err
	}
	details := make(map[string]ManagerDetail, len(identifiers))
	for _, identifier := range identifiers {
		iface, err := f.implFactory.Instantiate(identifier)
		if err != nil {
			return nil, err
		}
		details[identifier] = ManagerDetail{
			Identifier:  iface.Identifier(),
			DisplayName: iface.DisplayName(),
			Info:        iface.Info(),
		}
	}
	return details, nil
}

// CreateManager wraps the identified implementation in a Manager bound
// to the factory's host. The Manager is returned uninitialized so the
// caller controls settings; call Initialize before entity operations.
func (f *ManagerFactory) CreateManager(identifier string) (*Manager, error) {
	iface, err := f.implFactory.Instantiate(identifier)
	if err != nil {
		return nil, err
	}
	host, err := managerapi.NewHost(f.hostInterface)
	if err != nil {
		return nil, err
	}
	session, err := managerapi.NewHostSession(host, f.logger)
	if err != nil {
		return nil, err
	}
	return NewManager(iface, session)
}

// DefaultManagerForInterface creates and initializes the manager named
// by the config file the DefaultManagerConfigEnvVar environment
// variable points at. The file supplies `manager.identifier` and
// optional `manager.settings.*`. Returns nil without error when the
// variable is unset, meaning no default is configured.
func (f *ManagerFactory) DefaultManagerForInterface() (*Manager, error) {
	configPath, ok := os.LookupEnv(DefaultManagerConfigEnvVar)
	if !ok {
		return nil, nil
	}
	f.logger.Log(log.SeverityDebug, fmt.Sprintf(
		"Loading default manager config at '%s'", configPath))

	if _, err := os.Stat(configPath); err != nil {
		return nil, oaerrors.NewConfigurationError(fmt.Sprintf(
			"Could not load default manager config from '%s', file does not exist", configPath), nil)
	}

	config := viper.New()
	config.SetConfigFile(configPath)
	if err := config.ReadInConfig(); err != nil {
		return nil, oaerrors.NewConfigurationError(fmt.Sprintf(
			"Could not parse default manager config at '%s'", configPath), err)
	}

	identifier := config.GetString("manager.identifier")
	if identifier == "" {
		return nil, oaerrors.NewConfigurationError(fmt.Sprintf(
			"Default manager config at '%s' does not specify a manager identifier", configPath), nil)
	}

	manager, err := f.CreateManager(identifier)
	if err != nil {
		return nil, err
	}
	settings := openassetio.Settings(config.GetStringMap("manager.settings"))
	if err := manager.Initialize(settings); err != nil {
		return nil, err
	}
	return manager, nil
}
