package config

import (
	"fmt"
	"os"

	"github.com/cuemby/brokerage/pkg/log"
	"gopkg.in/yaml.v3"
)

// Backend identifies which of the brokerage's two backends, if any, is
// active.
type Backend int

const (
	// BackendNone means the brokerage is disabled: all operations become
	// no-ops with a warning (spec.md §3).
	BackendNone Backend = iota
	BackendFilesystem
	BackendCoordinator
)

func (b Backend) String() string {
	switch b {
	case BackendFilesystem:
		return "filesystem"
	case BackendCoordinator:
		return "coordinator"
	default:
		return "none"
	}
}

// BackendConfig is the tagged-union configuration value described in
// spec.md §3. Use NewFilesystemConfig, NewCoordinatorConfig, or
// NewDisabledConfig to construct one; the zero value is BackendNone.
type BackendConfig struct {
	backend         Backend
	fsRoot          string
	coordinatorAddr string
	coordinatorPort int
}

// NewFilesystemConfig returns a BackendConfig selecting the filesystem
// rendezvous backend rooted at root (the user-provided root, before the
// <main>/<version>.<os-tag>/ suffix is applied by pkg/fsbackend).
func NewFilesystemConfig(root string) BackendConfig {
	return BackendConfig{backend: BackendFilesystem, fsRoot: root}
}

// NewCoordinatorConfig returns a BackendConfig selecting the coordinator
// RPC backend at addr:port.
func NewCoordinatorConfig(addr string, port int) BackendConfig {
	return BackendConfig{backend: BackendCoordinator, coordinatorAddr: addr, coordinatorPort: port}
}

// NewDisabledConfig returns a BackendConfig with no active backend.
func NewDisabledConfig() BackendConfig {
	return BackendConfig{backend: BackendNone}
}

// Backend reports which backend this config selects.
func (c BackendConfig) Backend() Backend { return c.backend }

// FilesystemRoot returns the user-provided root path. Only meaningful when
// Backend() == BackendFilesystem.
func (c BackendConfig) FilesystemRoot() string { return c.fsRoot }

// CoordinatorAddr returns the coordinator host/IP. Only meaningful when
// Backend() == BackendCoordinator.
func (c BackendConfig) CoordinatorAddr() string { return c.coordinatorAddr }

// CoordinatorPort returns the coordinator TCP port. Only meaningful when
// Backend() == BackendCoordinator.
func (c BackendConfig) CoordinatorPort() int { return c.coordinatorPort }

const (
	envCoordinator    = "FASTBUILD_COORDINATOR"
	envBrokeragePath  = "FASTBUILD_BROKERAGE_PATH"
	defaultCoordPort  = 19086
	yamlDefaultsUsage = "brokerage.yaml defaults file"
)

// FileDefaults is the shape of the optional YAML defaults file consulted
// only when neither environment variable is set (SPEC_FULL.md §10.2).
type FileDefaults struct {
	CoordinatorAddr string `yaml:"coordinatorAddr"`
	CoordinatorPort int    `yaml:"coordinatorPort"`
	BrokerageRoot   string `yaml:"brokerageRoot"`
}

// LoadFileDefaults reads and parses a YAML defaults file. A missing file is
// not an error — it simply means no defaults layer is available.
func LoadFileDefaults(path string) (*FileDefaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: read defaults file: %w", err)
	}

	var defaults FileDefaults
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return nil, fmt.Errorf("config: parse defaults file %s: %w", path, err)
	}
	return &defaults, nil
}

// Resolve implements the priority order from spec.md §3 and SPEC_FULL.md
// §10.2:
//
//  1. explicit, if non-nil, is used as-is.
//  2. FASTBUILD_COORDINATOR, if non-empty, selects the coordinator backend.
//  3. FASTBUILD_BROKERAGE_PATH, if non-empty, selects the filesystem backend.
//  4. defaults, if non-nil, supplies a coordinator or filesystem fallback.
//  5. Otherwise the brokerage is disabled.
func Resolve(explicit *BackendConfig, defaults *FileDefaults) BackendConfig {
	logger := log.WithComponent("config")

	if explicit != nil {
		logger.Debug().Str("backend", explicit.Backend().String()).Msg("using explicit backend override")
		return *explicit
	}

	if addr := os.Getenv(envCoordinator); addr != "" {
		logger.Info().Str("coordinator_addr", addr).Msg("selecting coordinator backend from environment")
		return NewCoordinatorConfig(addr, defaultCoordPort)
	}

	if root := os.Getenv(envBrokeragePath); root != "" {
		logger.Info().Str("root", root).Msg("selecting filesystem backend from environment")
		return NewFilesystemConfig(root)
	}

	if defaults != nil {
		switch {
		case defaults.CoordinatorAddr != "":
			port := defaults.CoordinatorPort
			if port == 0 {
				port = defaultCoordPort
			}
			logger.Info().Str("coordinator_addr", defaults.CoordinatorAddr).Str("source", yamlDefaultsUsage).
				Msg("selecting coordinator backend from defaults file")
			return NewCoordinatorConfig(defaults.CoordinatorAddr, port)
		case defaults.BrokerageRoot != "":
			logger.Info().Str("root", defaults.BrokerageRoot).Str("source", yamlDefaultsUsage).
				Msg("selecting filesystem backend from defaults file")
			return NewFilesystemConfig(defaults.BrokerageRoot)
		}
	}

	logger.Warn().Msg("no backend configured, brokerage disabled")
	return NewDisabledConfig()
}

// DefaultCoordinatorPort is the fixed compile-time coordinator port used
// when neither the environment nor the defaults file specify one
// (spec.md §6: "Coordinator port is a fixed compile-time constant").
func DefaultCoordinatorPort() int { return defaultCoordPort }
