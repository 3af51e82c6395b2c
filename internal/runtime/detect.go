package runtime

import (
	"fmt"
	"os/exec"
	goruntime "runtime"

	"github.com/firefly-engineering/openwrt-builder/internal/logging"
	"github.com/firefly-engineering/openwrt-builder/internal/system"
)

// RuntimeType identifies which container runtime to use
type RuntimeType string

const (
	RuntimeDocker RuntimeType = "docker"
	RuntimePodman RuntimeType = "podman"
	RuntimeAuto   RuntimeType = "auto"
)

// DefaultContainerPrefix is prepended to image names to form container names.
const DefaultContainerPrefix = "openwrt-"

// Config holds runtime configuration
type Config struct {
	// Type specifies which runtime to use (or "auto" for auto-detection)
	Type RuntimeType

	// ContainerPrefix is prepended to image names
	ContainerPrefix string

	// Executor runs the runtime commands; nil uses the system default
	Executor system.CommandExecutor
}

// DefaultConfig returns the default runtime configuration
func DefaultConfig() *Config {
	return &Config{
		Type:            RuntimeAuto,
		ContainerPrefix: DefaultContainerPrefix,
	}
}

// lookPath is swapped out in tests
var lookPath = exec.LookPath

// Detect determines which container runtime is available on the system.
// Podman is preferred over docker when both are installed.
func Detect() (RuntimeType, error) {
	logging.Debug("detecting container runtime", "os", goruntime.GOOS)

	if _, err := lookPath("podman"); err == nil {
		logging.Debug("detected podman")
		return RuntimePodman, nil
	}

	if _, err := lookPath("docker"); err == nil {
		logging.Debug("detected docker")
		return RuntimeDocker, nil
	}

	return "", fmt.Errorf("no supported container runtime found (tried: podman, docker)")
}

// ParseType converts a settings value into a RuntimeType.
// The empty string means auto-detection.
func ParseType(s string) (RuntimeType, error) {
	switch RuntimeType(s) {
	case "", RuntimeAuto:
		return RuntimeAuto, nil
	case RuntimeDocker, RuntimePodman:
		return RuntimeType(s), nil
	default:
		return "", fmt.Errorf("unknown runtime type: %s", s)
	}
}

// New creates a new Runtime based on the configuration.
// If Type is RuntimeAuto, it auto-detects the best runtime.
func New(cfg *Config) (Runtime, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	runtimeType := cfg.Type
	if runtimeType == "" || runtimeType == RuntimeAuto {
		detected, err := Detect()
		if err != nil {
			return nil, err
		}
		runtimeType = detected
	}

	logging.Debug("creating runtime", "type", runtimeType)

	switch runtimeType {
	case RuntimeDocker, RuntimePodman:
		return NewDockerRuntime(string(runtimeType), cfg.ContainerPrefix, cfg.Executor), nil
	default:
		return nil, fmt.Errorf("unknown runtime type: %s", runtimeType)
	}
}

// Available returns a list of available runtimes on this system
func Available() []RuntimeType {
	var available []RuntimeType

	if _, err := lookPath("podman"); err == nil {
		available = append(available, RuntimePodman)
	}

	if _, err := lookPath("docker"); err == nil {
		available = append(available, RuntimeDocker)
	}

	return available
}
