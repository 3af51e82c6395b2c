// Package runtime provides a unified interface for container runtimes.
//
// Supported runtimes:
//   - podman (preferred when both are installed)
//   - docker
//
// Use New with RuntimeAuto to detect the available runtime, or construct a
// DockerRuntime directly with a system.CommandExecutor for testing.
//
// # Runtime Interface
//
// The Runtime interface covers what an OpenWrt image build needs:
//   - Build: build the per-image builder container from <name>-temp
//   - Run: run the image builder with PACKAGES/FILES/DISABLED_SERVICES
//   - Copy: copy artifacts out of the finished container
//   - Stop, Remove: clean up the container
//   - Status: inspect a container before touching it
//
// Container names are the configured prefix plus the image name, so the
// image "router" runs in the container "openwrt-router" by default.
//
// # Mock Runtime
//
// For testing, use NewMockRuntime() to create a mock implementation that
// records every call and can be configured to fail specific operations.
package runtime
