// Package testutil provides test fixtures and utilities.
//
// This package contains embedded JSON fixtures and a TestEnv that wires an
// app.App to mock runtime and executor implementations.
//
// # Fixtures
//
// JSON fixtures are embedded using go:embed:
//
//	fixtures/router_config.json
//	fixtures/base_template.json
//	fixtures/wireless_template.json
//	fixtures/invalid_config.json
//
// For raw access or schema checks:
//
//	data, err := testutil.LoadFixture(testutil.RouterConfigFixture)
//	err := testutil.ValidateFixture(testutil.InvalidConfigFixture)
//
// # Test Environment
//
// NewTestEnv creates a temporary config, templates and work directory tree,
// installs the base and wireless templates and replaces app.Default for the
// duration of the test:
//
//	func TestBuild(t *testing.T) {
//	    env := testutil.NewTestEnv(t)
//	    path := env.RouterConfig()
//
//	    cfg, err := env.App.LoadConfig(path, config.Overrides{})
//	    ...
//	    if len(env.Runtime.CallLog) == 0 {
//	        t.Error("expected runtime calls")
//	    }
//	}
package testutil
