package testutil

import (
	"embed"

	"github.com/firefly-engineering/openwrt-builder/internal/config"
)

//go:embed fixtures/*.json
var fixturesFS embed.FS

// Fixture names.
const (
	RouterConfigFixture     = "router_config.json"
	BaseTemplateFixture     = "base_template.json"
	WirelessTemplateFixture = "wireless_template.json"
	InvalidConfigFixture    = "invalid_config.json"
)

// LoadFixture loads a JSON fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// MustLoadFixture is LoadFixture for fixtures known to exist.
func MustLoadFixture(name string) []byte {
	data, err := LoadFixture(name)
	if err != nil {
		panic(err)
	}
	return data
}

// ValidateFixture checks a fixture against the config document schema.
// Fixtures are plain JSON.
func ValidateFixture(name string) error {
	data, err := LoadFixture(name)
	if err != nil {
		return err
	}
	return config.ValidateDocument(data, false)
}
