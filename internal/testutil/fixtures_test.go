package testutil

import (
	"testing"
)

func TestFixturesValidate(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{RouterConfigFixture, false},
		{BaseTemplateFixture, false},
		{WirelessTemplateFixture, false},
		{InvalidConfigFixture, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFixture(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFixture(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := LoadFixture("missing.json"); err == nil {
		t.Error("LoadFixture() should fail for a missing fixture")
	}
}
