package model

import (
	"encoding/json"
	"testing"
)

func TestPlatform_UnmarshalText(t *testing.T) {
	tests := []struct {
		input    string
		expected Platform
		wantErr  bool
	}{
		{`"meta"`, PlatformMeta, false},
		{`"Facebook"`, PlatformMeta, false},
		{`"google ads"`, PlatformGoogle, false},
		{`""`, "", false},
		{`"myspace"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var p Platform
			err := json.Unmarshal([]byte(tt.input), &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if p != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, p)
			}
		})
	}
}

func TestSelection_DecodeValidatesPlatforms(t *testing.T) {
	var sel Selection
	data := `{"platforms":["facebook","linkedin"],"overrides":{"instagram":{"budget":"300"}}}`
	if err := json.Unmarshal([]byte(data), &sel); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(sel.Platforms) != 2 || sel.Platforms[0] != PlatformMeta || sel.Platforms[1] != PlatformLinkedIn {
		t.Errorf("Expected [meta linkedin], got %v", sel.Platforms)
	}
	if _, ok := sel.Overrides[PlatformMeta]; !ok {
		t.Errorf("Expected override key normalized to meta, got %v", sel.Overrides)
	}

	if err := json.Unmarshal([]byte(`{"platforms":["myspace"]}`), &sel); err == nil {
		t.Error("Expected error for unknown platform")
	}
}
