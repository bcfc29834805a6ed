package assistant

import (
	"encoding/json"
	"testing"
)

func TestNormalizeLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Language
	}{
		{"en", English},
		{"eng", English},
		{"English", English},
		{"fil", Tagalog},
		{"filipino", Tagalog},
		{"Tagalog", Tagalog},
		{"bcl", Bikol},
		{"Bikolano", Bikol},
		{"bikol", Bikol},
		{"cebuano", Language("cebuano")},
		{"", Language("")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeLanguage(tt.in); got != tt.want {
				t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUserLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		loc        *UserLocation
		wantCoords bool
		wantAny    bool
	}{
		{"nil", nil, false, false},
		{"empty", &UserLocation{}, false, false},
		{"gps", &UserLocation{Lat: 13.62, Lng: 123.19}, true, true},
		{"manual only", &UserLocation{ManualText: "Barangay Abella"}, false, true},
		{"blank manual", &UserLocation{ManualText: "   "}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.loc.HasCoords(); got != tt.wantCoords {
				t.Errorf("HasCoords() = %v, want %v", got, tt.wantCoords)
			}
			if got := tt.loc.HasAny(); got != tt.wantAny {
				t.Errorf("HasAny() = %v, want %v", got, tt.wantAny)
			}
		})
	}
}

func TestIsEnvelope(t *testing.T) {
	t.Parallel()

	valid := `{"text":"hi","language":"english","safety":{},"cards":[]}`

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"valid shape", valid, true},
		{"missing text", `{"language":"english","safety":{},"cards":[]}`, false},
		{"text wrong type", `{"text":1,"language":"english","safety":{},"cards":[]}`, false},
		{"missing cards", `{"text":"hi","language":"english","safety":{}}`, false},
		{"safety wrong type", `{"text":"hi","language":"english","safety":"x","cards":[]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var obj map[string]any
			if err := json.Unmarshal([]byte(tt.raw), &obj); err != nil {
				t.Fatalf("unmarshal fixture: %v", err)
			}
			if got := IsEnvelope(obj); got != tt.want {
				t.Errorf("IsEnvelope = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("nil map", func(t *testing.T) {
		t.Parallel()
		if IsEnvelope(nil) {
			t.Error("IsEnvelope(nil) = true, want false")
		}
	})
}
