package theme

import "testing"

func TestParsePreference(t *testing.T) {
	tests := []struct {
		in     string
		want   Preference
		wantOK bool
	}{
		{"light", PreferenceLight, true},
		{"dark", PreferenceDark, true},
		{"system", PreferenceSystem, true},
		{"", "", false},
		{"Dark", "", false},
		{"auto", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePreference(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParsePreference(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestResolveNeverReturnsSystem(t *testing.T) {
	for _, p := range append(Preferences, Preference("bogus")) {
		for _, dark := range []bool{false, true} {
			got := Resolve(p, dark)
			if got != Light && got != Dark {
				t.Errorf("Resolve(%q, %v) = %q", p, dark, got)
			}
		}
	}
}

func TestNextWrapsAndRecovers(t *testing.T) {
	if got := PreferenceSystem.Next(); got != PreferenceLight {
		t.Errorf("system.Next() = %q, want light", got)
	}
	if got := Preference("bogus").Next(); got != PreferenceLight {
		t.Errorf("bogus.Next() = %q, want light", got)
	}
}

func TestLabel(t *testing.T) {
	if got := PreferenceSystem.Label(); got != "System" {
		t.Errorf("Label() = %q", got)
	}
}
