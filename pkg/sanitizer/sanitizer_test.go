package sanitizer

import "testing"

func TestNormalizeContact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"indian mobile with spaces", "98450 12345", "+919845012345"},
		{"already e164", "+919845012345", "+919845012345"},
		{"us number", "(212) 555-0175", "+12125550175"},
		{"unparseable passes through", "front-desk", "front-desk"},
		{"short code passes through", "555", "555"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeContact(tt.input); got != tt.want {
				t.Errorf("NormalizeContact(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeContact_Idempotent(t *testing.T) {
	once := NormalizeContact("98450 12345")
	twice := NormalizeContact(once)
	if once != twice {
		t.Errorf("normalization is not idempotent: %q vs %q", once, twice)
	}
}

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  ABC   Pharmacy  ", "ABC Pharmacy"},
		{"one\ttwo\nthree", "one two three"},
		{"", ""},
		{"   ", ""},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := TrimAndNormalize(tt.input); got != tt.want {
			t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
