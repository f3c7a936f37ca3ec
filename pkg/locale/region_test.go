package locale

import (
	"testing"
)

func TestInferRegionFromPhone(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		wantCode string
		wantNil  bool
	}{
		{
			name:     "India phone",
			phone:    "+919876543210",
			wantCode: "IN",
		},
		{
			name:     "India phone without plus",
			phone:    "919876543210",
			wantCode: "IN",
		},
		{
			name:     "US phone",
			phone:    "+12125551234",
			wantCode: "US",
		},
		{
			name:     "UK phone",
			phone:    "+442071234567",
			wantCode: "GB",
		},
		{
			name:    "unknown prefix",
			phone:   "+49301234567",
			wantNil: true,
		},
		{
			name:    "empty phone",
			phone:   "",
			wantNil: true,
		},
		{
			name:    "local number without prefix",
			phone:   "0221234567",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferRegionFromPhone(tt.phone)
			if tt.wantNil {
				if got != nil {
					t.Errorf("InferRegionFromPhone(%q) = %v, want nil", tt.phone, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("InferRegionFromPhone(%q) = nil, want %s", tt.phone, tt.wantCode)
			}
			if got.Code != tt.wantCode {
				t.Errorf("InferRegionFromPhone(%q).Code = %s, want %s", tt.phone, got.Code, tt.wantCode)
			}
		})
	}
}

func TestCandidateRegions(t *testing.T) {
	t.Run("prefix match leads", func(t *testing.T) {
		codes := CandidateRegions("+12125551234")
		if len(codes) == 0 || codes[0] != "US" {
			t.Errorf("CandidateRegions = %v, want US first", codes)
		}
	})

	t.Run("no prefix keeps default order", func(t *testing.T) {
		codes := CandidateRegions("9876543210")
		if len(codes) != len(DefaultRegions) {
			t.Fatalf("CandidateRegions = %v", codes)
		}
		if codes[0] != "IN" {
			t.Errorf("first candidate = %s, want IN", codes[0])
		}
	})

	t.Run("no duplicates", func(t *testing.T) {
		codes := CandidateRegions("+919876543210")
		seen := map[string]bool{}
		for _, code := range codes {
			if seen[code] {
				t.Errorf("duplicate region %s in %v", code, codes)
			}
			seen[code] = true
		}
	})
}
