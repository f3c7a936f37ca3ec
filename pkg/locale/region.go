package locale

import "strings"

// Region describes one calling region the directory accepts contact numbers
// from. Code is the ISO 3166-1 alpha-2 hint the phone number parser expects.
type Region struct {
	Code          string
	Name          string
	PhonePrefixes []string
}

// DefaultRegions is the parse order for numbers without an international
// prefix. The directory launched in India, so IN leads.
var DefaultRegions = []Region{
	{
		Code:          "IN",
		Name:          "India",
		PhonePrefixes: []string{"+91", "91"},
	},
	{
		Code:          "US",
		Name:          "United States",
		PhonePrefixes: []string{"+1", "1"},
	},
	{
		Code:          "GB",
		Name:          "United Kingdom",
		PhonePrefixes: []string{"+44", "44"},
	},
}

// InferRegionFromPhone matches an international prefix to a known region.
// Returns nil when no prefix matches.
func InferRegionFromPhone(phone string) *Region {
	normalized := strings.TrimSpace(phone)
	if normalized == "" {
		return nil
	}

	for i := range DefaultRegions {
		for _, prefix := range DefaultRegions[i].PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return &DefaultRegions[i]
			}
		}
	}
	return nil
}

// CandidateRegions orders the region codes to try when parsing a contact
// number: a prefix match first, then the remaining defaults.
func CandidateRegions(phone string) []string {
	codes := make([]string, 0, len(DefaultRegions))

	if matched := InferRegionFromPhone(phone); matched != nil {
		codes = append(codes, matched.Code)
	}
	for _, region := range DefaultRegions {
		if len(codes) > 0 && region.Code == codes[0] {
			continue
		}
		codes = append(codes, region.Code)
	}
	return codes
}
