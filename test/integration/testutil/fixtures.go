package testutil

import (
	"fmt"
	"time"
)

const FixturePassword = "integration-pw"

// ValidListing returns a registration payload with a unique owner so tests
// never trip the duplicate-owner check. A plain map because the password is
// write-only on the model.
func ValidListing() map[string]any {
	owner := fmt.Sprintf("owner-%d", time.Now().UnixNano())
	return map[string]any{
		"name":             "Integration Test Pharmacy",
		"owner_id":         owner,
		"contact_no":       "+919876543210",
		"category":         "Food",
		"sub_category":     "medical_stores",
		"serving_capacity": 10,
		"location":         "12.9716,77.5946",
		"password":         FixturePassword,
	}
}
