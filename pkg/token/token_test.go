package token

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Minute)

	signed, err := m.Issue("owner-1", "listing-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.OwnerID != "owner-1" {
		t.Errorf("OwnerID = %s, want owner-1", claims.OwnerID)
	}
	if claims.ListingID != "listing-1" {
		t.Errorf("ListingID = %s, want listing-1", claims.ListingID)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, err := NewManager("secret-a", time.Minute).Issue("owner-1", "listing-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := NewManager("secret-b", time.Minute).Verify(signed); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestVerify_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	signed, err := m.Issue("owner-1", "listing-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := m.Verify(signed); err == nil {
		t.Error("expected verification of an expired token to fail")
	}
}

func TestVerify_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Minute)
	if _, err := m.Verify("not-a-token"); err == nil {
		t.Error("expected garbage input to fail verification")
	}
}
