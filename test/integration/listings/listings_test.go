package listings

import (
	"fmt"
	"net/http"
	"testing"

	"resourcehub/pkg/model"
	"resourcehub/test/integration/testutil"
)

type registerData struct {
	ID       string `json:"createdId"`
	Revision string `json:"createdRevId"`
}

type envelope[T any] struct {
	Data T `json:"data"`
}

func register(t *testing.T, client *testutil.Client, payload map[string]any) registerData {
	t.Helper()

	resp := client.POST(t, "/api/resource", payload)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created envelope[registerData]
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}
	if created.Data.ID == "" || created.Data.Revision == "" {
		t.Fatalf("incomplete register response: %+v", created.Data)
	}
	return created.Data
}

func TestRegisterAndSearch(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	payload := testutil.ValidListing()
	created := register(t, client, payload)

	if got := mongo.CountListings(t); got != 1 {
		t.Errorf("stored documents = %d, want 1", got)
	}

	resp := client.GET(t, "/api/resource?owner_id="+payload["owner_id"].(string))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var found envelope[[]model.Listing]
	if err := resp.DecodeJSON(&found); err != nil {
		t.Fatalf("failed to decode search response: %v", err)
	}
	if len(found.Data) != 1 {
		t.Fatalf("search returned %d listings, want 1", len(found.Data))
	}

	listing := found.Data[0]
	if listing.ID != created.ID {
		t.Errorf("id = %s, want %s", listing.ID, created.ID)
	}
	if listing.InQueue != 0 || listing.InStore != 1 {
		t.Errorf("counters = %d/%d, want 0/1", listing.InQueue, listing.InStore)
	}
	if listing.Marker != model.MarkerGreen {
		t.Errorf("marker = %s, want %s", listing.Marker, model.MarkerGreen)
	}
}

func TestDuplicateOwnerRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	payload := testutil.ValidListing()
	register(t, client, payload)

	resp := client.POST(t, "/api/resource", payload)
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
}

func TestLoginCheckInCheckOut(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	payload := testutil.ValidListing()
	created := register(t, client, payload)

	resp := client.POST(t, "/api/resource/login", map[string]any{
		"owner_id": payload["owner_id"],
		"password": testutil.FixturePassword,
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var login envelope[struct {
		Match     bool   `json:"match"`
		Token     string `json:"token"`
		ListingID string `json:"listing_id"`
	}]
	if err := resp.DecodeJSON(&login); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if !login.Data.Match || login.Data.Token == "" {
		t.Fatalf("login did not issue a token: %+v", login.Data)
	}

	resp = client.POST(t, "/api/resource/checkin", map[string]any{
		"listing_id": created.ID,
		"token":      login.Data.Token,
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var checkin envelope[struct {
		InStore int `json:"in_store"`
	}]
	if err := resp.DecodeJSON(&checkin); err != nil {
		t.Fatalf("failed to decode checkin response: %v", err)
	}
	if checkin.Data.InStore != 2 {
		t.Errorf("in_store after check-in = %d, want 2", checkin.Data.InStore)
	}

	resp = client.POST(t, "/api/resource/checkout", map[string]any{
		"listing_id": created.ID,
		"token":      login.Data.Token,
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp = client.POST(t, "/api/resource/checkin", map[string]any{
		"listing_id": created.ID,
		"token":      "not-a-valid-token",
	})
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
}

func TestUpdateAndDelete(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := register(t, client, testutil.ValidListing())

	resp := client.PATCH(t, fmt.Sprintf("/api/resource/%s", created.ID), map[string]any{
		"name": "Renamed Pharmacy",
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var updated envelope[struct {
		Revision string `json:"updatedRevId"`
	}]
	if err := resp.DecodeJSON(&updated); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}
	if updated.Data.Revision == created.Revision {
		t.Error("revision must rotate on update")
	}

	resp = client.DELETE(t, fmt.Sprintf("/api/resource/%s", created.ID))
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	if got := mongo.CountListings(t); got != 0 {
		t.Errorf("stored documents after delete = %d, want 0", got)
	}

	resp = client.DELETE(t, fmt.Sprintf("/api/resource/%s", created.ID))
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}
