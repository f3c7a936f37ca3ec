package policy

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"resourcehub/internal/listings/repository"
	apperrors "resourcehub/pkg/errors"
	"resourcehub/pkg/kafka"
	"resourcehub/pkg/logger"
	"resourcehub/pkg/model"
)

type mockStore struct {
	mu         sync.Mutex
	listings   []*model.Listing
	updateFunc func(ctx context.Context, id string, policy *model.CapacityPolicy, servingCapacity int) (string, error)
	updates    map[string]int
}

func (m *mockStore) Find(_ context.Context, _ repository.SearchFilter) ([]*model.Listing, error) {
	return m.listings, nil
}

func (m *mockStore) UpdateCapacityAndPolicy(ctx context.Context, id string, policy *model.CapacityPolicy, servingCapacity int) (string, error) {
	m.mu.Lock()
	if m.updates == nil {
		m.updates = map[string]int{}
	}
	m.updates[id] = servingCapacity
	m.mu.Unlock()

	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, policy, servingCapacity)
	}
	return "2-abc", nil
}

type noopPublisher struct {
	mu     sync.Mutex
	events []kafka.Event
}

func (p *noopPublisher) Publish(_ context.Context, event kafka.Event) {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
}

// Bengaluru city center with listings inside and outside a 5 km fence.
func zonedListings() []*model.Listing {
	return []*model.Listing{
		{ID: "near-1", Name: "Near One", Location: "12.9716,77.5946", ServingCapacity: 10},
		{ID: "near-2", Name: "Near Two", Location: "12.9800,77.6000", ServingCapacity: 7},
		{ID: "far-1", Name: "Far One", Location: "13.3000,78.1000", ServingCapacity: 20},
		{ID: "bad-loc", Name: "Bad Location", Location: "not-a-place", ServingCapacity: 5},
	}
}

func enforceRequest() *EnforceRequest {
	return &EnforceRequest{
		PolicyName:      "social-distancing",
		ServingCapacity: 0.5,
		Zone:            model.Zone{Lat: 12.9716, Long: 77.5946, RadiusKM: 5},
	}
}

func TestEnforce_ScalesListingsInZone(t *testing.T) {
	store := &mockStore{listings: zonedListings()}
	events := &noopPublisher{}
	svc := NewPolicyService(store, events, logger.Discard())

	result, err := svc.Enforce(context.Background(), enforceRequest())
	if err != nil {
		t.Fatalf("Enforce failed: %v", err)
	}

	if result.Count != 2 {
		t.Errorf("count = %d, want 2", result.Count)
	}
	sort.Strings(result.Affected)
	if len(result.Affected) != 2 || result.Affected[0] != "Near One" || result.Affected[1] != "Near Two" {
		t.Errorf("affected = %v", result.Affected)
	}

	if got := store.updates["near-1"]; got != 5 {
		t.Errorf("near-1 capacity = %d, want floor(10*0.5)=5", got)
	}
	if got := store.updates["near-2"]; got != 3 {
		t.Errorf("near-2 capacity = %d, want floor(7*0.5)=3", got)
	}
	if _, touched := store.updates["far-1"]; touched {
		t.Error("listings outside the zone must not be touched")
	}
	if _, touched := store.updates["bad-loc"]; touched {
		t.Error("listings with unparseable locations must be skipped")
	}

	if len(events.events) != 1 || events.events[0].EventType != kafka.EventPolicyEnforced {
		t.Errorf("unexpected events: %+v", events.events)
	}
}

func TestEnforce_EmptyZone(t *testing.T) {
	store := &mockStore{listings: zonedListings()}
	svc := NewPolicyService(store, &noopPublisher{}, logger.Discard())

	req := enforceRequest()
	req.Zone = model.Zone{Lat: -33.8688, Long: 151.2093, RadiusKM: 1}

	result, err := svc.Enforce(context.Background(), req)
	if err != nil {
		t.Fatalf("an empty zone is not an error: %v", err)
	}
	if result.Count != 0 || len(store.updates) != 0 {
		t.Errorf("nothing should be touched, got %+v", result)
	}
}

func TestEnforce_PartialFailure(t *testing.T) {
	store := &mockStore{
		listings: zonedListings(),
		updateFunc: func(_ context.Context, id string, _ *model.CapacityPolicy, _ int) (string, error) {
			if id == "near-2" {
				return "", fmt.Errorf("write conflict")
			}
			return "2-abc", nil
		},
	}
	events := &noopPublisher{}
	svc := NewPolicyService(store, events, logger.Discard())

	_, err := svc.Enforce(context.Background(), enforceRequest())
	if err == nil {
		t.Fatal("expected a failure when any update fails")
	}

	appErr := apperrors.AsAppError(err)
	failedIDs, ok := appErr.Details["failed_ids"].([]string)
	if !ok || len(failedIDs) != 1 || failedIDs[0] != "near-2" {
		t.Errorf("failed_ids = %v", appErr.Details["failed_ids"])
	}
	// No rollback: the successful update stays applied.
	if got := store.updates["near-1"]; got != 5 {
		t.Errorf("applied update was lost, capacity = %d", got)
	}
	if len(events.events) != 0 {
		t.Error("no event should be published on failure")
	}
}

func TestEnforce_RejectsBadRequests(t *testing.T) {
	svc := NewPolicyService(&mockStore{}, &noopPublisher{}, logger.Discard())

	tests := []struct {
		name   string
		mutate func(*EnforceRequest)
	}{
		{"missing name", func(r *EnforceRequest) { r.PolicyName = "" }},
		{"zero multiplier", func(r *EnforceRequest) { r.ServingCapacity = 0 }},
		{"negative radius", func(r *EnforceRequest) { r.Zone.RadiusKM = -1 }},
		{"latitude out of range", func(r *EnforceRequest) { r.Zone.Lat = 91 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := enforceRequest()
			tt.mutate(req)

			_, err := svc.Enforce(context.Background(), req)
			if err == nil {
				t.Fatal("expected an error")
			}
			if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
				t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeInvalidInput)
			}
		})
	}
}
