package assistant

import (
	"context"
	"fmt"
	"testing"

	"resourcehub/internal/listings/repository"
	"resourcehub/pkg/logger"
	"resourcehub/pkg/model"
)

type mockNLU struct {
	messageFunc func(ctx context.Context, sessionID, text string) (*NLUResponse, error)
}

func (m *mockNLU) CreateSession(_ context.Context) (string, error) {
	return "session-1", nil
}

func (m *mockNLU) Message(ctx context.Context, sessionID, text string) (*NLUResponse, error) {
	return m.messageFunc(ctx, sessionID, text)
}

type mockFinder struct {
	searchFunc func(ctx context.Context, filter repository.SearchFilter) ([]*model.Listing, error)
}

func (m *mockFinder) Search(ctx context.Context, filter repository.SearchFilter) ([]*model.Listing, error) {
	return m.searchFunc(ctx, filter)
}

func suppliesOutput(value string, confidence float64) *NLUResponse {
	return &NLUResponse{
		Intents:  []Intent{{Intent: "find_supplies", Confidence: 0.9}},
		Entities: []Entity{{Entity: "supplies", Value: value, Confidence: confidence}},
		Generic:  []Generic{{ResponseType: "text", Text: "Let me check."}},
	}
}

func TestMessage_EnrichesWithAvailableResources(t *testing.T) {
	nlu := &mockNLU{
		messageFunc: func(_ context.Context, _, _ string) (*NLUResponse, error) {
			return suppliesOutput("face-masks", 0.8), nil
		},
	}
	finder := &mockFinder{
		searchFunc: func(_ context.Context, filter repository.SearchFilter) ([]*model.Listing, error) {
			if filter.Name != "face-masks" {
				t.Errorf("lookup name = %q, want face-masks", filter.Name)
			}
			return []*model.Listing{{ID: "id-1", Name: "face-masks"}}, nil
		},
	}
	svc := NewAssistantService(nlu, finder, logger.Discard(), 0.25)

	result, err := svc.Message(context.Background(), "session-1", "Where can I find face-masks?")
	if err != nil {
		t.Fatalf("Message failed: %v", err)
	}

	if len(result.Resources) != 1 {
		t.Fatalf("resources = %d, want 1", len(result.Resources))
	}
	if result.Generic[0].Text != "There is face-masks available" {
		t.Errorf("reply = %q", result.Generic[0].Text)
	}
}

func TestMessage_NothingAvailable(t *testing.T) {
	nlu := &mockNLU{
		messageFunc: func(_ context.Context, _, _ string) (*NLUResponse, error) {
			return suppliesOutput("gloves", 0.8), nil
		},
	}
	finder := &mockFinder{
		searchFunc: func(_ context.Context, _ repository.SearchFilter) ([]*model.Listing, error) {
			return []*model.Listing{}, nil
		},
	}
	svc := NewAssistantService(nlu, finder, logger.Discard(), 0.25)

	result, err := svc.Message(context.Background(), "session-1", "Any gloves?")
	if err != nil {
		t.Fatalf("Message failed: %v", err)
	}

	if len(result.Resources) != 0 {
		t.Errorf("resources should be empty, got %d", len(result.Resources))
	}
	if result.Generic[0].Text != "Sorry, no gloves available" {
		t.Errorf("reply = %q", result.Generic[0].Text)
	}
}

func TestMessage_SkipsLookup(t *testing.T) {
	tests := []struct {
		name   string
		output *NLUResponse
	}{
		{
			name: "no intent recognized",
			output: &NLUResponse{
				Entities: []Entity{{Entity: "supplies", Value: "gloves", Confidence: 0.9}},
				Generic:  []Generic{{ResponseType: "text", Text: "I did not understand that."}},
			},
		},
		{
			name:   "confidence below the floor",
			output: suppliesOutput("gloves", 0.2),
		},
		{
			name: "unrelated entity",
			output: &NLUResponse{
				Intents:  []Intent{{Intent: "greeting", Confidence: 0.9}},
				Entities: []Entity{{Entity: "location", Value: "downtown", Confidence: 0.9}},
				Generic:  []Generic{{ResponseType: "text", Text: "Hello!"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nlu := &mockNLU{
				messageFunc: func(_ context.Context, _, _ string) (*NLUResponse, error) {
					return tt.output, nil
				},
			}
			finder := &mockFinder{
				searchFunc: func(_ context.Context, _ repository.SearchFilter) ([]*model.Listing, error) {
					t.Fatal("no lookup should happen")
					return nil, nil
				},
			}
			svc := NewAssistantService(nlu, finder, logger.Discard(), 0.25)

			result, err := svc.Message(context.Background(), "session-1", "hi")
			if err != nil {
				t.Fatalf("Message failed: %v", err)
			}
			// The original assistant reply passes through untouched.
			if result.Generic[0].Text != tt.output.Generic[0].Text {
				t.Errorf("reply changed to %q", result.Generic[0].Text)
			}
		})
	}
}

func TestMessage_LookupFailureKeepsReply(t *testing.T) {
	nlu := &mockNLU{
		messageFunc: func(_ context.Context, _, _ string) (*NLUResponse, error) {
			return suppliesOutput("gloves", 0.8), nil
		},
	}
	finder := &mockFinder{
		searchFunc: func(_ context.Context, _ repository.SearchFilter) ([]*model.Listing, error) {
			return nil, fmt.Errorf("store down")
		},
	}
	svc := NewAssistantService(nlu, finder, logger.Discard(), 0.25)

	result, err := svc.Message(context.Background(), "session-1", "Any gloves?")
	if err != nil {
		t.Fatalf("a failed lookup must not fail the message: %v", err)
	}
	if result.Generic[0].Text != "Let me check." {
		t.Errorf("reply = %q, want the assistant's original text", result.Generic[0].Text)
	}
}

func TestMessage_LastSuppliesEntityWins(t *testing.T) {
	nlu := &mockNLU{
		messageFunc: func(_ context.Context, _, _ string) (*NLUResponse, error) {
			return &NLUResponse{
				Intents: []Intent{{Intent: "find_supplies", Confidence: 0.9}},
				Entities: []Entity{
					{Entity: "supplies", Value: "gloves", Confidence: 0.5},
					{Entity: "supplies", Value: "face-masks", Confidence: 0.6},
				},
				Generic: []Generic{{ResponseType: "text", Text: "Checking."}},
			}, nil
		},
	}
	var lookedUp string
	finder := &mockFinder{
		searchFunc: func(_ context.Context, filter repository.SearchFilter) ([]*model.Listing, error) {
			lookedUp = filter.Name
			return []*model.Listing{}, nil
		},
	}
	svc := NewAssistantService(nlu, finder, logger.Discard(), 0.25)

	if _, err := svc.Message(context.Background(), "session-1", "gloves or masks?"); err != nil {
		t.Fatalf("Message failed: %v", err)
	}
	if lookedUp != "face-masks" {
		t.Errorf("looked up %q, want the last supplies entity", lookedUp)
	}
}
