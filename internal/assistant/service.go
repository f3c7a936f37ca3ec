package assistant

import (
	"context"
	"fmt"

	"resourcehub/internal/listings/repository"
	"resourcehub/pkg/logger"
	"resourcehub/pkg/model"
)

// The entity name the trained skill uses for the target of a resource
// question, e.g. "Where can I find face-masks?" yields a supplies entity
// with value "face-masks".
const suppliesEntity = "supplies"

// ResourceFinder is the slice of the listing service the enrichment step
// needs to look up available resources by name.
type ResourceFinder interface {
	Search(ctx context.Context, filter repository.SearchFilter) ([]*model.Listing, error)
}

// MessageResult is the assistant reply, optionally enriched with the
// matching listings when the message asked about a known resource.
type MessageResult struct {
	NLUResponse
	Resources []*model.Listing `json:"resources,omitempty"`
}

type AssistantService interface {
	Session(ctx context.Context) (string, error)
	Message(ctx context.Context, sessionID, text string) (*MessageResult, error)
}

type assistantService struct {
	nlu           NLUClient
	finder        ResourceFinder
	log           *logger.Logger
	minConfidence float64
}

func NewAssistantService(nlu NLUClient, finder ResourceFinder, log *logger.Logger, minConfidence float64) AssistantService {
	return &assistantService{
		nlu:           nlu,
		finder:        finder,
		log:           log,
		minConfidence: minConfidence,
	}
}

func (s *assistantService) Session(ctx context.Context) (string, error) {
	return s.nlu.CreateSession(ctx)
}

func (s *assistantService) Message(ctx context.Context, sessionID, text string) (*MessageResult, error) {
	output, err := s.nlu.Message(ctx, sessionID, text)
	if err != nil {
		return nil, err
	}

	result := &MessageResult{NLUResponse: *output}

	resource := s.requestedResource(output)
	if resource == "" {
		return result, nil
	}

	listings, err := s.finder.Search(ctx, repository.SearchFilter{Name: resource})
	if err != nil {
		// The assistant reply still stands on its own; the lookup is
		// best effort.
		s.log.Warn("Resource lookup for assistant reply failed",
			"resource", resource,
			"error", err,
		)
		return result, nil
	}

	if len(listings) > 0 {
		result.Resources = listings
		s.spliceReply(result, fmt.Sprintf("There is %s available", resource))
	} else {
		s.spliceReply(result, fmt.Sprintf("Sorry, no %s available", resource))
	}

	return result, nil
}

// requestedResource returns the supplies entity value when the message was
// understood at all and the entity cleared the confidence floor. With several
// matches the last one wins.
func (s *assistantService) requestedResource(output *NLUResponse) string {
	if len(output.Intents) == 0 {
		return ""
	}

	resource := ""
	for _, entity := range output.Entities {
		if entity.Entity == suppliesEntity && entity.Confidence > s.minConfidence {
			resource = entity.Value
		}
	}
	return resource
}

func (s *assistantService) spliceReply(result *MessageResult, text string) {
	if len(result.Generic) == 0 {
		result.Generic = []Generic{{ResponseType: "text"}}
	}
	result.Generic[0].Text = text
}
