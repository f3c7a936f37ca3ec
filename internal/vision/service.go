package vision

import (
	"context"

	"resourcehub/internal/listings/service"
	apperrors "resourcehub/pkg/errors"
	"resourcehub/pkg/logger"
)

// QueueUpdater is the slice of the listing service the ingestion pipeline
// writes the observed head count through.
type QueueUpdater interface {
	UpdateQueueCount(ctx context.Context, id string, inQueue int) (*service.QueueResult, error)
}

// HeadCountResult reports one processed camera frame.
type HeadCountResult struct {
	ListingID string `json:"listing_id"`
	Name      string `json:"name"`
	HeadCount int    `json:"head_count"`
	Revision  string `json:"updatedRevId"`
}

type VisionService interface {
	ProcessImage(ctx context.Context, listingID string, image []byte) (*HeadCountResult, error)
}

type visionService struct {
	counter HeadCounter
	queue   QueueUpdater
	log     *logger.Logger
}

func NewVisionService(counter HeadCounter, queue QueueUpdater, log *logger.Logger) VisionService {
	return &visionService{
		counter: counter,
		queue:   queue,
		log:     log,
	}
}

func (s *visionService) ProcessImage(ctx context.Context, listingID string, image []byte) (*HeadCountResult, error) {
	if listingID == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}
	if len(image) == 0 {
		return nil, apperrors.InvalidInput("Image cannot be empty")
	}

	count, err := s.counter.CountHeads(ctx, image)
	if err != nil {
		s.log.Error("Head count failed", "listing_id", listingID, "error", err)
		return nil, apperrors.Upstream("Vision", err)
	}

	result, err := s.queue.UpdateQueueCount(ctx, listingID, count)
	if err != nil {
		return nil, err
	}

	s.log.Info("Head count recorded",
		"listing_id", listingID,
		"name", result.Name,
		"head_count", count,
	)

	return &HeadCountResult{
		ListingID: listingID,
		Name:      result.Name,
		HeadCount: count,
		Revision:  result.Revision,
	}, nil
}
