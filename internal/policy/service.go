package policy

import (
	"context"
	"math"
	"sync"
	"time"

	"resourcehub/internal/listings/repository"
	apperrors "resourcehub/pkg/errors"
	"resourcehub/pkg/geo"
	"resourcehub/pkg/kafka"
	"resourcehub/pkg/logger"
	"resourcehub/pkg/model"
)

// ListingStore is the slice of the listing repository the enforcement pass
// needs: a full scan plus the capacity/policy write.
type ListingStore interface {
	Find(ctx context.Context, filter repository.SearchFilter) ([]*model.Listing, error)
	UpdateCapacityAndPolicy(ctx context.Context, id string, policy *model.CapacityPolicy, servingCapacity int) (string, error)
}

// EnforceRequest scales the serving capacity of every listing inside the
// zone by the multiplier.
type EnforceRequest struct {
	PolicyName      string     `json:"policy_name"`
	ServingCapacity float64    `json:"serving_capacity"`
	Zone            model.Zone `json:"zone"`
}

// EnforceResult reports the listings the policy touched.
type EnforceResult struct {
	Policy   string   `json:"policy"`
	Affected []string `json:"affected"`
	Count    int      `json:"count"`
}

type PolicyService interface {
	Enforce(ctx context.Context, req *EnforceRequest) (*EnforceResult, error)
}

type policyService struct {
	store  ListingStore
	events EventPublisher
	log    *logger.Logger
}

// EventPublisher mirrors the producer's fire-and-forget publish.
type EventPublisher interface {
	Publish(ctx context.Context, event kafka.Event)
}

func NewPolicyService(store ListingStore, events EventPublisher, log *logger.Logger) PolicyService {
	return &policyService{
		store:  store,
		events: events,
		log:    log,
	}
}

func (s *policyService) Enforce(ctx context.Context, req *EnforceRequest) (*EnforceResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	listings, err := s.store.Find(ctx, repository.SearchFilter{})
	if err != nil {
		s.log.Error("Failed to load listings for policy enforcement", "policy", req.PolicyName, "error", err)
		return nil, apperrors.Internal("Failed to load listings", err)
	}

	center := geo.Point{Lat: req.Zone.Lat, Long: req.Zone.Long}
	policy := &model.CapacityPolicy{
		Name:       req.PolicyName,
		Multiplier: req.ServingCapacity,
		Zone:       req.Zone,
		AppliedAt:  time.Now().UTC(),
	}

	var inZone []*model.Listing
	for _, listing := range listings {
		location, err := geo.ParseLocation(listing.Location)
		if err != nil {
			s.log.Warn("Skipping listing with unparseable location",
				"id", listing.ID,
				"location", listing.Location,
			)
			continue
		}
		if geo.WithinRadius(center, location, req.Zone.RadiusKM) {
			inZone = append(inZone, listing)
		}
	}

	affected := make([]string, len(inZone))
	failed := make([]string, len(inZone))

	var wg sync.WaitGroup
	for i, listing := range inZone {
		wg.Add(1)
		go func(i int, listing *model.Listing) {
			defer wg.Done()

			capacity := int(math.Floor(float64(listing.ServingCapacity) * req.ServingCapacity))
			if _, err := s.store.UpdateCapacityAndPolicy(ctx, listing.ID, policy, capacity); err != nil {
				s.log.Error("Failed to apply policy to listing",
					"policy", req.PolicyName,
					"id", listing.ID,
					"error", err,
				)
				failed[i] = listing.ID
				return
			}
			affected[i] = listing.Name
		}(i, listing)
	}
	wg.Wait()

	var failedIDs []string
	for _, id := range failed {
		if id != "" {
			failedIDs = append(failedIDs, id)
		}
	}
	var affectedNames []string
	for _, name := range affected {
		if name != "" {
			affectedNames = append(affectedNames, name)
		}
	}

	// Applied updates stay applied; a re-run converges the stragglers.
	if len(failedIDs) > 0 {
		return nil, apperrors.Internal("Policy was not applied to every listing in the zone", nil).
			WithDetails(map[string]any{
				"policy":     req.PolicyName,
				"failed_ids": failedIDs,
				"applied":    affectedNames,
			})
	}

	s.log.Info("Policy enforced",
		"policy", req.PolicyName,
		"multiplier", req.ServingCapacity,
		"affected", len(affectedNames),
	)
	s.events.Publish(ctx, kafka.NewEvent(kafka.EventPolicyEnforced, "", map[string]any{
		"policy":   req.PolicyName,
		"affected": affectedNames,
	}))

	return &EnforceResult{
		Policy:   req.PolicyName,
		Affected: affectedNames,
		Count:    len(affectedNames),
	}, nil
}

func validateRequest(req *EnforceRequest) error {
	if req.PolicyName == "" {
		return apperrors.InvalidInput("Policy name must be provided")
	}
	if req.ServingCapacity <= 0 {
		return apperrors.InvalidInput("Serving capacity multiplier must be positive")
	}
	if req.Zone.RadiusKM <= 0 {
		return apperrors.InvalidInput("Zone radius must be positive")
	}
	if req.Zone.Lat < -90 || req.Zone.Lat > 90 || req.Zone.Long < -180 || req.Zone.Long > 180 {
		return apperrors.InvalidInput("Zone center is out of range")
	}
	return nil
}
