package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	listingerrors "resourcehub/internal/listings/errors"
	"resourcehub/internal/listings/repository"
	"resourcehub/internal/listings/validator"
	apperrors "resourcehub/pkg/errors"
	"resourcehub/pkg/kafka"
	"resourcehub/pkg/logger"
	"resourcehub/pkg/model"
	"resourcehub/pkg/sanitizer"
	"resourcehub/pkg/token"
)

// EventPublisher is the slice of the Kafka producer the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, event kafka.Event)
}

type RegisterResult struct {
	ID       string `json:"createdId"`
	Revision string `json:"createdRevId"`
}

type UpdateResult struct {
	Revision string `json:"updatedRevId"`
}

type LoginResult struct {
	Match     bool   `json:"match"`
	Token     string `json:"token,omitempty"`
	ListingID string `json:"listing_id,omitempty"`
}

type OccupancyResult struct {
	Revision string `json:"updatedRevId"`
	InStore  int    `json:"in_store"`
}

type QueueResult struct {
	Revision string `json:"updatedRevId"`
	Name     string `json:"name"`
	InQueue  int    `json:"in_queue"`
}

type ListingService interface {
	Register(ctx context.Context, listing *model.Listing) (*RegisterResult, error)
	Search(ctx context.Context, filter repository.SearchFilter) ([]*model.Listing, error)
	Update(ctx context.Context, id string, update *model.ListingUpdate) (*UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Login(ctx context.Context, ownerID, password string) (*LoginResult, error)
	CheckIn(ctx context.Context, id, accessToken string) (*OccupancyResult, error)
	CheckOut(ctx context.Context, id, accessToken string) (*OccupancyResult, error)
	UpdateQueueCount(ctx context.Context, id string, inQueue int) (*QueueResult, error)
	Info(ctx context.Context) (*repository.StoreInfo, error)
}

type listingService struct {
	repo       repository.ListingRepository
	validator  *validator.ListingValidator
	tokens     *token.Manager
	events     EventPublisher
	log        *logger.Logger
	bcryptCost int
}

func NewListingService(
	repo repository.ListingRepository,
	v *validator.ListingValidator,
	tokens *token.Manager,
	events EventPublisher,
	log *logger.Logger,
	bcryptCost int,
) ListingService {
	return &listingService{
		repo:       repo,
		validator:  v,
		tokens:     tokens,
		events:     events,
		log:        log,
		bcryptCost: bcryptCost,
	}
}

func (s *listingService) Register(ctx context.Context, listing *model.Listing) (*RegisterResult, error) {
	listing.Name = sanitizer.NormalizeName(listing.Name)
	listing.ContactNo = sanitizer.NormalizeContact(listing.ContactNo)
	listing.InQueue = 0
	listing.InStore = 1
	if listing.Marker == "" {
		listing.Marker = model.MarkerGreen
	}

	if err := s.validator.Validate(listing); err != nil {
		s.log.Warn("Listing validation failed",
			"owner_id", listing.OwnerID,
			"error", err,
		)
		return nil, apperrors.Validation(err.Error(), map[string]any{
			"errors": err.Error(),
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(listing.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}
	listing.Password = string(hashed)

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.Find(sessCtx, repository.SearchFilter{OwnerID: listing.OwnerID})
		if err != nil {
			return fmt.Errorf("failed to check for duplicate owner: %w", err)
		}
		if len(existing) > 0 {
			return apperrors.Conflict(fmt.Sprintf(
				"A listing for owner %s already exists (id: %s)",
				listing.OwnerID, existing[0].ID,
			))
		}

		return s.repo.Insert(sessCtx, listing)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		if errors.Is(err, listingerrors.ErrDuplicateID) {
			return nil, apperrors.Conflict("Listing id collision, please retry")
		}
		s.log.Error("Failed to register listing", "owner_id", listing.OwnerID, "error", err)
		return nil, apperrors.Internal("Failed to register listing", err)
	}

	s.log.Info("Listing registered",
		"id", listing.ID,
		"name", listing.Name,
		"owner_id", listing.OwnerID,
		"category", listing.Category,
	)
	s.events.Publish(ctx, kafka.NewEvent(kafka.EventListingCreated, listing.ID, map[string]any{
		"name":     listing.Name,
		"category": listing.Category,
	}))

	return &RegisterResult{ID: listing.ID, Revision: listing.Revision}, nil
}

func (s *listingService) Search(ctx context.Context, filter repository.SearchFilter) ([]*model.Listing, error) {
	listings, err := s.repo.Find(ctx, filter)
	if err != nil {
		s.log.Error("Failed to search listings", "error", err)
		return nil, apperrors.Internal("Failed to search listings", err)
	}
	return listings, nil
}

func (s *listingService) Update(ctx context.Context, id string, update *model.ListingUpdate) (*UpdateResult, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	if update.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(update.Password), s.bcryptCost)
		if err != nil {
			return nil, apperrors.Internal("Failed to hash password", err)
		}
		update.Password = string(hashed)
	}
	if update.ContactNo != "" {
		update.ContactNo = sanitizer.NormalizeContact(update.ContactNo)
	}

	updated, err := s.repo.Update(ctx, id, update, repository.OccupancyUnchanged)
	if err != nil {
		return nil, s.mapStoreError(err, id, "update listing")
	}

	s.events.Publish(ctx, kafka.NewEvent(kafka.EventListingUpdated, id, nil))
	return &UpdateResult{Revision: updated.Revision}, nil
}

func (s *listingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Listing ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapStoreError(err, id, "delete listing")
	}

	s.log.Info("Listing deleted", "id", id)
	s.events.Publish(ctx, kafka.NewEvent(kafka.EventListingDeleted, id, nil))
	return nil
}

func (s *listingService) Login(ctx context.Context, ownerID, password string) (*LoginResult, error) {
	matches, err := s.repo.Find(ctx, repository.SearchFilter{OwnerID: ownerID})
	if err != nil {
		s.log.Error("Failed to look up owner", "owner_id", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to look up owner", err)
	}
	if len(matches) == 0 {
		return nil, apperrors.Validation("owner_id not present", map[string]any{
			"owner_id": ownerID,
		})
	}

	listing := matches[0]
	if err := bcrypt.CompareHashAndPassword([]byte(listing.Password), []byte(password)); err != nil {
		s.log.Warn("Login failed", "owner_id", ownerID)
		return &LoginResult{Match: false}, nil
	}

	accessToken, err := s.tokens.Issue(ownerID, listing.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue access token", err)
	}

	return &LoginResult{
		Match:     true,
		Token:     accessToken,
		ListingID: listing.ID,
	}, nil
}

func (s *listingService) CheckIn(ctx context.Context, id, accessToken string) (*OccupancyResult, error) {
	return s.adjustOccupancy(ctx, id, accessToken, repository.OccupancyIncrement, kafka.EventListingCheckedIn)
}

func (s *listingService) CheckOut(ctx context.Context, id, accessToken string) (*OccupancyResult, error) {
	return s.adjustOccupancy(ctx, id, accessToken, repository.OccupancyDecrement, kafka.EventListingCheckedOut)
}

func (s *listingService) adjustOccupancy(ctx context.Context, id, accessToken string, occupancy repository.OccupancyChange, eventType string) (*OccupancyResult, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}
	if _, err := s.tokens.Verify(accessToken); err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}

	updated, err := s.repo.Update(ctx, id, &model.ListingUpdate{}, occupancy)
	if err != nil {
		return nil, s.mapStoreError(err, id, "adjust occupancy")
	}

	s.events.Publish(ctx, kafka.NewEvent(eventType, id, map[string]any{
		"in_store": updated.InStore,
	}))

	return &OccupancyResult{Revision: updated.Revision, InStore: updated.InStore}, nil
}

func (s *listingService) UpdateQueueCount(ctx context.Context, id string, inQueue int) (*QueueResult, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}
	if inQueue < 0 {
		return nil, apperrors.InvalidInput("in_queue cannot be negative")
	}

	revision, name, err := s.repo.UpdateQueueCount(ctx, id, inQueue)
	if err != nil {
		return nil, s.mapStoreError(err, id, "update queue count")
	}

	s.events.Publish(ctx, kafka.NewEvent(kafka.EventQueueUpdated, id, map[string]any{
		"in_queue": inQueue,
	}))

	return &QueueResult{Revision: revision, Name: name, InQueue: inQueue}, nil
}

func (s *listingService) Info(ctx context.Context) (*repository.StoreInfo, error) {
	info, err := s.repo.Info(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "Listing store is unreachable", 503)
	}
	return info, nil
}

func (s *listingService) mapStoreError(err error, id, op string) error {
	switch {
	case errors.Is(err, listingerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Listing", id)
	case errors.Is(err, listingerrors.ErrRevisionMismatch):
		return apperrors.WriteConflict("Listing", id)
	default:
		s.log.Error("Store operation failed", "op", op, "id", id, "error", err)
		return apperrors.Internal(fmt.Sprintf("Failed to %s", op), err)
	}
}
