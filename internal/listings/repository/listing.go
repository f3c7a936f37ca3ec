package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	listingerrors "resourcehub/internal/listings/errors"
	mongotx "resourcehub/pkg/db/mongo"
	"resourcehub/pkg/model"
)

const CollectionName = "listings"

// SearchFilter holds the optional, conjunctive query filters. Name matches as
// a case-insensitive substring; the rest match exactly.
type SearchFilter struct {
	Category    string
	SubCategory string
	Name        string
	OwnerID     string
}

// OccupancyChange selects how in_store is derived when an update does not
// carry it explicitly. Only the check-in/check-out path moves it, by ±1.
type OccupancyChange int

const (
	OccupancyUnchanged OccupancyChange = iota
	OccupancyIncrement
	OccupancyDecrement
)

type ListingRepository interface {
	Find(ctx context.Context, filter SearchFilter) ([]*model.Listing, error)
	FindByID(ctx context.Context, id string) (*model.Listing, error)
	Insert(ctx context.Context, listing *model.Listing) error
	Update(ctx context.Context, id string, update *model.ListingUpdate, occupancy OccupancyChange) (*model.Listing, error)
	UpdateQueueCount(ctx context.Context, id string, inQueue int) (revision, name string, err error)
	UpdateCapacityAndPolicy(ctx context.Context, id string, policy *model.CapacityPolicy, servingCapacity int) (revision string, err error)
	Delete(ctx context.Context, id string) error
	Info(ctx context.Context) (*StoreInfo, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

// StoreInfo is the connection health summary reported on /ready.
type StoreInfo struct {
	Database  string `json:"database"`
	Documents int64  `json:"documents"`
	Status    string `json:"status"`
}

type mongoListingRepository struct {
	db           *mongo.Database
	collection   *mongo.Collection
	txManager    mongotx.TransactionManager
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoListingRepository(client *mongo.Client, dbName string, readTimeout, writeTimeout time.Duration) ListingRepository {
	db := client.Database(dbName)
	return &mongoListingRepository{
		db:           db,
		collection:   db.Collection(CollectionName),
		txManager:    mongotx.NewTransactionManager(client),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// withTimeout wraps the context with a timeout unless we are inside a
// transaction; a SessionContext cannot be wrapped without breaking
// transaction semantics.
func (r *mongoListingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoListingRepository) Find(ctx context.Context, filter SearchFilter) ([]*model.Listing, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.SubCategory != "" {
		query["sub_category"] = filter.SubCategory
	}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.Name != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := []*model.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}

	return listings, nil
}

func (r *mongoListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	var listing model.Listing
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", listingerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return &listing, nil
}

func (r *mongoListingRepository) Insert(ctx context.Context, listing *model.Listing) error {
	ctx, cancel := r.withTimeout(ctx, r.writeTimeout)
	defer cancel()

	listing.ID = uuid.NewString()
	listing.Revision = firstRevision()
	listing.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, listing); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", listingerrors.ErrDuplicateID, listing.ID)
		}
		return fmt.Errorf("failed to insert listing: %w", err)
	}

	return nil
}

func (r *mongoListingRepository) Update(ctx context.Context, id string, update *model.ListingUpdate, occupancy OccupancyChange) (*model.Listing, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := mergeListing(current, update, occupancy)
	return r.replace(ctx, current, next)
}

func (r *mongoListingRepository) UpdateQueueCount(ctx context.Context, id string, inQueue int) (string, string, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return "", "", err
	}

	next := *current
	next.InQueue = inQueue
	updated, err := r.replace(ctx, current, &next)
	if err != nil {
		return "", "", err
	}
	return updated.Revision, updated.Name, nil
}

func (r *mongoListingRepository) UpdateCapacityAndPolicy(ctx context.Context, id string, policy *model.CapacityPolicy, servingCapacity int) (string, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	next := *current
	next.ServingCapacity = servingCapacity
	if policy != nil {
		next.EnforcedPolicy = policy
	}
	updated, err := r.replace(ctx, current, &next)
	if err != nil {
		return "", err
	}
	return updated.Revision, nil
}

// replace writes next in place of current, keyed on the revision read moments
// earlier. A matched count of zero after a successful read means a concurrent
// writer won the race.
func (r *mongoListingRepository) replace(ctx context.Context, current, next *model.Listing) (*model.Listing, error) {
	ctx, cancel := r.withTimeout(ctx, r.writeTimeout)
	defer cancel()

	next.Revision = nextRevision(current.Revision)

	result, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": current.ID, "revision": current.Revision}, next)
	if err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", listingerrors.ErrRevisionMismatch, current.ID)
	}

	return next, nil
}

func (r *mongoListingRepository) Delete(ctx context.Context, id string) error {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx, r.writeTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "revision": current.Revision})
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", listingerrors.ErrRevisionMismatch, id)
	}

	return nil
}

func (r *mongoListingRepository) Info(ctx context.Context) (*StoreInfo, error) {
	ctx, cancel := r.withTimeout(ctx, r.readTimeout)
	defer cancel()

	if err := r.db.Client().Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("store unreachable: %w", err)
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	return &StoreInfo{
		Database:  r.db.Name(),
		Documents: count,
		Status:    "ok",
	}, nil
}

func (r *mongoListingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

// mergeListing builds the next document state: present update fields
// overwrite, absent fields carry over verbatim. When in_store is absent it is
// derived from the current value per the occupancy change: +1 on check-in,
// -1 on check-out (never below zero), untouched otherwise.
func mergeListing(current *model.Listing, update *model.ListingUpdate, occupancy OccupancyChange) *model.Listing {
	next := *current

	if update.Name != "" {
		next.Name = update.Name
	}
	if update.ContactNo != "" {
		next.ContactNo = update.ContactNo
	}
	if update.Category != "" {
		next.Category = update.Category
	}
	if update.SubCategory != "" {
		next.SubCategory = update.SubCategory
	}
	if update.ServingCapacity != nil {
		next.ServingCapacity = *update.ServingCapacity
	}
	if update.InQueue != nil {
		next.InQueue = *update.InQueue
	}

	if update.InStore != nil {
		next.InStore = *update.InStore
	} else if occupancy == OccupancyIncrement {
		next.InStore = current.InStore + 1
	} else if occupancy == OccupancyDecrement && current.InStore > 0 {
		next.InStore = current.InStore - 1
	}

	if update.Marker != "" {
		next.Marker = update.Marker
	}
	if update.Location != "" {
		next.Location = update.Location
	}
	if update.Password != "" {
		next.Password = update.Password
	}

	return &next
}

// Revision tokens are generation-prefixed opaque strings, e.g. "3-9f2c41d08ab7".
// The generation is bookkeeping only; comparisons always use the whole token.

func firstRevision() string {
	return "1-" + revisionSuffix()
}

func nextRevision(current string) string {
	gen := 0
	if idx := strings.IndexByte(current, '-'); idx > 0 {
		if n, err := strconv.Atoi(current[:idx]); err == nil {
			gen = n
		}
	}
	return strconv.Itoa(gen+1) + "-" + revisionSuffix()
}

func revisionSuffix() string {
	b := make([]byte, 6)
	rand.Read(b)
	return hex.EncodeToString(b)
}
