package model

import "time"

// Marker values understood by the mobile client.
const (
	MarkerGreen = "markerGreen"
	MarkerRed   = "markerRed"
)

// Listing is one vendor/resource document. The revision token is replaced on
// every write and must accompany update and delete operations.
type Listing struct {
	ID              string          `bson:"_id,omitempty" json:"id"`
	Revision        string          `bson:"revision,omitempty" json:"revision"`
	Name            string          `bson:"name" json:"name" validate:"required,min=2,max=100"`
	OwnerID         string          `bson:"owner_id" json:"owner_id" validate:"required,min=2,max=100"`
	ContactNo       string          `bson:"contact_no" json:"contact_no" validate:"required"`
	Category        string          `bson:"category" json:"category" validate:"required"`
	SubCategory     string          `bson:"sub_category" json:"sub_category" validate:"required"`
	ServingCapacity int             `bson:"serving_capacity" json:"serving_capacity" validate:"required,min=1"`
	InQueue         int             `bson:"in_queue" json:"in_queue" validate:"min=0"`
	InStore         int             `bson:"in_store" json:"in_store" validate:"min=0"`
	Marker          string          `bson:"marker" json:"marker"`
	Location        string          `bson:"location" json:"location" validate:"required,latlong"`
	Password        string          `bson:"password" json:"-" validate:"required"`
	EnforcedPolicy  *CapacityPolicy `bson:"enforced_policy,omitempty" json:"enforced_policy,omitempty"`
	CreatedAt       time.Time       `bson:"created_at" json:"created_at"`
}

// ListingUpdate carries a partial update. Empty strings and nil pointers mean
// "leave unchanged"; the store re-writes the stored value verbatim for them.
type ListingUpdate struct {
	Name            string `json:"name,omitempty"`
	ContactNo       string `json:"contact_no,omitempty"`
	Category        string `json:"category,omitempty"`
	SubCategory     string `json:"sub_category,omitempty"`
	ServingCapacity *int   `json:"serving_capacity,omitempty"`
	InQueue         *int   `json:"in_queue,omitempty"`
	InStore         *int   `json:"in_store,omitempty"`
	Marker          string `json:"marker,omitempty"`
	Location        string `json:"location,omitempty"`
	Password        string `json:"password,omitempty"`
}

// IsZero reports whether the update carries no fields at all. Such updates
// still rotate the revision but leave every field byte-identical.
func (u *ListingUpdate) IsZero() bool {
	return u.Name == "" && u.ContactNo == "" && u.Category == "" &&
		u.SubCategory == "" && u.ServingCapacity == nil && u.InQueue == nil &&
		u.InStore == nil && u.Marker == "" && u.Location == "" && u.Password == ""
}

// Zone is a circular geofence: center plus radius in kilometers.
type Zone struct {
	Lat      float64 `bson:"lat" json:"lat"`
	Long     float64 `bson:"long" json:"long"`
	RadiusKM float64 `bson:"radius" json:"radius"`
}

// CapacityPolicy records the last capacity policy applied to a listing.
type CapacityPolicy struct {
	Name       string    `bson:"name" json:"policy_name"`
	Multiplier float64   `bson:"multiplier" json:"multiplier"`
	Zone       Zone      `bson:"zone" json:"zone"`
	AppliedAt  time.Time `bson:"applied_at" json:"applied_at"`
}
