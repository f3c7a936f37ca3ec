package validators

import "go.mongodb.org/mongo-driver/bson"

var ListingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "owner_id", "contact_no", "category", "sub_category", "serving_capacity", "location", "password", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":              bson.M{"bsonType": "string"},
			"revision":         bson.M{"bsonType": "string"},
			"name":             bson.M{"bsonType": "string"},
			"owner_id":         bson.M{"bsonType": "string"},
			"contact_no":       bson.M{"bsonType": "string"},
			"category":         bson.M{"bsonType": "string"},
			"sub_category":     bson.M{"bsonType": "string"},
			"serving_capacity": bson.M{"bsonType": "int", "minimum": 1},
			"in_queue":         bson.M{"bsonType": "int", "minimum": 0},
			"in_store":         bson.M{"bsonType": "int", "minimum": 0},
			"marker":           bson.M{"bsonType": "string"},
			"location":         bson.M{"bsonType": "string"},
			"password":         bson.M{"bsonType": "string"},
			"enforced_policy":  bson.M{"bsonType": "object"},
			"created_at":       bson.M{"bsonType": "date"},
		},
	},
}
