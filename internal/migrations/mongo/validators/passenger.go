package validators

import "go.mongodb.org/mongo-driver/bson"

var PassengerValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"bookingId"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"bookingId": bson.M{
				"bsonType":  "string",
				"minLength": 32,
				"maxLength": 32,
				"pattern":   "^[0-9a-f]{32}$",
			},

			"flightDetails": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"from":        bson.M{"bsonType": "string"},
					"fromAirport": bson.M{"bsonType": "string"},
					"to":          bson.M{"bsonType": "string"},
					"toAirport":   bson.M{"bsonType": "string"},
					"date":        bson.M{"bsonType": "string"},
				},
			},

			"name": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"age": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
				"maximum":  150,
			},

			"email":           bson.M{"bsonType": "string"},
			"mobile":          bson.M{"bsonType": "string"},
			"travelInsurance": bson.M{"bsonType": "bool"},
		},
	},
}
