package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"passwordHash",
			"role",
			"createdAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"passwordHash": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"role": bson.M{
				"enum": []string{"user", "admin"},
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
