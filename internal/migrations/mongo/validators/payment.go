package validators

import "go.mongodb.org/mongo-driver/bson"

var PaymentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"razorpayOrderId",
			"razorpayPaymentId",
			"razorpaySignature",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"razorpayOrderId":   bson.M{"bsonType": "string"},
			"razorpayPaymentId": bson.M{"bsonType": "string"},
			"razorpaySignature": bson.M{"bsonType": "string"},

			"hotel":     bson.M{"bsonType": "string"},
			"roomClass": bson.M{"bsonType": "string"},

			"roomCount": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"numberOfDays": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"totalPrice": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"startDate": bson.M{"bsonType": "date"},
			"endDate":   bson.M{"bsonType": "date"},

			"customerName": bson.M{"bsonType": "string"},
			"email":        bson.M{"bsonType": "string"},
			"phoneNumber":  bson.M{"bsonType": "string"},
		},
	},
}
