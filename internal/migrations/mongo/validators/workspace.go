package validators

import "go.mongodb.org/mongo-driver/bson"

var WorkspaceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"type",
			"floor",
			"capacity",
			"is_available",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"type": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"floor": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"capacity": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  500,
			},

			"facilities": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 1,
					"maxLength": 50,
				},
			},

			"is_available": bson.M{
				"bsonType": "bool",
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"x_coord": bson.M{
				"bsonType": []string{"double", "int", "null"},
			},

			"y_coord": bson.M{
				"bsonType": []string{"double", "int", "null"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
