package validators

import "go.mongodb.org/mongo-driver/bson"

var AllocationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"workspace_id",
			"requester_id",
			"start_time",
			"end_time",
			"team_size",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"workspace_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"requester_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"start_time": bson.M{
				"bsonType": "date",
			},

			"end_time": bson.M{
				"bsonType": "date",
			},

			"team_size": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  500,
			},

			"privacy_need": bson.M{
				"enum": []string{"low", "medium", "high"},
			},

			"collaboration_need": bson.M{
				"enum": []string{"low", "medium", "high"},
			},

			"required_facilities": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 1,
					"maxLength": 50,
				},
			},

			"notes": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"status": bson.M{
				"enum": []string{"Active", "Pending", "Completed", "Cancelled"},
			},

			"suitability_score": bson.M{
				"bsonType": []string{"double", "int"},
				"minimum":  0,
				"maximum":  100,
			},

			"confidence_score": bson.M{
				"bsonType": []string{"double", "int"},
				"minimum":  0,
				"maximum":  1,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
