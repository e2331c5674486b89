package model

import "time"

// Requester holds the attributes the scorer consumes. Identity and
// authentication live elsewhere; this engine only reads.
type Requester struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name       string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Level      string    `json:"level" bson:"level" validate:"omitempty,max=50"`
	Department string    `json:"department" bson:"department" validate:"omitempty,max=100"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
