package model

import "time"

// AllocationLock is an advisory lock document serializing booking commits
// per workspace. The unique _id insert is the mutual exclusion primitive;
// a TTL index on expires_at reclaims locks from crashed writers.
type AllocationLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
