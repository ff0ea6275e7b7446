package model

import (
	"sort"
	"strings"
	"time"
)

type FriendRequestStatus string

const (
	FriendPending  FriendRequestStatus = "pending"
	FriendAccepted FriendRequestStatus = "accepted"
	FriendRejected FriendRequestStatus = "rejected"
)

// FriendRequest is keyed by the deterministic pair id of its two
// participants, so (A,B) and (B,A) resolve to the same record.
type FriendRequest struct {
	ID           string              `json:"id" bson:"_id"`
	Participants []string            `json:"participants" bson:"participants"`
	RequesterID  string              `json:"requester_id" bson:"requesterId"`
	Status       FriendRequestStatus `json:"status" bson:"status"`
	CreatedAt    time.Time           `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time           `json:"updated_at" bson:"updatedAt"`
}

// FriendPairID builds the sorted "_"-joined pair id for two user ids.
func FriendPairID(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return strings.Join(pair, "_")
}

// Relationship is the friend state as seen by one side of the pair.
type Relationship string

const (
	RelationNone     Relationship = "none"
	RelationPending  Relationship = "pending"
	RelationIncoming Relationship = "incoming"
	RelationFriends  Relationship = "friends"
)
