// Package events publishes mutation notifications over NATS so other
// services can react to changes without polling.
package events

import (
	"encoding/json"
	"log"

	"github.com/nats-io/nats.go"
)

const (
	SubjectTaskCreated     = "noteto.task.created"
	SubjectTaskUpdated     = "noteto.task.updated"
	SubjectTaskDeleted     = "noteto.task.deleted"
	SubjectTaskDue         = "noteto.task.due"
	SubjectGroupCreated    = "noteto.group.created"
	SubjectGroupDeleted    = "noteto.group.deleted"
	SubjectPostPublished   = "noteto.post.published"
	SubjectMemberJoined    = "noteto.team.member_joined"
	SubjectFriendRequested = "noteto.friend.requested"
	SubjectFriendResolved  = "noteto.friend.resolved"
)

// Publisher is a nil-safe wrapper over a NATS connection. A zero or nil
// Publisher silently drops events, so callers never have to branch on
// whether messaging is configured.
type Publisher struct {
	nc  *nats.Conn
	log *log.Logger
}

// Connect dials the NATS server and returns a Publisher over it.
func Connect(url string, logger *log.Logger) (*Publisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Publisher{nc: nc, log: logger}, nil
}

// Publish marshals payload to JSON and emits it on subject. Errors are
// logged, never returned: event delivery is best-effort.
func (p *Publisher) Publish(subject string, payload any) {
	if p == nil || p.nc == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		p.log.Printf("⚠️  failed to encode event %s: %v", subject, err)
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.log.Printf("⚠️  failed to publish event %s: %v", subject, err)
	}
}

// Close drains the underlying connection.
func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	p.nc.Close()
}
