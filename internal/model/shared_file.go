package model

import (
	"time"
)

type SharedFile struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	Size              int64     `json:"size"`
	UploadedBy        string    `json:"uploaded_by"`
	UploadedAt        time.Time `json:"uploaded_at"`
	URL               string    `json:"url,omitempty"`
	SharedWithMembers []string  `json:"shared_with_members"`
	SharedWithGroups  []string  `json:"shared_with_groups"`
}

// ViewPreferences holds per-installation UI preferences. The home feed
// is hidden unless explicitly enabled.
type ViewPreferences struct {
	HomeVisible bool `json:"home_visible"`
}
