package model

import (
	"time"
)

type TeamMember struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Avatar   string    `json:"avatar"`
	Color    string    `json:"color,omitempty"`
	JoinDate time.Time `json:"join_date"`
}
