package model

import (
	"strings"
	"time"
)

const RoleUser = "user"

type User struct {
	ID             string    `json:"id" bson:"_id"`
	Email          string    `json:"email" bson:"email"`
	HashedPassword string    `json:"hashed_password" bson:"-"`
	Name           string    `json:"name" bson:"name"`
	Role           string    `json:"role" bson:"role"`
	CreatedAt      time.Time `json:"created_at" bson:"createdAt"`
}

// DisplayName falls back to the local part of the email when no name was given.
func DisplayName(name, email string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

// Initials returns the avatar initials for a name: first letter of each
// word, upper-cased, at most two.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		b.WriteString(strings.ToUpper(string(r[0])))
		if len([]rune(b.String())) >= 2 {
			break
		}
	}
	return b.String()
}
