// Package admin exposes platform-level counts for operators.
package admin

import "time"

// Stats is a point-in-time snapshot of platform usage.
type Stats struct {
	TotalUsers     int `json:"total_users"`
	TotalProviders int `json:"total_providers"`
	ActiveSessions int `json:"active_sessions"`
}

// Account is the operator-facing view of a member record. It carries the
// real email and display name; the pseudonymity preference only applies to
// other members, not operators.
type Account struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}
