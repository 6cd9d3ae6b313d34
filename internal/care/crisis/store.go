// Copyright (c) 2026 Niramaya. All rights reserved.

package crisis

import "context"

type Repository interface {
	Create(context context.Context, checkIn *CheckIn) error
	ListByUser(context context.Context, userID string, limit int) ([]*CheckIn, error)
}

// ProfileFlagger raises or clears the crisis flag on a member's profile.
// Implemented against the account store; kept as an interface so the triage
// flow stays testable without a database.
type ProfileFlagger interface {
	SetCrisisFlag(context context.Context, userID string, flagged bool) error
}
