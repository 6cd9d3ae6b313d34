// Copyright (c) 2026 Niramaya. All rights reserved.

package provider

import "time"

// LinkStatus tracks the lifecycle of a provider-client relationship.
type LinkStatus string

const (
	LinkStatusPending LinkStatus = "pending" // Requested by the provider, awaiting client consent.
	LinkStatusActive  LinkStatus = "active"  // Consented; the provider may see shared data.
	LinkStatusEnded   LinkStatus = "ended"   // Terminated by either party. Never deleted.
)

// Link connects a care provider to a client. All provider access to client
// data is gated on an active link; a pending or ended link grants nothing.
type Link struct {
	ID         string     `json:"id"`
	ProviderID string     `json:"provider_id"`
	ClientID   string     `json:"client_id"`
	Status     LinkStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
