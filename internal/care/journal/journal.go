// Copyright (c) 2026 Niramaya. All rights reserved.

package journal

import "time"

// Entry is a private journal entry. Entries are visible only to their author
// unless SharedWithProvider is set, in which case an actively linked provider
// may read (never edit) them.
type Entry struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	Tags               []string   `json:"tags"`
	SharedWithProvider bool       `json:"shared_with_provider"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	DeletedAt          *time.Time `json:"-"`
}
