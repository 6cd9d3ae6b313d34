package schema

// SocialCommunityPostTable represents the 'social.communitypost' table
type SocialCommunityPostTable struct {
	Table       string
	ID          string
	CommunityID string
	AuthorID    string
	Title       string
	Content     string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// SocialCommunityPost is the schema definition for social.communitypost
var SocialCommunityPost = SocialCommunityPostTable{
	Table:       "social.communitypost",
	ID:          "id",
	CommunityID: "communityid",
	AuthorID:    "authorid",
	Title:       "title",
	Content:     "content",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

// Columns returns all standard column names
func (t SocialCommunityPostTable) Columns() []string {
	return []string{
		t.ID, t.CommunityID, t.AuthorID, t.Title, t.Content, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
