package schema

// SocialCommunityCommentTable represents the 'social.communitycomment' table
type SocialCommunityCommentTable struct {
	Table     string
	ID        string
	PostID    string
	AuthorID  string
	Content   string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// SocialCommunityComment is the schema definition for social.communitycomment
var SocialCommunityComment = SocialCommunityCommentTable{
	Table:     "social.communitycomment",
	ID:        "id",
	PostID:    "postid",
	AuthorID:  "authorid",
	Content:   "content",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

// Columns returns all standard column names
func (t SocialCommunityCommentTable) Columns() []string {
	return []string{
		t.ID, t.PostID, t.AuthorID, t.Content, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
