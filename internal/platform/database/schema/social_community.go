package schema

// SocialCommunityTable represents the 'social.community' table
type SocialCommunityTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	Category    string
	CreatedBy   string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// SocialCommunity is the schema definition for social.community
var SocialCommunity = SocialCommunityTable{
	Table:       "social.community",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	Category:    "category",
	CreatedBy:   "createdby",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

// Columns returns all standard column names
func (t SocialCommunityTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Slug, t.Description, t.Category, t.CreatedBy, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
