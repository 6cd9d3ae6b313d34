package schema

// SocialCommunityMembershipTable represents the 'social.communitymembership' table
type SocialCommunityMembershipTable struct {
	Table       string
	ID          string
	CommunityID string
	UserID      string
	JoinedAt    string
}

// SocialCommunityMembership is the schema definition for social.communitymembership
var SocialCommunityMembership = SocialCommunityMembershipTable{
	Table:       "social.communitymembership",
	ID:          "id",
	CommunityID: "communityid",
	UserID:      "userid",
	JoinedAt:    "joinedat",
}

// Columns returns all standard column names
func (t SocialCommunityMembershipTable) Columns() []string {
	return []string{
		t.ID, t.CommunityID, t.UserID, t.JoinedAt,
	}
}
