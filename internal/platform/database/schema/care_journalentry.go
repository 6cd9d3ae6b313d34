package schema

// CareJournalEntryTable represents the 'care.journalentry' table
type CareJournalEntryTable struct {
	Table              string
	ID                 string
	UserID             string
	Title              string
	Content            string
	Tags               string
	SharedWithProvider string
	CreatedAt          string
	UpdatedAt          string
	DeletedAt          string
}

// CareJournalEntry is the schema definition for care.journalentry
var CareJournalEntry = CareJournalEntryTable{
	Table:              "care.journalentry",
	ID:                 "id",
	UserID:             "userid",
	Title:              "title",
	Content:            "content",
	Tags:               "tags",
	SharedWithProvider: "sharedwithprovider",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
	DeletedAt:          "deletedat",
}

// Columns returns all standard column names
func (t CareJournalEntryTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Title, t.Content, t.Tags, t.SharedWithProvider, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
