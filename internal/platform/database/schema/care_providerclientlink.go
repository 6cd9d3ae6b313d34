package schema

// CareProviderClientLinkTable represents the 'care.providerclientlink' table
type CareProviderClientLinkTable struct {
	Table      string
	ID         string
	ProviderID string
	ClientID   string
	Status     string
	CreatedAt  string
	UpdatedAt  string
}

// CareProviderClientLink is the schema definition for care.providerclientlink
var CareProviderClientLink = CareProviderClientLinkTable{
	Table:      "care.providerclientlink",
	ID:         "id",
	ProviderID: "providerid",
	ClientID:   "clientid",
	Status:     "status",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// Columns returns all standard column names
func (t CareProviderClientLinkTable) Columns() []string {
	return []string{
		t.ID, t.ProviderID, t.ClientID, t.Status, t.CreatedAt, t.UpdatedAt,
	}
}
