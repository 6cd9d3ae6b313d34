package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table                 string
	ID                    string
	Email                 string
	Password              string
	Role                  string
	DisplayName           string
	AnonymousHandle       string
	IsAnonymousHandle     string
	CrisisFlag            string
	Timezone              string
	Country               string
	EmergencyContactName  string
	EmergencyContactPhone string
	ConsentDataSharing    string
	ConsentResearch       string
	LastLoginAt           string
	CreatedAt             string
	UpdatedAt             string
	DeletedAt             string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:                 "users.account",
	ID:                    "id",
	Email:                 "email",
	Password:              "passwordhash",
	Role:                  "role",
	DisplayName:           "displayname",
	AnonymousHandle:       "anonymoushandle",
	IsAnonymousHandle:     "isanonymoushandle",
	CrisisFlag:            "crisisflag",
	Timezone:              "timezone",
	Country:               "country",
	EmergencyContactName:  "emergencycontactname",
	EmergencyContactPhone: "emergencycontactphone",
	ConsentDataSharing:    "consentdatasharing",
	ConsentResearch:       "consentresearch",
	LastLoginAt:           "lastloginat",
	CreatedAt:             "createdat",
	UpdatedAt:             "updatedat",
	DeletedAt:             "deletedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Password, t.Role, t.DisplayName, t.AnonymousHandle,
		t.IsAnonymousHandle, t.CrisisFlag, t.Timezone, t.Country,
		t.EmergencyContactName, t.EmergencyContactPhone, t.ConsentDataSharing,
		t.ConsentResearch, t.LastLoginAt, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
