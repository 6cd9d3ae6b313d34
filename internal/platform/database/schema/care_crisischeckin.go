package schema

// CareCrisisCheckinTable represents the 'care.crisischeckin' table
type CareCrisisCheckinTable struct {
	Table              string
	ID                 string
	UserID             string
	CurrentFeeling     string
	ThoughtsOfSelfHarm string
	HasImmediatePlan   string
	Outcome            string
	CreatedAt          string
}

// CareCrisisCheckin is the schema definition for care.crisischeckin
var CareCrisisCheckin = CareCrisisCheckinTable{
	Table:              "care.crisischeckin",
	ID:                 "id",
	UserID:             "userid",
	CurrentFeeling:     "currentfeeling",
	ThoughtsOfSelfHarm: "thoughtsofselfharm",
	HasImmediatePlan:   "hasimmediateplan",
	Outcome:            "outcome",
	CreatedAt:          "createdat",
}

// Columns returns all standard column names
func (t CareCrisisCheckinTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.CurrentFeeling, t.ThoughtsOfSelfHarm, t.HasImmediatePlan, t.Outcome, t.CreatedAt,
	}
}
