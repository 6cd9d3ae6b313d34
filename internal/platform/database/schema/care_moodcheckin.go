package schema

// CareMoodCheckinTable represents the 'care.moodcheckin' table
type CareMoodCheckinTable struct {
	Table       string
	ID          string
	UserID      string
	MoodScore   string
	EnergyLevel string
	SleepHours  string
	Note        string
	CreatedAt   string
}

// CareMoodCheckin is the schema definition for care.moodcheckin
var CareMoodCheckin = CareMoodCheckinTable{
	Table:       "care.moodcheckin",
	ID:          "id",
	UserID:      "userid",
	MoodScore:   "moodscore",
	EnergyLevel: "energylevel",
	SleepHours:  "sleephours",
	Note:        "note",
	CreatedAt:   "createdat",
}

// Columns returns all standard column names
func (t CareMoodCheckinTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.MoodScore, t.EnergyLevel, t.SleepHours, t.Note, t.CreatedAt,
	}
}
