// Copyright (c) 2026 Niramaya. All rights reserved.

package mood

import "time"

// CheckIn is a single self-reported mood measurement.
type CheckIn struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	MoodScore   int       `json:"mood_score"`   // 1 (lowest) to 10 (highest)
	EnergyLevel int       `json:"energy_level"` // 1 to 10
	SleepHours  *float64  `json:"sleep_hours,omitempty"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary aggregates a member's recent check-ins for the trends surface.
type Summary struct {
	Count        int     `json:"count"`
	AverageMood  float64 `json:"average_mood"`
	AverageSleep float64 `json:"average_sleep"`
}
