// Copyright (c) 2026 Niramaya. All rights reserved.

// Package crisis implements the crisis check-in and triage workflow.
//
// # Safety Note
//
// The triage logic errs on the side of escalation: any ambiguity between two
// outcomes resolves to the more urgent one. Changes to [Triage] require
// clinical review, not just code review.
package crisis

import "time"

// Feeling is the member's self-described state at check-in time.
type Feeling string

const (
	FeelingCalm      Feeling = "calm"
	FeelingConcerned Feeling = "concerned"
	FeelingUrgent    Feeling = "urgent"
)

// Valid reports whether the feeling is a known value.
func (f Feeling) Valid() bool {
	switch f {
	case FeelingCalm, FeelingConcerned, FeelingUrgent:
		return true
	default:
		return false
	}
}

// Outcome is the triage decision for a check-in.
type Outcome string

const (
	// OutcomeShowHotline presents emergency hotlines immediately and raises
	// the member's crisis flag for provider follow-up.
	OutcomeShowHotline Outcome = "show_hotline"

	// OutcomeSuggestProvider suggests contacting the linked provider and
	// includes the hotline directory as a secondary resource.
	OutcomeSuggestProvider Outcome = "suggest_contact_provider"

	// OutcomeSelfHelp points to self-help resources only.
	OutcomeSelfHelp Outcome = "self_help"
)

// CheckIn records one answered crisis questionnaire and its triage outcome.
type CheckIn struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	CurrentFeeling     Feeling   `json:"current_feeling"`
	ThoughtsOfSelfHarm bool      `json:"thoughts_of_self_harm"`
	HasImmediatePlan   bool      `json:"has_immediate_plan"`
	Outcome            Outcome   `json:"outcome"`
	CreatedAt          time.Time `json:"created_at"`
}

// Hotline is one entry in the emergency contact directory.
type Hotline struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Text      string `json:"text,omitempty"`
	Country   string `json:"country"`
	Available string `json:"available"`
}

// Hotlines returns the emergency directory shown with escalated outcomes.
func Hotlines() []Hotline {
	return []Hotline{
		{
			Name:      "988 Suicide & Crisis Lifeline",
			Phone:     "988",
			Text:      "Text 988",
			Country:   "US",
			Available: "24/7",
		},
		{
			Name:      "Crisis Text Line",
			Phone:     "",
			Text:      "Text HOME to 741741",
			Country:   "US",
			Available: "24/7",
		},
		{
			Name:      "International Association for Suicide Prevention",
			Phone:     "https://www.iasp.info/resources/Crisis_Centres/",
			Country:   "International",
			Available: "Directory",
		},
	}
}

// Triage maps questionnaire answers to an outcome.
//
// # Decision table, evaluated in order
//
//  1. An immediate plan, or an "urgent" self-description, always shows the
//     hotline directory.
//  2. Thoughts of self-harm, or a "concerned" self-description, suggests
//     contacting the provider (hotlines attached as secondary resources).
//  3. Everything else resolves to self-help resources.
func Triage(feeling Feeling, thoughtsOfSelfHarm, hasImmediatePlan bool) Outcome {
	if hasImmediatePlan || feeling == FeelingUrgent {
		return OutcomeShowHotline
	}

	if thoughtsOfSelfHarm || feeling == FeelingConcerned {
		return OutcomeSuggestProvider
	}

	return OutcomeSelfHelp
}
