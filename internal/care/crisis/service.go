// Copyright (c) 2026 Niramaya. All rights reserved.

package crisis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niramaya/api/internal/platform/validate"
	"github.com/niramaya/api/pkg/uuidv7"
)

type Service struct {
	repo    Repository
	flagger ProfileFlagger
	logger  *slog.Logger
}

func NewService(repo Repository, flagger ProfileFlagger, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		flagger: flagger,
		logger:  logger,
	}
}

// CheckInInput holds the questionnaire answers.
type CheckInInput struct {
	CurrentFeeling     Feeling
	ThoughtsOfSelfHarm bool
	HasImmediatePlan   bool
}

// CheckInResult pairs the stored check-in with the resources the member
// should see right now.
type CheckInResult struct {
	CheckIn  *CheckIn  `json:"check_in"`
	Hotlines []Hotline `json:"hotlines,omitempty"`
}

// SubmitCheckIn triages the answers, persists the check-in, and raises the
// member's crisis flag on an escalated outcome.
//
// The flag update is deliberately ordered after persistence: a stored
// check-in without a flag is recoverable by provider review, a flag without
// its check-in is not explainable to anyone.
func (service *Service) SubmitCheckIn(context context.Context, userID string, input CheckInInput) (*CheckInResult, error) {
	validator := &validate.Validator{}
	validator.Custom("current_feeling", !input.CurrentFeeling.Valid(), "Must be calm, concerned, or urgent")
	if validator.HasErrors() {
		return nil, validator.Err()
	}

	outcome := Triage(input.CurrentFeeling, input.ThoughtsOfSelfHarm, input.HasImmediatePlan)

	checkIn := &CheckIn{
		ID:                 uuidv7.New(),
		UserID:             userID,
		CurrentFeeling:     input.CurrentFeeling,
		ThoughtsOfSelfHarm: input.ThoughtsOfSelfHarm,
		HasImmediatePlan:   input.HasImmediatePlan,
		Outcome:            outcome,
	}

	if err := service.repo.Create(context, checkIn); err != nil {
		return nil, fmt.Errorf("crisis_service_checkin_failed: %w", err)
	}

	if outcome == OutcomeShowHotline {
		if err := service.flagger.SetCrisisFlag(context, userID, true); err != nil {
			// The member still gets their hotlines. The flag is retried by
			// the next escalated check-in.
			service.logger.Error("crisis_flag_update_failed",
				slog.String("user_id", userID), slog.Any("error", err))
		}
	}

	result := &CheckInResult{CheckIn: checkIn}
	if outcome == OutcomeShowHotline || outcome == OutcomeSuggestProvider {
		result.Hotlines = Hotlines()
	}

	return result, nil
}

// History returns the member's most recent check-ins, newest first.
func (service *Service) History(context context.Context, userID string, limit int) ([]*CheckIn, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return service.repo.ListByUser(context, userID, limit)
}

// ClearFlag lowers a member's crisis flag after provider follow-up.
func (service *Service) ClearFlag(context context.Context, userID string) error {
	if err := service.flagger.SetCrisisFlag(context, userID, false); err != nil {
		return fmt.Errorf("crisis_service_clear_flag_failed: %w", err)
	}
	return nil
}
