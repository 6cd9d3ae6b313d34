// Copyright (c) 2026 Niramaya. All rights reserved.

package mood

import (
	"context"
	"log/slog"

	"github.com/niramaya/api/internal/platform/validate"
	"github.com/niramaya/api/pkg/pagination"
	"github.com/niramaya/api/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CheckInInput holds the self-reported measurement fields.
type CheckInInput struct {
	MoodScore   int
	EnergyLevel int
	SleepHours  *float64
	Note        string
}

func (service *Service) CheckIn(context context.Context, userID string, input CheckInInput) (*CheckIn, error) {
	validator := &validate.Validator{}
	validator.
		Range("mood_score", input.MoodScore, 1, 10).
		Range("energy_level", input.EnergyLevel, 1, 10).
		MaxLen("note", input.Note, 1000)

	if input.SleepHours != nil {
		validator.Custom("sleep_hours", *input.SleepHours < 0 || *input.SleepHours > 24,
			"Must be between 0 and 24")
	}

	if validator.HasErrors() {
		return nil, validator.Err()
	}

	checkIn := &CheckIn{
		ID:          uuidv7.New(),
		UserID:      userID,
		MoodScore:   input.MoodScore,
		EnergyLevel: input.EnergyLevel,
		SleepHours:  input.SleepHours,
		Note:        input.Note,
	}

	if err := service.repo.Create(context, checkIn); err != nil {
		return nil, err
	}

	return checkIn, nil
}

func (service *Service) History(context context.Context, userID string, params pagination.Params) ([]*CheckIn, int, error) {
	return service.repo.ListByUser(context, userID, params)
}

func (service *Service) Trends(context context.Context, userID string, days int) (*Summary, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	return service.repo.Summarize(context, userID, days)
}
