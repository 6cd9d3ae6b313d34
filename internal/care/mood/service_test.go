// Copyright (c) 2026 Niramaya. All rights reserved.

package mood_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramaya/api/internal/care/mood"
	"github.com/niramaya/api/internal/platform/apperr"
	"github.com/niramaya/api/pkg/pagination"
	"github.com/niramaya/api/pkg/pointer"
)

// memoryRepository is a minimal in-memory Repository for service tests.
type memoryRepository struct {
	checkIns []*mood.CheckIn
}

func (repo *memoryRepository) Create(_ context.Context, checkIn *mood.CheckIn) error {
	copied := *checkIn
	repo.checkIns = append(repo.checkIns, &copied)
	return nil
}

func (repo *memoryRepository) ListByUser(_ context.Context, userID string, _ pagination.Params) ([]*mood.CheckIn, int, error) {
	result := make([]*mood.CheckIn, 0)
	for _, checkIn := range repo.checkIns {
		if checkIn.UserID == userID {
			result = append(result, checkIn)
		}
	}
	return result, len(result), nil
}

func (repo *memoryRepository) Summarize(_ context.Context, userID string, _ int) (*mood.Summary, error) {
	summary := &mood.Summary{}
	sleepTotal, sleepCount := 0.0, 0
	for _, checkIn := range repo.checkIns {
		if checkIn.UserID != userID {
			continue
		}
		summary.Count++
		summary.AverageMood += float64(checkIn.MoodScore)
		if checkIn.SleepHours != nil {
			sleepTotal += pointer.Val(checkIn.SleepHours)
			sleepCount++
		}
	}
	if summary.Count > 0 {
		summary.AverageMood /= float64(summary.Count)
	}
	if sleepCount > 0 {
		summary.AverageSleep = sleepTotal / float64(sleepCount)
	}
	return summary, nil
}

func newService(repo mood.Repository) *mood.Service {
	return mood.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_CheckInValidation verifies the score and sleep bounds.
*/
func TestService_CheckInValidation(t *testing.T) {
	service := newService(&memoryRepository{})

	tests := []struct {
		name  string
		input mood.CheckInInput
	}{
		{"mood score too high", mood.CheckInInput{MoodScore: 11, EnergyLevel: 5}},
		{"mood score too low", mood.CheckInInput{MoodScore: 0, EnergyLevel: 5}},
		{"energy out of range", mood.CheckInInput{MoodScore: 5, EnergyLevel: 12}},
		{"impossible sleep", mood.CheckInInput{MoodScore: 5, EnergyLevel: 5, SleepHours: pointer.To(25.0)}},
		{"negative sleep", mood.CheckInInput{MoodScore: 5, EnergyLevel: 5, SleepHours: pointer.To(-1.0)}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := service.CheckIn(context.Background(), "user-1", test.input)
			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)
		})
	}
}

/*
TestService_CheckInAcceptsOptionalSleep verifies sleep hours may be omitted
entirely and survive the round trip when present.
*/
func TestService_CheckInAcceptsOptionalSleep(t *testing.T) {
	repo := &memoryRepository{}
	service := newService(repo)

	// 1. Without sleep hours.
	first, err := service.CheckIn(context.Background(), "user-1", mood.CheckInInput{
		MoodScore: 7, EnergyLevel: 6,
	})
	require.NoError(t, err)
	assert.Nil(t, first.SleepHours)

	// 2. With sleep hours.
	second, err := service.CheckIn(context.Background(), "user-1", mood.CheckInInput{
		MoodScore: 8, EnergyLevel: 7, SleepHours: pointer.To(7.5),
	})
	require.NoError(t, err)
	assert.InDelta(t, 7.5, pointer.Val(second.SleepHours), 0.001)
}

/*
TestService_TrendsClampsWindow verifies out-of-range day windows fall back
to the default without erroring.
*/
func TestService_TrendsClampsWindow(t *testing.T) {
	repo := &memoryRepository{}
	service := newService(repo)

	_, err := service.CheckIn(context.Background(), "user-1", mood.CheckInInput{
		MoodScore: 6, EnergyLevel: 5, SleepHours: pointer.To(8.0),
	})
	require.NoError(t, err)

	for _, days := range []int{-3, 0, 9000} {
		summary, err := service.Trends(context.Background(), "user-1", days)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Count)
		assert.InDelta(t, 6.0, summary.AverageMood, 0.001)
	}
}
