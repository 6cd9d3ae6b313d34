// Copyright (c) 2026 Niramaya. All rights reserved.

package crisis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramaya/api/internal/care/crisis"
)

/*
TestTriage covers the full decision table.
*/
func TestTriage(t *testing.T) {
	cases := []struct {
		name     string
		feeling  crisis.Feeling
		selfHarm bool
		plan     bool
		want     crisis.Outcome
	}{
		{"immediate plan always escalates", crisis.FeelingCalm, false, true, crisis.OutcomeShowHotline},
		{"urgent feeling always escalates", crisis.FeelingUrgent, false, false, crisis.OutcomeShowHotline},
		{"plan beats concerned", crisis.FeelingConcerned, false, true, crisis.OutcomeShowHotline},
		{"self-harm thoughts suggest provider", crisis.FeelingCalm, true, false, crisis.OutcomeSuggestProvider},
		{"concerned suggests provider", crisis.FeelingConcerned, false, false, crisis.OutcomeSuggestProvider},
		{"calm with no signals is self-help", crisis.FeelingCalm, false, false, crisis.OutcomeSelfHelp},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			got := crisis.Triage(testCase.feeling, testCase.selfHarm, testCase.plan)
			assert.Equal(t, testCase.want, got)
		})
	}
}

// memoryRepository collects check-ins in memory.
type memoryRepository struct {
	checkIns []*crisis.CheckIn
}

func (repo *memoryRepository) Create(_ context.Context, checkIn *crisis.CheckIn) error {
	repo.checkIns = append(repo.checkIns, checkIn)
	return nil
}

func (repo *memoryRepository) ListByUser(_ context.Context, userID string, limit int) ([]*crisis.CheckIn, error) {
	result := make([]*crisis.CheckIn, 0)
	for _, checkIn := range repo.checkIns {
		if checkIn.UserID == userID && len(result) < limit {
			result = append(result, checkIn)
		}
	}
	return result, nil
}

// memoryFlagger records crisis flag transitions.
type memoryFlagger struct {
	flags map[string]bool
}

func (flagger *memoryFlagger) SetCrisisFlag(_ context.Context, userID string, flagged bool) error {
	if flagger.flags == nil {
		flagger.flags = make(map[string]bool)
	}
	flagger.flags[userID] = flagged
	return nil
}

func newService(repo crisis.Repository, flagger crisis.ProfileFlagger) *crisis.Service {
	return crisis.NewService(repo, flagger, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_EscalationRaisesFlag verifies a show_hotline outcome persists the
check-in, raises the member's crisis flag, and attaches hotlines.
*/
func TestService_EscalationRaisesFlag(t *testing.T) {
	repo := &memoryRepository{}
	flagger := &memoryFlagger{}
	service := newService(repo, flagger)

	result, err := service.SubmitCheckIn(context.Background(), "user-1", crisis.CheckInInput{
		CurrentFeeling:   crisis.FeelingUrgent,
		HasImmediatePlan: true,
	})
	require.NoError(t, err)

	assert.Equal(t, crisis.OutcomeShowHotline, result.CheckIn.Outcome)
	assert.NotEmpty(t, result.Hotlines)
	assert.True(t, flagger.flags["user-1"])
	assert.Len(t, repo.checkIns, 1)
}

/*
TestService_SelfHelpDoesNotFlag verifies the quiet path: no flag, no hotlines.
*/
func TestService_SelfHelpDoesNotFlag(t *testing.T) {
	flagger := &memoryFlagger{}
	service := newService(&memoryRepository{}, flagger)

	result, err := service.SubmitCheckIn(context.Background(), "user-1", crisis.CheckInInput{
		CurrentFeeling: crisis.FeelingCalm,
	})
	require.NoError(t, err)

	assert.Equal(t, crisis.OutcomeSelfHelp, result.CheckIn.Outcome)
	assert.Empty(t, result.Hotlines)
	assert.NotContains(t, flagger.flags, "user-1")
}

/*
TestService_SuggestProviderIncludesHotlines verifies the middle outcome
attaches hotlines as a secondary resource without raising the flag.
*/
func TestService_SuggestProviderIncludesHotlines(t *testing.T) {
	flagger := &memoryFlagger{}
	service := newService(&memoryRepository{}, flagger)

	result, err := service.SubmitCheckIn(context.Background(), "user-1", crisis.CheckInInput{
		CurrentFeeling:     crisis.FeelingCalm,
		ThoughtsOfSelfHarm: true,
	})
	require.NoError(t, err)

	assert.Equal(t, crisis.OutcomeSuggestProvider, result.CheckIn.Outcome)
	assert.NotEmpty(t, result.Hotlines)
	assert.NotContains(t, flagger.flags, "user-1")
}

/*
TestService_RejectsUnknownFeeling verifies boundary validation.
*/
func TestService_RejectsUnknownFeeling(t *testing.T) {
	service := newService(&memoryRepository{}, &memoryFlagger{})

	_, err := service.SubmitCheckIn(context.Background(), "user-1", crisis.CheckInInput{
		CurrentFeeling: "panicked",
	})

	assert.Error(t, err)
}
