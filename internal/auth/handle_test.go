// Copyright (c) 2026 Niramaya. All rights reserved.

package auth_test

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramaya/api/internal/auth"
)

var handlePattern = regexp.MustCompile(
	`^(Calm|Brave|Kind|Wise|Gentle|Strong|Peaceful|Hopeful|Bright|Steady)` +
		`(Soul|Heart|Spirit|Mind|Journey|Path|Light|Star|Wave|Cloud)` +
		`([1-9][0-9]{0,2})$`)

/*
TestGenerateHandle_Seeded verifies the documented deterministic example:
index 0 from each word list and number 123 yields exactly "CalmSoul123".
*/
func TestGenerateHandle_Seeded(t *testing.T) {
	draws := []int{0, 0, 122} // 1 + 122 = 123
	next := 0

	handle := auth.GenerateHandle(func(upperBound int) int {
		require.Less(t, next, len(draws))
		value := draws[next]
		next++
		require.Less(t, value, upperBound)
		return value
	})

	assert.Equal(t, "CalmSoul123", handle)
}

/*
TestGenerateHandle_Format verifies every generated handle matches the
{Adjective}{Noun}{1-999} pattern with no separators.
*/
func TestGenerateHandle_Format(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		handle := auth.GenerateHandle(rng.Intn)
		assert.Regexp(t, handlePattern, handle)
	}
}

/*
TestNewHandle verifies the package-level source produces well-formed handles.
*/
func TestNewHandle(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Regexp(t, handlePattern, auth.NewHandle())
	}
}
