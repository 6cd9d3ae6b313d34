// Copyright (c) 2026 Niramaya. All rights reserved.

package auth

import (
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// Word lists for pseudonymous handle generation. Fixed at ten entries each;
// changing them silently changes every future handle, so treat additions as
// a product decision, not a refactor.
var (
	handleAdjectives = []string{
		"Calm", "Brave", "Kind", "Wise", "Gentle",
		"Strong", "Peaceful", "Hopeful", "Bright", "Steady",
	}

	handleNouns = []string{
		"Soul", "Heart", "Spirit", "Mind", "Journey",
		"Path", "Light", "Star", "Wave", "Cloud",
	}
)

var (
	handleRandMu sync.Mutex
	handleRand   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// GenerateHandle builds a pseudonymous handle of the form
// {Adjective}{Noun}{1-999} with no separators, e.g. "CalmSoul123".
//
// The randomInt argument must return a uniform value in [0, upperBound).
// Handle uniqueness is NOT guaranteed or checked; the space of 99,900
// combinations makes collisions rare and they are accepted when they happen.
func GenerateHandle(randomInt func(upperBound int) int) string {
	adjective := handleAdjectives[randomInt(len(handleAdjectives))]
	noun := handleNouns[randomInt(len(handleNouns))]
	number := 1 + randomInt(999)

	return adjective + noun + strconv.Itoa(number)
}

// NewHandle generates a handle from the package-level random source.
func NewHandle() string {
	handleRandMu.Lock()
	defer handleRandMu.Unlock()
	return GenerateHandle(handleRand.Intn)
}
