// Copyright (c) 2026 Niramaya. All rights reserved.

package auth

import "time"

// Outcome is the navigation decision produced by [Decide].
type Outcome int

const (
	// OutcomeRender allows the requested resource to be served.
	OutcomeRender Outcome = iota

	// OutcomeRedirectToLogin is produced when no active session exists.
	OutcomeRedirectToLogin

	// OutcomeRedirectToHome is produced for a signed-in identity whose role
	// does not match the route's requirement. The member is never shown an
	// error; mismatches silently land on the home surface. This is a
	// navigation convenience, not a security boundary: real authorization is
	// enforced again at every data access.
	OutcomeRedirectToHome
)

// String implements [fmt.Stringer] for log output.
func (outcome Outcome) String() string {
	switch outcome {
	case OutcomeRender:
		return "render"
	case OutcomeRedirectToLogin:
		return "redirect_to_login"
	case OutcomeRedirectToHome:
		return "redirect_to_home"
	default:
		return "unknown"
	}
}

// Decide is the pure routing gate.
//
// # Rules, evaluated in order
//
//  1. No active session (nil identity, nil session, or expired session)
//     produces [OutcomeRedirectToLogin].
//  2. A required role that does not exactly equal the identity's role
//     produces [OutcomeRedirectToHome].
//  3. Otherwise [OutcomeRender].
//
// A nil requiredRole means any signed-in identity may pass. The gate holds no
// state and is safe to call on every request with the latest snapshot. The
// snapshot's IsLoading flag is deliberately not consulted here; callers must
// wait out the bootstrap fetch before gating.
func Decide(snapshot Snapshot, requiredRole *Role) Outcome {
	if !snapshot.SignedIn(time.Now()) {
		return OutcomeRedirectToLogin
	}

	if requiredRole != nil && snapshot.Identity.Role != *requiredRole {
		return OutcomeRedirectToHome
	}

	return OutcomeRender
}
