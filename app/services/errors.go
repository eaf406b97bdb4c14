package services

import "errors"

// Sentinel errors returned by the service layer. Controllers translate these
// into HTTP statuses; anything else is an internal error (500, logged).
var (
	// ErrEmailTaken is returned by Signup when the email is already registered.
	ErrEmailTaken = errors.New("user already exists with this email")

	// ErrInvalidCredentials covers both an unknown email and a password
	// mismatch so login failures do not reveal which part was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUserNotFound      = errors.New("user not found")
	ErrCombatantNotFound = errors.New("combatant not found")
	ErrEncounterNotFound = errors.New("encounter not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrOrderNotFound     = errors.New("order not found")

	// ErrForbidden means the caller is authenticated but is neither the
	// resource owner nor an admin. Encounter and order reads surface it as
	// 404 to hide resource existence.
	ErrForbidden = errors.New("unauthorized request")

	// ErrInvalidReference is returned when any id in a reference list is not
	// a syntactically valid id, or does not resolve to a stored document.
	// The whole operation fails before any store mutation.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrCombatantInUse is returned by the deletion guard while any
	// encounter still references the combatant.
	ErrCombatantInUse = errors.New("Cannot delete combatant as it is still in use by an encounter.")

	// ErrNoMatches is returned by search when zero encounters match.
	ErrNoMatches = errors.New("no encounters found")
)
