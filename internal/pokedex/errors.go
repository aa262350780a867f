package pokedex

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySelection is returned when no search term was given.
	ErrEmptySelection = errors.New("please enter a pokemon name or id")
	// ErrIdenticalSelection is returned when a comparison names the same pokemon twice.
	ErrIdenticalSelection = errors.New("please enter two different pokemon names")
	// ErrEmptyStats is returned for a record whose stats list is present but empty.
	ErrEmptyStats = errors.New("pokemon has no stats")
	// ErrDuplicateMember is returned when a hand-picked team names the same pokemon twice.
	ErrDuplicateMember = errors.New("team members must be distinct")
)

// NotFoundError reports that the upstream did not deliver a record for Query,
// either because it answered with a non-success status or because the
// request never completed.
type NotFoundError struct {
	Query  string
	Status int // 0 when no response was received
	Err    error
}

func (e *NotFoundError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("pokemon %q not found (status %d)", e.Query, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("pokemon %q not found: %v", e.Query, e.Err)
	}
	return fmt.Sprintf("pokemon %q not found", e.Query)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// MalformedRecordError reports a record that was fetched successfully but
// lacks a field the derivations need.
type MalformedRecordError struct {
	Field string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed pokemon record: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed pokemon record: missing %q", e.Field)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// Validate checks that every list field a derivation reads was present in
// the payload. It reports the first missing one.
func Validate(p *Pokemon) error {
	if p == nil {
		return &MalformedRecordError{Field: "record"}
	}
	switch {
	case p.Stats == nil:
		return &MalformedRecordError{Field: "stats"}
	case p.Types == nil:
		return &MalformedRecordError{Field: "types"}
	case p.Moves == nil:
		return &MalformedRecordError{Field: "moves"}
	}
	return nil
}

// TeamSizeError reports a team that does not have exactly Want members.
type TeamSizeError struct {
	Got  int
	Want int
}

func (e *TeamSizeError) Error() string {
	return fmt.Sprintf("team needs %d members, got %d", e.Want, e.Got)
}
