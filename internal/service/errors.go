package service

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrRegistrationClosed: the hackathon is unapproved, cancelled or past
	// its registration deadline.
	ErrRegistrationClosed = errors.New("registration is closed for this hackathon")

	// ErrDuplicateMember: a member is already registered in this hackathon.
	ErrDuplicateMember = errors.New("member already registered for this hackathon")

	// ErrHackathonFull: the registration would exceed maxParticipants.
	ErrHackathonFull = errors.New("hackathon is full")

	// ErrConflict: concurrent writers kept winning the version race and the
	// retry budget ran out.
	ErrConflict = errors.New("hackathon was modified concurrently, please retry")

	// ErrForbidden: the caller is authenticated but not allowed to do this.
	ErrForbidden = errors.New("access denied")

	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
)

// ValidationError carries one message per offending field path, e.g.
// "teamName" or "member[1].email".
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return ErrValidation.Error() + ": " + strings.Join(keys, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// fieldErrors collects validation messages; the first message per field wins.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

func invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
