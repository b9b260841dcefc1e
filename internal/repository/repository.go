// Package repository persists hackathons and feedback. Hackathons are stored
// as whole documents guarded by a version counter so the service layer can do
// read-modify-write cycles with a conditional write.
package repository

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/hackhub/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrVersionConflict is returned by CompareAndSwap when the stored version no
// longer matches the version the caller read.
var ErrVersionConflict = errors.New("version conflict")

// HackathonStore is the persistence contract for hackathon documents.
type HackathonStore interface {
	// Create inserts h with version 1.
	Create(ctx context.Context, h *model.Hackathon) error
	// Get returns the stored document or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Hackathon, error)
	// List returns matching documents, newest first.
	List(ctx context.Context, filter model.HackathonFilter) ([]model.Hackathon, error)
	// CompareAndSwap replaces the document only if its stored version equals
	// expectedVersion. On success updated.Version is expectedVersion+1.
	CompareAndSwap(ctx context.Context, id string, expectedVersion int64, updated *model.Hackathon) error
	// Delete removes the document or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// FeedbackStore is the persistence contract for feedback messages.
type FeedbackStore interface {
	Create(ctx context.Context, f *model.Feedback) error
	Get(ctx context.Context, id string) (*model.Feedback, error)
	List(ctx context.Context, filter model.FeedbackFilter) ([]model.Feedback, error)
	Update(ctx context.Context, f *model.Feedback) error
	Delete(ctx context.Context, id string) error
}

func matchesHackathon(h *model.Hackathon, f model.HackathonFilter) bool {
	if f.ApprovedOnly && !h.IsApproved {
		return false
	}
	if f.OrganizerID != "" && h.OrganizerID != f.OrganizerID {
		return false
	}
	if f.MemberUserID != "" && !h.HasUser(f.MemberUserID) {
		return false
	}
	return true
}

func matchesFeedback(fb *model.Feedback, f model.FeedbackFilter) bool {
	if f.Status != "" && fb.Status != f.Status {
		return false
	}
	if f.Priority != "" && fb.Priority != f.Priority {
		return false
	}
	return true
}
