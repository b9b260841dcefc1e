package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/hackhub/internal/identity"
	"github.com/Shivanand-hulikatti/hackhub/internal/model"
	"github.com/Shivanand-hulikatti/hackhub/internal/repository"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// FeedbackService handles the contact-form inbox.
type FeedbackService struct {
	store  repository.FeedbackStore
	clock  clockwork.Clock
	logger zerolog.Logger
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(store repository.FeedbackStore, clock clockwork.Clock, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{
		store:  store,
		clock:  clock,
		logger: logger.With().Str("component", "feedback").Logger(),
	}
}

// Submit validates and stores a new feedback message. Anyone may submit.
func (s *FeedbackService) Submit(ctx context.Context, req model.SubmitFeedbackRequest) (*model.Feedback, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if req.Category == "" {
		req.Category = model.CategoryGeneral
	}
	if req.Priority == "" {
		req.Priority = model.PriorityMedium
	}
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	f := &model.Feedback{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Category:  req.Category,
		Priority:  req.Priority,
		Status:    model.FeedbackNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	s.logger.Info().Str("feedback_id", f.ID).Str("category", string(f.Category)).Msg("feedback received")
	return f, nil
}

// List returns feedback newest first.
func (s *FeedbackService) List(ctx context.Context, filter model.FeedbackFilter) ([]model.Feedback, error) {
	if err := checkStruct(filter); err != nil {
		return nil, err
	}

	out, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return out, nil
}

// Update applies admin triage. Moving to resolved records who resolved it.
func (s *FeedbackService) Update(ctx context.Context, caller identity.Principal, id string, req model.UpdateFeedbackRequest) (*model.Feedback, error) {
	if !caller.Can(identity.CapManageFeedback) {
		return nil, ErrForbidden
	}

	f, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get feedback: %w", err)
	}

	if err := checkStruct(req); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	if req.Priority != nil {
		f.Priority = *req.Priority
	}
	if req.AdminNotes != nil {
		f.AdminNotes = strings.TrimSpace(*req.AdminNotes)
	}
	if req.Status != nil && *req.Status != f.Status {
		f.Status = *req.Status
		if f.Status == model.FeedbackResolved {
			f.ResolvedBy = caller.UserID
			f.ResolvedAt = &now
		}
	}
	f.UpdatedAt = now

	if err := s.store.Update(ctx, f); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update feedback: %w", err)
	}
	return f, nil
}

// Delete removes a feedback message immediately.
func (s *FeedbackService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}
