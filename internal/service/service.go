// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/hackhub/internal/identity"
	"github.com/Shivanand-hulikatti/hackhub/internal/model"
	"github.com/Shivanand-hulikatti/hackhub/internal/repository"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// errUnchanged lets a mutation skip the write when it has nothing to do.
var errUnchanged = errors.New("unchanged")

// HackathonService orchestrates hackathon management and registration.
//
// Every mutation of a hackathon goes through mutate: it holds the per-id
// lock, loads the document, applies the change to a copy, re-derives the
// status and writes with a compare-and-swap on the version it loaded. The
// lock serializes writers in this process; the version check catches writers
// in other processes sharing the database.
type HackathonService struct {
	store       repository.HackathonStore
	clock       clockwork.Clock
	logger      zerolog.Logger
	locks       *keyedMutex
	maxAttempts int
}

// NewHackathonService constructs a HackathonService. maxAttempts bounds the
// read-modify-write retries on a version conflict.
func NewHackathonService(
	store repository.HackathonStore,
	clock clockwork.Clock,
	logger zerolog.Logger,
	maxAttempts int,
) *HackathonService {
	return &HackathonService{
		store:       store,
		clock:       clock,
		logger:      logger.With().Str("component", "hackathons").Logger(),
		locks:       newKeyedMutex(),
		maxAttempts: max(maxAttempts, 1),
	}
}

func (s *HackathonService) mutate(
	ctx context.Context,
	id string,
	fn func(h *model.Hackathon, now time.Time) error,
) (*model.Hackathon, error) {
	unlock, err := s.locks.Lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("wait for hackathon %s: %w", id, err)
	}
	defer unlock()

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		current, err := s.store.Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, repository.ErrNotFound
			}
			return nil, fmt.Errorf("load hackathon: %w", err)
		}

		now := s.clock.Now()
		next := current.Clone()
		if err := fn(next, now); err != nil {
			if errors.Is(err, errUnchanged) {
				current.RefreshStatus(now)
				return current, nil
			}
			return nil, err
		}
		next.RefreshStatus(now)
		next.UpdatedAt = now

		err = s.store.CompareAndSwap(ctx, id, current.Version, next)
		switch {
		case err == nil:
			return next, nil
		case errors.Is(err, repository.ErrNotFound):
			return nil, repository.ErrNotFound
		case errors.Is(err, repository.ErrVersionConflict):
			s.logger.Debug().
				Str("hackathon_id", id).
				Int("attempt", attempt).
				Int64("version", current.Version).
				Msg("version conflict, retrying")
		default:
			return nil, fmt.Errorf("save hackathon: %w", err)
		}
	}

	s.logger.Warn().
		Str("hackathon_id", id).
		Int("attempts", s.maxAttempts).
		Msg("gave up after repeated version conflicts")
	return nil, ErrConflict
}

func canManage(caller *identity.Principal, h *model.Hackathon) bool {
	if caller == nil {
		return false
	}
	return caller.Can(identity.CapModerateHackathons) || caller.UserID == h.OrganizerID
}

// CreateHackathon validates the request and stores a new, unapproved
// hackathon owned by the caller.
func (s *HackathonService) CreateHackathon(ctx context.Context, caller identity.Principal, req model.CreateHackathonRequest) (*model.Hackathon, error) {
	if !caller.Can(identity.CapCreateHackathon) {
		return nil, ErrForbidden
	}

	now := s.clock.Now().UTC()
	h := &model.Hackathon{
		ID:                   uuid.New().String(),
		Title:                strings.TrimSpace(req.Title),
		Description:          strings.TrimSpace(req.Description),
		OrganizerID:          caller.UserID,
		StartDate:            req.StartDate.UTC(),
		EndDate:              req.EndDate.UTC(),
		RegistrationDeadline: req.RegistrationDeadline.UTC(),
		Location:             strings.TrimSpace(req.Location),
		MaxParticipants:      req.MaxParticipants,
		TeamSize:             model.TeamSize{Min: defaultTeamMin, Max: defaultTeamMax},
		Participants:         []string{},
		Teams:                []model.Team{},
		Status:               model.StatusUpcoming,
		Tags:                 normalizeTags(req.Tags),
		Prizes:               normalizePrizes(req.Prizes),
		Requirements:         strings.TrimSpace(req.Requirements),
		Rules:                strings.TrimSpace(req.Rules),
		ContactEmail:         strings.ToLower(strings.TrimSpace(req.ContactEmail)),
		Website:              strings.TrimSpace(req.Website),
		ImageURL:             strings.TrimSpace(req.ImageURL),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if req.TeamSize != nil {
		h.TeamSize = *req.TeamSize
	}
	if err := validateHackathon(h); err != nil {
		return nil, err
	}
	h.RefreshStatus(now)

	if err := s.store.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("create hackathon: %w", err)
	}

	s.logger.Info().
		Str("hackathon_id", h.ID).
		Str("organizer_id", h.OrganizerID).
		Msg("hackathon created")
	return h, nil
}

// GetHackathon returns the view of one hackathon. Unapproved hackathons are
// reported as not found unless the caller organizes them or is an admin.
func (s *HackathonService) GetHackathon(ctx context.Context, caller *identity.Principal, id string) (*model.HackathonView, error) {
	h, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get hackathon: %w", err)
	}

	manage := canManage(caller, h)
	if !h.IsApproved && !manage {
		return nil, repository.ErrNotFound
	}
	v := model.NewHackathonView(h, s.clock.Now(), manage)
	return &v, nil
}

// ListHackathons returns approved hackathons, newest first. Admins may pass
// all to include unapproved ones. status filters on the derived status.
func (s *HackathonService) ListHackathons(ctx context.Context, caller *identity.Principal, status model.Status, all bool) ([]model.HackathonView, error) {
	if status != "" && !status.Valid() {
		return nil, invalid("status", fmt.Sprintf("unknown status %q", status))
	}

	filter := model.HackathonFilter{ApprovedOnly: true}
	if all && caller != nil && caller.Can(identity.CapModerateHackathons) {
		filter.ApprovedOnly = false
	}
	return s.list(ctx, caller, filter, status)
}

// ListMine returns the hackathons an organizer runs, or the ones a student is
// registered in.
func (s *HackathonService) ListMine(ctx context.Context, caller identity.Principal) ([]model.HackathonView, error) {
	filter := model.HackathonFilter{MemberUserID: caller.UserID}
	if caller.Role == identity.RoleOrganizer || caller.Role == identity.RoleAdmin {
		filter = model.HackathonFilter{OrganizerID: caller.UserID}
	}
	return s.list(ctx, &caller, filter, "")
}

func (s *HackathonService) list(ctx context.Context, caller *identity.Principal, filter model.HackathonFilter, status model.Status) ([]model.HackathonView, error) {
	hs, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list hackathons: %w", err)
	}

	now := s.clock.Now()
	views := make([]model.HackathonView, 0, len(hs))
	for i := range hs {
		h := &hs[i]
		if status != "" && h.DeriveStatus(now) != status {
			continue
		}
		views = append(views, model.NewHackathonView(h, now, canManage(caller, h)))
	}
	return views, nil
}

// UpdateHackathon applies an organizer edit. Approval, roster and owner are
// not editable here.
func (s *HackathonService) UpdateHackathon(ctx context.Context, caller identity.Principal, id string, req model.UpdateHackathonRequest) (*model.Hackathon, error) {
	return s.mutate(ctx, id, func(h *model.Hackathon, _ time.Time) error {
		if !canManage(&caller, h) {
			return ErrForbidden
		}
		applyUpdate(h, req)
		if err := validateHackathon(h); err != nil {
			return err
		}
		if count := h.ParticipantCount(); h.MaxParticipants < count {
			return invalid("maxParticipants", fmt.Sprintf("cannot be below the %d participants already registered", count))
		}
		return nil
	})
}

func applyUpdate(h *model.Hackathon, req model.UpdateHackathonRequest) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setTime := func(dst *time.Time, src *time.Time) {
		if src != nil {
			*dst = src.UTC()
		}
	}

	setString(&h.Title, req.Title)
	setString(&h.Description, req.Description)
	setString(&h.Location, req.Location)
	setString(&h.Requirements, req.Requirements)
	setString(&h.Rules, req.Rules)
	setString(&h.Website, req.Website)
	setString(&h.ImageURL, req.ImageURL)
	if req.ContactEmail != nil {
		h.ContactEmail = strings.ToLower(strings.TrimSpace(*req.ContactEmail))
	}
	setTime(&h.StartDate, req.StartDate)
	setTime(&h.EndDate, req.EndDate)
	setTime(&h.RegistrationDeadline, req.RegistrationDeadline)
	if req.MaxParticipants != nil {
		h.MaxParticipants = *req.MaxParticipants
	}
	if req.TeamSize != nil {
		h.TeamSize = *req.TeamSize
	}
	if req.Tags != nil {
		h.Tags = normalizeTags(req.Tags)
	}
	if req.Prizes != nil {
		h.Prizes = normalizePrizes(req.Prizes)
	}
}

// ApproveHackathon marks a hackathon approved. Admin only.
func (s *HackathonService) ApproveHackathon(ctx context.Context, caller identity.Principal, id string) (*model.Hackathon, error) {
	if !caller.Can(identity.CapModerateHackathons) {
		return nil, ErrForbidden
	}
	h, err := s.mutate(ctx, id, func(h *model.Hackathon, _ time.Time) error {
		if h.IsApproved {
			return errUnchanged
		}
		h.IsApproved = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("hackathon_id", id).Str("admin_id", caller.UserID).Msg("hackathon approved")
	return h, nil
}

// CancelHackathon sets the sticky cancelled status.
func (s *HackathonService) CancelHackathon(ctx context.Context, caller identity.Principal, id string) (*model.Hackathon, error) {
	h, err := s.mutate(ctx, id, func(h *model.Hackathon, _ time.Time) error {
		if !canManage(&caller, h) {
			return ErrForbidden
		}
		if h.Status == model.StatusCancelled {
			return errUnchanged
		}
		h.Status = model.StatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("hackathon_id", id).Str("by", caller.UserID).Msg("hackathon cancelled")
	return h, nil
}

// DeleteHackathon removes a hackathon immediately.
func (s *HackathonService) DeleteHackathon(ctx context.Context, caller identity.Principal, id string) error {
	unlock, err := s.locks.Lock(ctx, id)
	if err != nil {
		return fmt.Errorf("wait for hackathon %s: %w", id, err)
	}
	defer unlock()

	h, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("get hackathon: %w", err)
	}
	if !canManage(&caller, h) {
		return ErrForbidden
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("delete hackathon: %w", err)
	}
	s.logger.Info().Str("hackathon_id", id).Str("by", caller.UserID).Msg("hackathon deleted")
	return nil
}
