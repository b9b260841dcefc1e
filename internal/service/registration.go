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
)

func checkOpen(h *model.Hackathon, now time.Time) error {
	if !h.IsApproved || h.Status == model.StatusCancelled || now.After(h.RegistrationDeadline) {
		return ErrRegistrationClosed
	}
	return nil
}

// RegisterTeam validates a team against the hackathon and appends it.
//
// Checks run in a fixed order and the first failing one decides the error:
// existence, registration window, team name, team size, member fields (all
// collected), duplicate members, capacity. Nothing is written unless every
// check passes.
func (s *HackathonService) RegisterTeam(ctx context.Context, caller identity.Principal, hackathonID string, req model.RegisterTeamRequest) (*model.RegisteredTeam, error) {
	var team model.Team

	h, err := s.mutate(ctx, hackathonID, func(h *model.Hackathon, now time.Time) error {
		if err := checkOpen(h, now); err != nil {
			return err
		}

		name := strings.TrimSpace(req.TeamName)
		if err := validate.Var(name, "required"); err != nil {
			return invalid("teamName", "team name is required")
		}
		if h.HasTeamName(name) {
			return invalid("teamName", "team name is already registered for this hackathon")
		}

		if err := validateTeamSize(len(req.Members), h.TeamSize); err != nil {
			return err
		}

		members := make([]model.Member, len(req.Members))
		for i, m := range req.Members {
			members[i] = normalizeMember(m)
		}
		if err := validateMembers(members); err != nil {
			return err
		}

		for i, m := range members {
			if h.HasUser(m.User) {
				return fmt.Errorf("%w: member[%d] is already in another team", ErrDuplicateMember, i)
			}
			if h.HasTeamEmail(m.Email) {
				return fmt.Errorf("%w: member[%d] email %s is already in another team", ErrDuplicateMember, i, m.Email)
			}
		}

		if h.ParticipantCount()+len(members) > h.MaxParticipants {
			return fmt.Errorf("%w: %d of %d spots left", ErrHackathonFull, h.SpotsRemaining(), h.MaxParticipants)
		}

		team = model.Team{
			ID:           uuid.New().String(),
			TeamName:     name,
			Members:      members,
			RegisteredBy: caller.UserID,
			RegisteredAt: now.UTC(),
		}
		h.Teams = append(h.Teams, team)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("hackathon_id", hackathonID).
		Str("team_id", team.ID).
		Int("members", len(team.Members)).
		Int("participant_count", h.ParticipantCount()).
		Msg("team registered")

	return &model.RegisteredTeam{
		ID:               team.ID,
		TeamName:         team.TeamName,
		Members:          team.Members,
		RegisteredAt:     team.RegisteredAt,
		ParticipantCount: h.ParticipantCount(),
		SpotsRemaining:   h.SpotsRemaining(),
	}, nil
}

// RegisterParticipant registers the caller individually.
func (s *HackathonService) RegisterParticipant(ctx context.Context, caller identity.Principal, hackathonID string) (*model.HackathonView, error) {
	h, err := s.mutate(ctx, hackathonID, func(h *model.Hackathon, now time.Time) error {
		if err := checkOpen(h, now); err != nil {
			return err
		}
		if h.HasUser(caller.UserID) {
			return fmt.Errorf("%w: already registered", ErrDuplicateMember)
		}
		if h.ParticipantCount()+1 > h.MaxParticipants {
			return ErrHackathonFull
		}
		h.Participants = append(h.Participants, caller.UserID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("hackathon_id", hackathonID).
		Str("user_id", caller.UserID).
		Msg("participant registered")

	v := model.NewHackathonView(h, s.clock.Now(), canManage(&caller, h))
	return &v, nil
}

// UnregisterParticipant removes the caller from the individual participant
// list. It is a no-op when the caller is not registered.
func (s *HackathonService) UnregisterParticipant(ctx context.Context, caller identity.Principal, hackathonID string) error {
	_, err := s.mutate(ctx, hackathonID, func(h *model.Hackathon, _ time.Time) error {
		kept := h.Participants[:0]
		for _, p := range h.Participants {
			if p != caller.UserID {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(h.Participants) {
			return errUnchanged
		}
		h.Participants = kept
		return nil
	})
	return err
}

// ListTeams returns the team roster. Organizer or admin only.
func (s *HackathonService) ListTeams(ctx context.Context, caller identity.Principal, hackathonID string) ([]model.Team, error) {
	h, err := s.store.Get(ctx, hackathonID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get hackathon: %w", err)
	}
	if !canManage(&caller, h) {
		return nil, ErrForbidden
	}
	if h.Teams == nil {
		return []model.Team{}, nil
	}
	return h.Teams, nil
}

// DeleteTeam removes one team from the roster. Organizer or admin only.
func (s *HackathonService) DeleteTeam(ctx context.Context, caller identity.Principal, hackathonID, teamID string) error {
	_, err := s.mutate(ctx, hackathonID, func(h *model.Hackathon, _ time.Time) error {
		if !canManage(&caller, h) {
			return ErrForbidden
		}
		i := h.TeamIndex(teamID)
		if i < 0 {
			return fmt.Errorf("team %s: %w", teamID, repository.ErrNotFound)
		}
		h.Teams = append(h.Teams[:i], h.Teams[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info().
		Str("hackathon_id", hackathonID).
		Str("team_id", teamID).
		Str("by", caller.UserID).
		Msg("team deleted")
	return nil
}
