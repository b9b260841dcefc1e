// Package model defines the core domain types for the hackathon platform.
package model

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a hackathon.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// MemberRole distinguishes the team leader from the other members.
type MemberRole string

const (
	RoleLeader MemberRole = "leader"
	RoleMember MemberRole = "member"
)

// TeamSize bounds the number of members a team may register with.
type TeamSize struct {
	Min int `json:"min" bson:"min" validate:"min=1"`
	Max int `json:"max" bson:"max" validate:"min=1,gtefield=Min"`
}

// Prize is a single award listed on a hackathon.
type Prize struct {
	Position    string `json:"position" bson:"position" validate:"required"`
	Amount      string `json:"amount" bson:"amount" validate:"required"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Member is one person inside a registered team. User is empty for members
// without a platform account.
type Member struct {
	User    string     `json:"user,omitempty" bson:"user,omitempty"`
	Name    string     `json:"name" bson:"name" validate:"required"`
	Email   string     `json:"email" bson:"email" validate:"required,legacy_email"`
	Phone   string     `json:"phone" bson:"phone" validate:"required,in_phone"`
	College string     `json:"college" bson:"college" validate:"required"`
	Year    string     `json:"year" bson:"year" validate:"required"`
	Skills  []string   `json:"skills" bson:"skills"`
	Role    MemberRole `json:"role" bson:"role" validate:"omitempty,oneof=leader member"`
}

// Team is a named group of members registered together.
type Team struct {
	ID           string    `json:"id" bson:"id"`
	TeamName     string    `json:"teamName" bson:"teamName"`
	Members      []Member  `json:"members" bson:"members"`
	RegisteredBy string    `json:"registeredBy,omitempty" bson:"registeredBy,omitempty"`
	RegisteredAt time.Time `json:"registeredAt" bson:"registeredAt"`
}

// Leader returns the member flagged as leader, or nil.
func (t *Team) Leader() *Member {
	for i := range t.Members {
		if t.Members[i].Role == RoleLeader {
			return &t.Members[i]
		}
	}
	return nil
}

// Hackathon is a scheduled event with capacity, approval state and roster.
type Hackathon struct {
	ID                   string    `json:"id" bson:"_id"`
	Title                string    `json:"title" bson:"title" validate:"required,max=200"`
	Description          string    `json:"description" bson:"description" validate:"required,max=2000"`
	OrganizerID          string    `json:"organizerId" bson:"organizerId"`
	StartDate            time.Time `json:"startDate" bson:"startDate" validate:"required"`
	EndDate              time.Time `json:"endDate" bson:"endDate" validate:"required,gtfield=StartDate"`
	RegistrationDeadline time.Time `json:"registrationDeadline" bson:"registrationDeadline" validate:"required,ltefield=StartDate"`
	Location             string    `json:"location" bson:"location" validate:"required"`
	MaxParticipants      int       `json:"maxParticipants" bson:"maxParticipants" validate:"min=1,max=10000"`
	TeamSize             TeamSize  `json:"teamSize" bson:"teamSize"`
	Participants         []string  `json:"participants" bson:"participants"`
	Teams                []Team    `json:"teams" bson:"teams"`
	Status               Status    `json:"status" bson:"status"`
	IsApproved           bool      `json:"isApproved" bson:"isApproved"`
	Tags                 []string  `json:"tags" bson:"tags"`
	Prizes               []Prize   `json:"prizes" bson:"prizes" validate:"dive"`
	Requirements         string    `json:"requirements,omitempty" bson:"requirements,omitempty" validate:"max=1000"`
	Rules                string    `json:"rules,omitempty" bson:"rules,omitempty" validate:"max=2000"`
	ContactEmail         string    `json:"contactEmail" bson:"contactEmail" validate:"required,legacy_email"`
	Website              string    `json:"website,omitempty" bson:"website,omitempty" validate:"omitempty,web_url"`
	ImageURL             string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty" validate:"omitempty,web_url"`
	Version              int64     `json:"version" bson:"version"`
	CreatedAt            time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt" bson:"updatedAt"`
}

// DeriveStatus computes the lifecycle status at now. A cancelled hackathon
// stays cancelled.
func (h *Hackathon) DeriveStatus(now time.Time) Status {
	switch {
	case h.Status == StatusCancelled:
		return StatusCancelled
	case now.Before(h.StartDate):
		return StatusUpcoming
	case now.After(h.EndDate):
		return StatusCompleted
	default:
		return StatusOngoing
	}
}

// RefreshStatus stores the derived status on h.
func (h *Hackathon) RefreshStatus(now time.Time) {
	h.Status = h.DeriveStatus(now)
}

// ParticipantCount is the number of team members plus individual registrants.
func (h *Hackathon) ParticipantCount() int {
	n := len(h.Participants)
	for _, t := range h.Teams {
		n += len(t.Members)
	}
	return n
}

// SpotsRemaining returns how many more participants fit, never negative.
func (h *Hackathon) SpotsRemaining() int {
	if r := h.MaxParticipants - h.ParticipantCount(); r > 0 {
		return r
	}
	return 0
}

// IsRegistrationOpen reports whether new registrations are accepted at now.
func (h *Hackathon) IsRegistrationOpen(now time.Time) bool {
	return h.IsApproved &&
		!now.After(h.RegistrationDeadline) &&
		h.ParticipantCount() < h.MaxParticipants &&
		h.DeriveStatus(now) == StatusUpcoming
}

// HasUser reports whether userID is an individual participant or a member
// of any team.
func (h *Hackathon) HasUser(userID string) bool {
	if userID == "" {
		return false
	}
	for _, p := range h.Participants {
		if p == userID {
			return true
		}
	}
	for _, t := range h.Teams {
		for _, m := range t.Members {
			if m.User == userID {
				return true
			}
		}
	}
	return false
}

// HasTeamEmail reports whether email belongs to a member of a registered team.
func (h *Hackathon) HasTeamEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, t := range h.Teams {
		for _, m := range t.Members {
			if strings.ToLower(m.Email) == email {
				return true
			}
		}
	}
	return false
}

// TeamIndex returns the index of the team with the given id, or -1.
func (h *Hackathon) TeamIndex(teamID string) int {
	for i, t := range h.Teams {
		if t.ID == teamID {
			return i
		}
	}
	return -1
}

// HasTeamName reports whether a team with this name (case-insensitive) exists.
func (h *Hackathon) HasTeamName(name string) bool {
	for _, t := range h.Teams {
		if strings.EqualFold(t.TeamName, name) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate it without touching h.
func (h *Hackathon) Clone() *Hackathon {
	c := *h
	c.Participants = append([]string(nil), h.Participants...)
	c.Tags = append([]string(nil), h.Tags...)
	c.Prizes = append([]Prize(nil), h.Prizes...)
	if h.Teams != nil {
		c.Teams = make([]Team, len(h.Teams))
		for i, t := range h.Teams {
			t.Members = cloneMembers(t.Members)
			c.Teams[i] = t
		}
	}
	return &c
}

func cloneMembers(in []Member) []Member {
	if in == nil {
		return nil
	}
	out := make([]Member, len(in))
	for i, m := range in {
		m.Skills = append([]string(nil), m.Skills...)
		out[i] = m
	}
	return out
}
