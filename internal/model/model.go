package model

import "time"

// CreateHackathonRequest is the payload for creating a new hackathon.
type CreateHackathonRequest struct {
	Title                string    `json:"title" yaml:"title"`
	Description          string    `json:"description" yaml:"description"`
	StartDate            time.Time `json:"startDate" yaml:"startDate"`
	EndDate              time.Time `json:"endDate" yaml:"endDate"`
	RegistrationDeadline time.Time `json:"registrationDeadline" yaml:"registrationDeadline"`
	Location             string    `json:"location" yaml:"location"`
	MaxParticipants      int       `json:"maxParticipants" yaml:"maxParticipants"`
	TeamSize             *TeamSize `json:"teamSize,omitempty" yaml:"teamSize,omitempty"`
	Tags                 []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Prizes               []Prize   `json:"prizes,omitempty" yaml:"prizes,omitempty"`
	Requirements         string    `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Rules                string    `json:"rules,omitempty" yaml:"rules,omitempty"`
	ContactEmail         string    `json:"contactEmail" yaml:"contactEmail"`
	Website              string    `json:"website,omitempty" yaml:"website,omitempty"`
	ImageURL             string    `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// UpdateHackathonRequest carries an organizer edit. Nil fields are left
// unchanged.
type UpdateHackathonRequest struct {
	Title                *string    `json:"title,omitempty"`
	Description          *string    `json:"description,omitempty"`
	StartDate            *time.Time `json:"startDate,omitempty"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
	Location             *string    `json:"location,omitempty"`
	MaxParticipants      *int       `json:"maxParticipants,omitempty"`
	TeamSize             *TeamSize  `json:"teamSize,omitempty"`
	Tags                 []string   `json:"tags,omitempty"`
	Prizes               []Prize    `json:"prizes,omitempty"`
	Requirements         *string    `json:"requirements,omitempty"`
	Rules                *string    `json:"rules,omitempty"`
	ContactEmail         *string    `json:"contactEmail,omitempty"`
	Website              *string    `json:"website,omitempty"`
	ImageURL             *string    `json:"imageUrl,omitempty"`
}

// RegisterTeamRequest is the payload for POST /hackathons/{id}/register-team.
type RegisterTeamRequest struct {
	TeamName string   `json:"teamName"`
	Members  []Member `json:"members"`
}

// RegisteredTeam is returned after a successful team registration.
type RegisteredTeam struct {
	ID               string    `json:"id"`
	TeamName         string    `json:"teamName"`
	Members          []Member  `json:"members"`
	RegisteredAt     time.Time `json:"registeredAt"`
	ParticipantCount int       `json:"participantCount"`
	SpotsRemaining   int       `json:"spotsRemaining"`
}

// HackathonView is the API representation of a hackathon, with derived
// capacity fields. Teams and Participants are only populated for callers
// allowed to see the roster.
type HackathonView struct {
	*Hackathon
	ParticipantCount   int  `json:"participantCount"`
	SpotsRemaining     int  `json:"spotsRemaining"`
	IsRegistrationOpen bool `json:"isRegistrationOpen"`
}

// NewHackathonView builds the API view of h at now. When withRoster is false
// the team roster and participant list are stripped.
func NewHackathonView(h *Hackathon, now time.Time, withRoster bool) HackathonView {
	v := HackathonView{
		Hackathon:          h.Clone(),
		ParticipantCount:   h.ParticipantCount(),
		SpotsRemaining:     h.SpotsRemaining(),
		IsRegistrationOpen: h.IsRegistrationOpen(now),
	}
	v.Status = h.DeriveStatus(now)
	if !withRoster || v.Teams == nil {
		v.Teams = []Team{}
	}
	if !withRoster || v.Participants == nil {
		v.Participants = []string{}
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if v.Prizes == nil {
		v.Prizes = []Prize{}
	}
	return v
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// MessageResponse acknowledges a mutation that returns no resource.
type MessageResponse struct {
	Message string `json:"message"`
}
