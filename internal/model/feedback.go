package model

import "time"

type FeedbackStatus string

const (
	FeedbackNew        FeedbackStatus = "new"
	FeedbackInProgress FeedbackStatus = "in_progress"
	FeedbackResolved   FeedbackStatus = "resolved"
	FeedbackClosed     FeedbackStatus = "closed"
)

type FeedbackPriority string

const (
	PriorityLow    FeedbackPriority = "low"
	PriorityMedium FeedbackPriority = "medium"
	PriorityHigh   FeedbackPriority = "high"
	PriorityUrgent FeedbackPriority = "urgent"
)

type FeedbackCategory string

const (
	CategoryBug            FeedbackCategory = "bug"
	CategoryFeatureRequest FeedbackCategory = "feature_request"
	CategoryGeneral        FeedbackCategory = "general"
	CategoryComplaint      FeedbackCategory = "complaint"
	CategorySuggestion     FeedbackCategory = "suggestion"
	CategoryOther          FeedbackCategory = "other"
)

func (s FeedbackStatus) Valid() bool {
	switch s {
	case FeedbackNew, FeedbackInProgress, FeedbackResolved, FeedbackClosed:
		return true
	}
	return false
}

func (p FeedbackPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (c FeedbackCategory) Valid() bool {
	switch c {
	case CategoryBug, CategoryFeatureRequest, CategoryGeneral,
		CategoryComplaint, CategorySuggestion, CategoryOther:
		return true
	}
	return false
}

// Feedback is a message submitted through the contact form.
type Feedback struct {
	ID         string           `json:"id" bson:"_id"`
	Name       string           `json:"name" bson:"name"`
	Email      string           `json:"email" bson:"email"`
	Subject    string           `json:"subject" bson:"subject"`
	Message    string           `json:"message" bson:"message"`
	Category   FeedbackCategory `json:"category" bson:"category"`
	Priority   FeedbackPriority `json:"priority" bson:"priority"`
	Status     FeedbackStatus   `json:"status" bson:"status"`
	AdminNotes string           `json:"adminNotes,omitempty" bson:"adminNotes,omitempty"`
	ResolvedBy string           `json:"resolvedBy,omitempty" bson:"resolvedBy,omitempty"`
	ResolvedAt *time.Time       `json:"resolvedAt,omitempty" bson:"resolvedAt,omitempty"`
	CreatedAt  time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// SubmitFeedbackRequest is the payload for POST /feedback.
type SubmitFeedbackRequest struct {
	Name     string           `json:"name" validate:"required,max=100"`
	Email    string           `json:"email" validate:"required,legacy_email"`
	Subject  string           `json:"subject" validate:"required,max=200"`
	Message  string           `json:"message" validate:"required,max=2000"`
	Category FeedbackCategory `json:"category,omitempty" validate:"omitempty,oneof=bug feature_request general complaint suggestion other"`
	Priority FeedbackPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
}

// UpdateFeedbackRequest is the admin triage payload for PATCH /feedback/{id}.
type UpdateFeedbackRequest struct {
	Status     *FeedbackStatus   `json:"status,omitempty" validate:"omitempty,oneof=new in_progress resolved closed"`
	Priority   *FeedbackPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	AdminNotes *string           `json:"adminNotes,omitempty" validate:"omitempty,max=1000"`
}

// FeedbackFilter narrows a feedback listing. Empty fields match everything.
type FeedbackFilter struct {
	Status   FeedbackStatus   `json:"status,omitempty" validate:"omitempty,oneof=new in_progress resolved closed"`
	Priority FeedbackPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
}

// HackathonFilter narrows a hackathon listing. Empty fields match everything.
// Status is filtered by the service after derivation, not by stores.
type HackathonFilter struct {
	ApprovedOnly bool
	OrganizerID  string
	MemberUserID string
}
