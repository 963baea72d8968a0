package types

import (
	"time"
)

type GrievanceStatus string

const (
	GrievanceStatusSubmitted   GrievanceStatus = "submitted"
	GrievanceStatusUnderReview GrievanceStatus = "under_review"
	GrievanceStatusInProgress  GrievanceStatus = "in_progress"
	GrievanceStatusResolved    GrievanceStatus = "resolved"
	GrievanceStatusClosed      GrievanceStatus = "closed"
)

// GrievanceStatuses lists every status a grievance can move through,
// in lifecycle order.
var GrievanceStatuses = []GrievanceStatus{
	GrievanceStatusSubmitted,
	GrievanceStatusUnderReview,
	GrievanceStatusInProgress,
	GrievanceStatusResolved,
	GrievanceStatusClosed,
}

func (s GrievanceStatus) Valid() bool {
	for _, known := range GrievanceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type GrievancePriority string

const (
	GrievancePriorityLow    GrievancePriority = "low"
	GrievancePriorityMedium GrievancePriority = "medium"
	GrievancePriorityHigh   GrievancePriority = "high"
	GrievancePriorityUrgent GrievancePriority = "urgent"
)

func (p GrievancePriority) Valid() bool {
	switch p {
	case GrievancePriorityLow, GrievancePriorityMedium, GrievancePriorityHigh, GrievancePriorityUrgent:
		return true
	}
	return false
}

type Grievance struct {
	ID          string  `db:"id" json:"id"`
	ReferenceID string  `db:"reference_id" json:"reference_id"`
	UserID      *string `db:"user_id" json:"user_id,omitempty"`

	Title       string            `db:"title" json:"title"`
	Description string            `db:"description" json:"description"`
	Category    string            `db:"category" json:"category"`
	Priority    GrievancePriority `db:"priority" json:"priority"`
	Status      GrievanceStatus   `db:"status" json:"status"`

	Anonymous      bool    `db:"anonymous" json:"anonymous"`
	SubmitterName  *string `db:"submitter_name" json:"submitter_name,omitempty"`
	SubmitterEmail *string `db:"submitter_email" json:"submitter_email,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SubmitGrievance is the request body accepted by the submit endpoint.
type SubmitGrievance struct {
	UserID         *string           `json:"user_id,omitempty"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Priority       GrievancePriority `json:"priority,omitempty"`
	Anonymous      bool              `json:"anonymous"`
	SubmitterName  string            `json:"submitter_name,omitempty"`
	SubmitterEmail string            `json:"submitter_email,omitempty"`
}

// GrievanceFilter narrows the list endpoint. Zero values mean "any".
type GrievanceFilter struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	UserID   string `form:"user_id"`
}

func (f GrievanceFilter) Empty() bool {
	return f.Status == "" && f.Category == "" && f.UserID == ""
}
