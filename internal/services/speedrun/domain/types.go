// Package domain holds Speedrun lead queue types
package domain

import "time"

// Lead statuses walk queued -> attempted -> done
// attempted leads re-enter the queue behind fresh ones
const (
	StatusQueued    = "queued"
	StatusAttempted = "attempted"
	StatusDone      = "done"
)

// Lead is one prospect in the calling queue
type Lead struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id" example:"ws-42"`
	Name        string    `json:"name" example:"Dana Reyes"`
	Company     string    `json:"company" example:"Acme"`
	Email       string    `json:"email" example:"dana@acme.test"`
	Score       float64   `json:"score" example:"87.5"`
	Status      string    `json:"status" example:"queued"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Outcome is one recorded call result for a lead
type Outcome struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Kind      string    `json:"kind" example:"voicemail"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EnqueueLeadInput adds a prospect to the queue
type EnqueueLeadInput struct {
	WorkspaceID string  `json:"workspace_id" validate:"required,handle,max=64"`
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Company     string  `json:"company,omitempty" validate:"omitempty,max=200"`
	Email       string  `json:"email,omitempty" validate:"omitempty,email"`
	Score       float64 `json:"score,omitempty" validate:"omitempty,min=0,max=100"`
}

// NextLeadInput asks for the highest-ranked lead to call
type NextLeadInput struct {
	WorkspaceID string `json:"workspace_id" validate:"required,handle,max=64"`
}

// CompleteLeadInput records a call outcome
// kind decides whether the lead is done or re-queued for another attempt;
// any kind the service does not recognize closes the lead
type CompleteLeadInput struct {
	WorkspaceID string `json:"workspace_id" validate:"required,handle,max=64"`
	LeadID      string `json:"lead_id" validate:"required,uuid4|uuid"`
	Kind        string `json:"kind" validate:"required,min=1,max=64"`
	Notes       string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// QueueDepthInput asks how much work remains
type QueueDepthInput struct {
	WorkspaceID string `json:"workspace_id" validate:"required,handle,max=64"`
}

// QueueDepthRow summarizes the queue
type QueueDepthRow struct {
	WorkspaceID string `json:"workspace_id"`
	Queued      int64  `json:"queued"`
	Attempted   int64  `json:"attempted"`
	Done        int64  `json:"done"`
}
