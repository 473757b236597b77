// Package domain holds Oasis messaging types shared by transport and service
package domain

import "time"

// Conversation is one messaging thread between workspace members and a contact
type Conversation struct {
	ID          string    `json:"id" example:"018f3c2e-5b8a-7c21-9d42-0242ac120002"`
	WorkspaceID string    `json:"workspace_id" example:"ws-42"`
	Subject     string    `json:"subject" example:"Acme renewal"`
	Kind        string    `json:"kind" example:"direct"` // direct or group
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Message is one sent message inside a conversation
type Message struct {
	ID             string    `json:"id" example:"018f3c2e-9a11-7c21-9d42-0242ac120002"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id" example:"u-7"`
	Body           string    `json:"body" example:"sounds good, talk tomorrow"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateConversationInput opens a new thread
type CreateConversationInput struct {
	WorkspaceID string `json:"workspace_id" validate:"required,handle,max=64"`
	Subject     string `json:"subject" validate:"required,min=1,max=300"`
	Kind        string `json:"kind,omitempty" validate:"omitempty,oneof=direct group"`
}

// ListConversationsInput pages threads for a workspace
type ListConversationsInput struct {
	WorkspaceID string `json:"workspace_id" validate:"required,handle,max=64"`
	Limit       int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200"`
}

// SendMessageInput appends a message to a conversation
type SendMessageInput struct {
	WorkspaceID    string `json:"workspace_id" validate:"required,handle,max=64"`
	ConversationID string `json:"conversation_id" validate:"required,uuid4|uuid"`
	SenderID       string `json:"sender_id" validate:"required,min=1,max=64"`
	Body           string `json:"body" validate:"required,min=1,max=10000"`
}

// ListMessagesInput pages messages in a conversation, newest first
type ListMessagesInput struct {
	WorkspaceID    string `json:"workspace_id" validate:"required,handle,max=64"`
	ConversationID string `json:"conversation_id" validate:"required,uuid4|uuid"`
	Limit          int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500"`
	Before         string `json:"before,omitempty" validate:"omitempty,uuid4|uuid"`
}

// SearchInput is a Monaco search query over message bodies
// the query is folded before matching so case, accents and width variants
// all hit the same rows
type SearchInput struct {
	WorkspaceID string `json:"workspace_id" validate:"required,handle,max=64"`
	Query       string `json:"query" validate:"required,min=1,max=200"`
	Limit       int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200"`
}

// TypingInput identifies one composer in one conversation
type TypingInput struct {
	WorkspaceID    string `json:"workspace_id" validate:"required,handle,max=64"`
	ConversationID string `json:"conversation_id" validate:"required,uuid4|uuid"`
	UserID         string `json:"user_id" validate:"required,min=1,max=64"`
}

// TypersQuery asks who currently shows a typing indicator
type TypersQuery struct {
	ConversationID string `json:"conversation_id" validate:"required,uuid4|uuid"`
}

// TypersRow is the answer to a TypersQuery
type TypersRow struct {
	ConversationID string   `json:"conversation_id"`
	UserIDs        []string `json:"user_ids"`
}
