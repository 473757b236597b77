package domain

import "context"

// MessagingPort is consumed by handlers and other modules
type MessagingPort interface {
	CreateConversation(ctx context.Context, in CreateConversationInput) (Conversation, error)
	ListConversations(ctx context.Context, in ListConversationsInput) ([]Conversation, error)
	SendMessage(ctx context.Context, in SendMessageInput) (Message, error)
	ListMessages(ctx context.Context, in ListMessagesInput) ([]Message, error)
	SearchMessages(ctx context.Context, in SearchInput) ([]Message, error)
}

// TypingPort drives typing indicators for composers
// Keystroke is fire-and-forget from the client's point of view; the service
// decides when (or whether) a signal actually goes out
type TypingPort interface {
	Keystroke(ctx context.Context, in TypingInput) error
	StopTyping(ctx context.Context, in TypingInput) error
	ResetTyping(ctx context.Context, in TypingInput) error
	ActiveTypers(ctx context.Context, q TypersQuery) (TypersRow, error)
}
