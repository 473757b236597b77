// Package http provides http transport for Oasis messaging
package http

import (
	stdhttp "net/http"

	"adrata/internal/modkit/httpkit"
	"adrata/internal/services/oasis/domain"
)

// Register mounts Oasis endpoints on the given router
func Register(r httpkit.Router, messaging domain.MessagingPort, typers domain.TypingPort) {
	h := &handlers{messaging: messaging, typing: typers}

	// conversations
	httpkit.PostJSON[domain.CreateConversationInput](r, "/conversations", h.createConversation)
	httpkit.PostJSON[domain.ListConversationsInput](r, "/conversations/list", h.listConversations)

	// messages
	httpkit.PostJSON[domain.SendMessageInput](r, "/messages", h.sendMessage)
	httpkit.PostJSON[domain.ListMessagesInput](r, "/messages/list", h.listMessages)

	// Monaco search over message bodies
	httpkit.PostJSON[domain.SearchInput](r, "/search", h.search)

	// typing indicator surface
	httpkit.PostJSON[domain.TypingInput](r, "/typing/keystroke", h.keystroke)
	httpkit.PostJSON[domain.TypingInput](r, "/typing/stop", h.stopTyping)
	httpkit.PostJSON[domain.TypingInput](r, "/typing/reset", h.resetTyping)
	httpkit.PostJSON[domain.TypersQuery](r, "/typing/active", h.activeTypers)
}

type handlers struct {
	messaging domain.MessagingPort
	typing    domain.TypingPort
}

// swagger:route POST /oasis/conversations Oasis oasisCreateConversation
// @Summary Open a conversation
// @Tags Oasis
// @Accept json
// @Produce json
// @Param payload body domain.CreateConversationInput true "Conversation"
// @Success 200 {object} domain.Conversation "ok"
// @Router /oasis/conversations [post]
func (h *handlers) createConversation(r *stdhttp.Request, in domain.CreateConversationInput) (any, error) {
	return h.messaging.CreateConversation(r.Context(), in)
}

// swagger:route POST /oasis/conversations/list Oasis oasisListConversations
// @Summary List workspace conversations
// @Tags Oasis
// @Accept json
// @Produce json
// @Param payload body domain.ListConversationsInput true "Query"
// @Success 200 {array} domain.Conversation "ok"
// @Router /oasis/conversations/list [post]
func (h *handlers) listConversations(r *stdhttp.Request, in domain.ListConversationsInput) (any, error) {
	return h.messaging.ListConversations(r.Context(), in)
}

// swagger:route POST /oasis/messages Oasis oasisSendMessage
// @Summary Send a message
// @Tags Oasis
// @Accept json
// @Produce json
// @Param payload body domain.SendMessageInput true "Message"
// @Success 200 {object} domain.Message "ok"
// @Router /oasis/messages [post]
func (h *handlers) sendMessage(r *stdhttp.Request, in domain.SendMessageInput) (any, error) {
	return h.messaging.SendMessage(r.Context(), in)
}

// swagger:route POST /oasis/messages/list Oasis oasisListMessages
// @Summary Page conversation messages newest first
// @Tags Oasis
// @Accept json
// @Produce json
// @Param payload body domain.ListMessagesInput true "Query"
// @Success 200 {array} domain.Message "ok"
// @Router /oasis/messages/list [post]
func (h *handlers) listMessages(r *stdhttp.Request, in domain.ListMessagesInput) (any, error) {
	return h.messaging.ListMessages(r.Context(), in)
}

// swagger:route POST /oasis/search Oasis oasisSearch
// @Summary Folded substring search over messages
// @Tags Oasis
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Query"
// @Success 200 {array} domain.Message "ok"
// @Router /oasis/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.messaging.SearchMessages(r.Context(), in)
}

// swagger:route POST /oasis/typing/keystroke Oasis oasisKeystroke
// @Summary Record a composer keystroke
// @Tags Oasis
// @Accept json
// @Produce json
// @Param payload body domain.TypingInput true "Composer"
// @Success 200 {object} httpkit.Envelope "ok"
// @Router /oasis/typing/keystroke [post]
func (h *handlers) keystroke(r *stdhttp.Request, in domain.TypingInput) (any, error) {
	return okAck(), h.typing.Keystroke(r.Context(), in)
}

// swagger:route POST /oasis/typing/stop Oasis oasisStopTyping
// @Summary Force-stop the typing indicator
// @Tags Oasis
// @Accept json
// @Produce json
// @Param payload body domain.TypingInput true "Composer"
// @Success 200 {object} httpkit.Envelope "ok"
// @Router /oasis/typing/stop [post]
func (h *handlers) stopTyping(r *stdhttp.Request, in domain.TypingInput) (any, error) {
	return okAck(), h.typing.StopTyping(r.Context(), in)
}

// swagger:route POST /oasis/typing/reset Oasis oasisResetTyping
// @Summary Reset the typing session
// @Tags Oasis
// @Accept json
// @Produce json
// @Param payload body domain.TypingInput true "Composer"
// @Success 200 {object} httpkit.Envelope "ok"
// @Router /oasis/typing/reset [post]
func (h *handlers) resetTyping(r *stdhttp.Request, in domain.TypingInput) (any, error) {
	return okAck(), h.typing.ResetTyping(r.Context(), in)
}

// swagger:route POST /oasis/typing/active Oasis oasisActiveTypers
// @Summary Who is typing right now
// @Tags Oasis
// @Accept json
// @Produce json
// @Param payload body domain.TypersQuery true "Query"
// @Success 200 {object} domain.TypersRow "ok"
// @Router /oasis/typing/active [post]
func (h *handlers) activeTypers(r *stdhttp.Request, in domain.TypersQuery) (any, error) {
	return h.typing.ActiveTypers(r.Context(), in)
}

func okAck() map[string]bool { return map[string]bool{"accepted": true} }
