package module

import (
	"time"

	dom "adrata/internal/services/oasis/domain"
)

// Ports holds the ports exposed by the oasis module
type Ports struct {
	Messaging dom.MessagingPort
	Typing    dom.TypingPort

	// SweepTyping evicts idle typing sessions; main drives it on a ticker
	SweepTyping func(idle time.Duration) int
}
