package store

import (
	"adrata/internal/platform/logger"
)

// Option mutates the Store during Open
type Option func(*Store) error

// WithLogger sets the logger the subclients inherit
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
