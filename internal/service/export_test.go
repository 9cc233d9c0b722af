package service

import "time"

// SetNow overrides the service clock in tests.
func SetNow(s *SnippetService, now func() time.Time) {
	s.now = now
}
