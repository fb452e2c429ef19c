package contactform

import "time"

// SetClock replaces the clock used for session idle tracking.
func (s *Sessions) SetClock(now func() time.Time) {
	s.now = now
}

var NewStateView = newStateView
var SubmitRejection = submitRejection
