package notify

// Sender delivers a notification to a user's email address. Failures may be
// transient; callers treat them as a skipped delivery and rely on requeueing.
type Sender interface {
	Send(to, subject, body string) error
}
