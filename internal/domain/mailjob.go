package domain

import "time"

// MailJob is a queued outbound mail delivery.
// A job keeps the same JobID across retries; each retry is a new value built
// with WithFailure rather than a mutation, so a job read by logging or
// metrics is never changed underneath the reader.
type MailJob struct {
	JobID         string     `json:"job_id"`
	Destination   string     `json:"destination"`
	Subject       string     `json:"subject"`
	Body          string     `json:"body"`
	Attempt       int        `json:"attempt"`
	CreatedAt     time.Time  `json:"created_at"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
}

// WithFailure returns a copy of the job with the attempt counter incremented
// and the failure recorded. The receiver is left untouched.
func (j MailJob) WithFailure(at time.Time, err error) MailJob {
	next := j
	next.Attempt++
	next.LastAttemptAt = &at
	if err != nil {
		next.LastError = err.Error()
	}
	return next
}
