package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailJob_WithFailure_DoesNotMutateOriginal(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	job := MailJob{
		JobID:       "job-1",
		Destination: "user@example.com",
		Subject:     "Welcome",
		Body:        "hello",
		Attempt:     0,
		CreatedAt:   created,
	}

	failedAt := created.Add(5 * time.Second)
	next := job.WithFailure(failedAt, errors.New("smtp: connection refused"))

	// Original untouched
	assert.Equal(t, 0, job.Attempt)
	assert.Nil(t, job.LastAttemptAt)
	assert.Empty(t, job.LastError)

	// Copy carries the failure
	assert.Equal(t, 1, next.Attempt)
	require.NotNil(t, next.LastAttemptAt)
	assert.Equal(t, failedAt, *next.LastAttemptAt)
	assert.Contains(t, next.LastError, "connection refused")
	assert.Equal(t, job.JobID, next.JobID, "JobID must be stable across retries")
}

func TestMailJob_WithFailure_Chained(t *testing.T) {
	job := MailJob{JobID: "job-2", CreatedAt: time.Now()}

	for i := 1; i <= 5; i++ {
		job = job.WithFailure(time.Now(), errors.New("delivery failed"))
		assert.Equal(t, i, job.Attempt)
	}
}

func TestAttendanceDay_TruncatesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("KST", 9*3600)
	at := time.Date(2026, 3, 1, 1, 30, 0, 0, loc) // 2026-02-28T16:30Z

	day := AttendanceDay(at)

	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), day)
}

func TestEntryType_Valid(t *testing.T) {
	assert.True(t, EntryDailyLogin.Valid())
	assert.True(t, EntryPurchase.Valid())
	assert.False(t, EntryType("BOGUS").Valid())
}
