package domain

import "time"

// AttendanceRecord marks a user's daily check-in.
// At most one record exists per (UserID, Date); the row's existence is the
// dedup check for the daily reward.
type AttendanceRecord struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Date      time.Time `json:"date"` // calendar day, truncated to midnight UTC
	CreatedAt time.Time `json:"created_at"`
}

// AttendanceDay truncates t to the calendar day used for attendance dedup
func AttendanceDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
