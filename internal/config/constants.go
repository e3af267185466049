package config

// Default configuration values
const (
	DefaultPort = 8080

	// Lock service defaults
	DefaultLockWaitSeconds  = 5
	DefaultLockLeaseSeconds = 10

	// Mail queue defaults. The lease must comfortably outlast a slow SMTP
	// delivery or an in-flight job becomes visible to a second worker.
	DefaultQueuePollIntervalMs = 1000
	DefaultMailLeaseSeconds    = 60
	DefaultMaxDeliveryAttempts = 5

	// Attendance defaults
	DefaultAttendanceBaseAmount = 10
	DefaultStreakBonusAmount    = 50
	DefaultStreakLengthDays     = 7

	// Activity reward defaults
	DefaultPostWriteAmount    = 5
	DefaultCommentWriteAmount = 2
	DefaultActivityDailyCap   = 20
)
