package attendance

// DateRefFormat is the reference ID format for attendance ledger entries
const DateRefFormat = "2006-01-02"

// Log messages
const (
	LogMsgCheckInComplete  = "Attendance check-in complete"
	LogMsgAlreadyCheckedIn = "Attendance check-in repeated, no-op"
)
