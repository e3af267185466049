package mail

// Log messages
const (
	LogMsgMailSent = "Mail sent"
)
