package notify

// Mail templates
const (
	SubjectWelcome = "Welcome to commu"
	BodyWelcome    = "Hi %s,\n\nYour account is ready. Check in daily to earn points.\n"

	SubjectReceipt = "Your purchase receipt"
	BodyReceipt    = "Hi %s,\n\nYou bought %q for %d points.\n"
)

// Log messages
const (
	LogMsgNotifyQueued        = "Notification queued"
	LogMsgNotifyEnqueueFailed = "Failed to queue notification"
	LogMsgNotifyLookupFailed  = "Failed to look up notification recipient"
)
