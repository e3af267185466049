package ledger

// History pagination bounds
const (
	DefaultHistoryPageSize = 20
	MaxHistoryPageSize     = 100
)

// Log messages
const (
	LogMsgPointsAwarded   = "Points awarded"
	LogMsgPointsSpent     = "Points spent"
	LogMsgPointsPenalized = "Penalty applied"
	LogMsgDailyCapReached = "Daily award cap reached, skipping credit"
)
