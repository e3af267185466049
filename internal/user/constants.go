package user

// Log messages
const (
	LogMsgUserRegistered = "User registered"
)
