package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidItemID     = "Invalid item_id"
	ErrMsgInvalidPage       = "Invalid page parameter"
	ErrMsgAmountExceedsMax  = "amount exceeds maximum (10000)"

	// Operation error messages
	ErrMsgRegisterUserFailed  = "Failed to register user"
	ErrMsgGetProfileFailed    = "Failed to get profile"
	ErrMsgCheckInFailed       = "Failed to record check-in"
	ErrMsgGetBalanceFailed    = "Failed to get balance"
	ErrMsgGetHistoryFailed    = "Failed to get point history"
	ErrMsgActivityFailed      = "Failed to record activity reward"
	ErrMsgGrantFailed         = "Failed to grant points"
	ErrMsgPenaltyFailed       = "Failed to apply penalty"
	ErrMsgGetCatalogFailed    = "Failed to get catalog"
	ErrMsgGetInventoryFailed  = "Failed to get inventory"
	ErrMsgPurchaseFailed      = "Failed to purchase item"
	ErrMsgEquipFailed         = "Failed to equip item"
	ErrMsgUnequipFailed       = "Failed to unequip item"
	ErrMsgListDeadLettersFail = "Failed to list dead letters"
)

// Success messages for API responses
const (
	MsgItemEquippedSuccess   = "Item equipped"
	MsgItemUnequippedSuccess = "Item unequipped"
)
