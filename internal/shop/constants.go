package shop

import "time"

const (
	// ItemCacheSize bounds the catalog item cache
	ItemCacheSize = 256
	// ItemCacheTTL keeps cached items fresh enough for display paths
	ItemCacheTTL = 30 * time.Second
)

// Log messages
const (
	LogMsgPurchaseComplete = "Purchase complete"
	LogMsgItemEquipped     = "Item equipped"
)
