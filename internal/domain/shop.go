package domain

import "time"

// Item is a purchasable shop catalog entry
type Item struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"` // e.g. "icon", "badge"
	Price       int       `json:"price"`
	Listed      bool      `json:"listed"`
	CreatedAt   time.Time `json:"created_at"`
}

// OwnedItem records a completed purchase.
// At most one row exists per (UserID, ItemID). Within one category at most
// one owned item per user has Equipped set; the shop service maintains that
// invariant under the per-user equip lock.
type OwnedItem struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"user_id"`
	ItemID        int       `json:"item_id"`
	PurchasePrice int       `json:"purchase_price"`
	Equipped      bool      `json:"equipped"`
	PurchasedAt   time.Time `json:"purchased_at"`
}
