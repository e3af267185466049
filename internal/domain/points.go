package domain

import "time"

// EntryType categorizes a ledger entry
type EntryType string

// Ledger entry types
const (
	EntryDailyLogin   EntryType = "DAILY_LOGIN"
	EntryStreakBonus  EntryType = "STREAK_BONUS"
	EntryPostWrite    EntryType = "POST_WRITE"
	EntryCommentWrite EntryType = "COMMENT_WRITE"
	EntryPurchase     EntryType = "PURCHASE"
	EntryPenalty      EntryType = "PENALTY"
	EntryAdminGrant   EntryType = "ADMIN_GRANT"
)

// Valid reports whether t is a known entry type
func (t EntryType) Valid() bool {
	switch t {
	case EntryDailyLogin, EntryStreakBonus, EntryPostWrite, EntryCommentWrite,
		EntryPurchase, EntryPenalty, EntryAdminGrant:
		return true
	}
	return false
}

// LedgerEntry is a single append-only point transaction.
// Entries are never edited after creation; corrections are new offsetting entries.
// A user's balance is always the sum of Amount over their entries.
type LedgerEntry struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Type        EntryType `json:"type"`
	Amount      int       `json:"amount"` // positive = credit, negative = debit
	Description string    `json:"description"`
	ReferenceID string    `json:"reference_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsCredit reports whether the entry adds points
func (e LedgerEntry) IsCredit() bool {
	return e.Amount > 0
}

// HistoryFilter selects which ledger entries a history query returns
type HistoryFilter string

const (
	HistoryAll     HistoryFilter = "all"
	HistoryCredits HistoryFilter = "credits"
	HistoryDebits  HistoryFilter = "debits"
)

// Valid reports whether f is a known history filter
func (f HistoryFilter) Valid() bool {
	switch f {
	case HistoryAll, HistoryCredits, HistoryDebits:
		return true
	}
	return false
}
