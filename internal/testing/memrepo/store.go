// Package memrepo provides functional in-memory repository implementations.
// Unlike the mock.Mock fakes used for error-path tests, these carry real
// state and real uniqueness constraints, which the concurrency tests need to
// observe double-spend and double-award behavior.
package memrepo

import (
	"sort"
	"sync"
	"time"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/repository"
)

type state struct {
	mu sync.Mutex

	entries     []domain.LedgerEntry
	nextEntryID int64

	// userID -> day (2006-01-02) -> record
	attendance   map[string]map[string]domain.AttendanceRecord
	nextAttendID int64

	items       map[int]domain.Item
	owned       []domain.OwnedItem
	nextOwnedID int64

	users map[string]domain.User
}

// Store is an in-memory stand-in for the Postgres repositories. Transactions
// hold the store mutex from BeginTx until Commit or Rollback, which gives the
// same serialization the database provides.
type Store struct {
	s *state
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{s: &state{
		nextEntryID:  1,
		nextAttendID: 1,
		nextOwnedID:  1,
		attendance:   make(map[string]map[string]domain.AttendanceRecord),
		items:        make(map[int]domain.Item),
		users:        make(map[string]domain.User),
	}}
}

// Ledger returns a repository.Ledger view of the store
func (st *Store) Ledger() repository.Ledger { return &ledgerRepo{s: st.s} }

// Attendance returns a repository.Attendance view of the store
func (st *Store) Attendance() repository.Attendance { return &attendanceRepo{s: st.s} }

// Shop returns a repository.Shop view of the store
func (st *Store) Shop() repository.Shop { return &shopRepo{s: st.s} }

// Users returns a repository.User view of the store
func (st *Store) Users() repository.User { return &userRepo{s: st.s} }

// AddItem seeds a catalog item
func (st *Store) AddItem(item domain.Item) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.items[item.ID] = item
}

// AddUser seeds a user
func (st *Store) AddUser(user domain.User) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.users[user.ID] = user
}

// Entries returns a snapshot of all ledger entries
func (st *Store) Entries() []domain.LedgerEntry {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	out := make([]domain.LedgerEntry, len(st.s.entries))
	copy(out, st.s.entries)
	return out
}

// EntriesOfType returns a snapshot of a user's entries of one type
func (st *Store) EntriesOfType(userID string, entryType domain.EntryType) []domain.LedgerEntry {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	var out []domain.LedgerEntry
	for _, e := range st.s.entries {
		if e.UserID == userID && e.Type == entryType {
			out = append(out, e)
		}
	}
	return out
}

// OwnedItems returns a snapshot of a user's owned items
func (st *Store) OwnedItems(userID string) []domain.OwnedItem {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	var out []domain.OwnedItem
	for _, o := range st.s.owned {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

// AttendanceCount returns how many records a user has
func (st *Store) AttendanceCount(userID string) int {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	return len(st.s.attendance[userID])
}

// SeedAttendance inserts a record for the given day without checks
func (st *Store) SeedAttendance(userID string, date time.Time) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.insertAttendanceLocked(userID, date)
}

func (s *state) insertAttendanceLocked(userID string, date time.Time) domain.AttendanceRecord {
	day := domain.AttendanceDay(date)
	rec := domain.AttendanceRecord{
		ID:        s.nextAttendID,
		UserID:    userID,
		Date:      day,
		CreatedAt: time.Now(),
	}
	s.nextAttendID++
	if s.attendance[userID] == nil {
		s.attendance[userID] = make(map[string]domain.AttendanceRecord)
	}
	s.attendance[userID][day.Format(dayFormat)] = rec
	return rec
}

func (s *state) sumLocked(userID string) int {
	total := 0
	for _, e := range s.entries {
		if e.UserID == userID {
			total += e.Amount
		}
	}
	return total
}

func (s *state) insertEntryLocked(entry domain.LedgerEntry) domain.LedgerEntry {
	entry.ID = s.nextEntryID
	s.nextEntryID++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries = append(s.entries, entry)
	return entry
}

func (s *state) listEntriesLocked(userID string, filter domain.HistoryFilter, offset, limit int) []domain.LedgerEntry {
	var matched []domain.LedgerEntry
	for _, e := range s.entries {
		if e.UserID != userID {
			continue
		}
		switch filter {
		case domain.HistoryCredits:
			if e.Amount <= 0 {
				continue
			}
		case domain.HistoryDebits:
			if e.Amount >= 0 {
				continue
			}
		}
		matched = append(matched, e)
	}
	// Newest first, matching the SQL ORDER BY id DESC
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	if offset >= len(matched) {
		return nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end]
}

const dayFormat = "2006-01-02"
