package memrepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/repository"
)

// ledgerRepo implements repository.Ledger
type ledgerRepo struct {
	s *state
}

func (r *ledgerRepo) InsertEntry(_ context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inserted := r.s.insertEntryLocked(*entry)
	return &inserted, nil
}

func (r *ledgerRepo) SumAmounts(_ context.Context, userID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sumLocked(userID), nil
}

func (r *ledgerRepo) ListEntries(_ context.Context, userID string, filter domain.HistoryFilter, offset, limit int) ([]domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.listEntriesLocked(userID, filter, offset, limit), nil
}

func (r *ledgerRepo) CountEntriesByTypeAndDay(_ context.Context, userID string, entryType domain.EntryType, day string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, e := range r.s.entries {
		if e.UserID == userID && e.Type == entryType && e.CreatedAt.UTC().Format(dayFormat) == day {
			count++
		}
	}
	return count, nil
}

func (r *ledgerRepo) BeginTx(_ context.Context) (repository.LedgerTx, error) {
	return beginTx(r.s), nil
}

// attendanceRepo implements repository.Attendance
type attendanceRepo struct {
	s *state
}

func (r *attendanceRepo) GetRecord(_ context.Context, userID string, date time.Time) (*domain.AttendanceRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.attendance[userID][domain.AttendanceDay(date).Format(dayFormat)]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (r *attendanceRepo) InsertRecord(_ context.Context, userID string, date time.Time) (*domain.AttendanceRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	day := domain.AttendanceDay(date).Format(dayFormat)
	if _, ok := r.s.attendance[userID][day]; ok {
		return nil, fmt.Errorf("%w: attendance for %s on %s", domain.ErrAlreadyExists, userID, day)
	}
	rec := r.s.insertAttendanceLocked(userID, date)
	return &rec, nil
}

func (r *attendanceRepo) ListRecent(_ context.Context, userID string, limit int) ([]domain.AttendanceRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.AttendanceRecord
	for _, rec := range r.s.attendance[userID] {
		out = append(out, rec)
	}
	return sortRecentRecords(out, limit), nil
}

func (r *attendanceRepo) BeginTx(_ context.Context) (repository.AttendanceTx, error) {
	return beginTx(r.s), nil
}

func sortRecentRecords(records []domain.AttendanceRecord, limit int) []domain.AttendanceRecord {
	sort.Slice(records, func(i, j int) bool { return records[i].Date.After(records[j].Date) })
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}

// shopRepo implements repository.Shop
type shopRepo struct {
	s *state
}

func (r *shopRepo) GetItemByID(_ context.Context, itemID int) (*domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item, ok := r.s.items[itemID]; ok {
		return &item, nil
	}
	return nil, nil
}

func (r *shopRepo) ListItems(_ context.Context) ([]domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Item, 0, len(r.s.items))
	for _, item := range r.s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *shopRepo) GetOwnedItem(_ context.Context, userID string, itemID int) (*domain.OwnedItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return findOwnedLocked(r.s, userID, itemID), nil
}

func (r *shopRepo) ListOwnedItems(_ context.Context, userID string) ([]domain.OwnedItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.OwnedItem
	for _, o := range r.s.owned {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *shopRepo) BeginTx(_ context.Context) (repository.ShopTx, error) {
	return beginTx(r.s), nil
}

// userRepo implements repository.User
type userRepo struct {
	s *state
}

func (r *userRepo) GetByID(_ context.Context, userID string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[userID]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("%w: username %s", domain.ErrAlreadyExists, user.Username)
		}
	}
	stored := *user
	r.s.users[stored.ID] = stored
	return &stored, nil
}

func findOwnedLocked(s *state, userID string, itemID int) *domain.OwnedItem {
	for i := range s.owned {
		if s.owned[i].UserID == userID && s.owned[i].ItemID == itemID {
			o := s.owned[i]
			return &o
		}
	}
	return nil
}

// tx implements repository.ShopTx and repository.AttendanceTx (and therefore
// repository.LedgerTx). It holds the store mutex for its whole lifetime, so
// concurrent transactions serialize exactly like database transactions on the
// same rows.
type tx struct {
	s    *state
	done bool

	stagedEntries []domain.LedgerEntry
	stagedOwned   []domain.OwnedItem
	stagedEquips  []equipChange
	stagedRecords []domain.AttendanceRecord
}

type equipChange struct {
	userID   string
	category string // unequip whole category when itemID == 0
	itemID   int
	equipped bool
}

func beginTx(s *state) *tx {
	s.mu.Lock()
	return &tx{s: s}
}

func (t *tx) Commit(_ context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.done = true

	for _, e := range t.stagedEntries {
		t.s.insertEntryLocked(e)
	}
	for _, o := range t.stagedOwned {
		o.ID = t.s.nextOwnedID
		t.s.nextOwnedID++
		t.s.owned = append(t.s.owned, o)
	}
	for _, c := range t.stagedEquips {
		t.applyEquipLocked(c)
	}
	for _, rec := range t.stagedRecords {
		t.s.insertAttendanceLocked(rec.UserID, rec.Date)
	}

	t.s.mu.Unlock()
	return nil
}

func (t *tx) Rollback(_ context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.done = true
	t.s.mu.Unlock()
	return nil
}

func (t *tx) applyEquipLocked(c equipChange) {
	for i := range t.s.owned {
		o := &t.s.owned[i]
		if o.UserID != c.userID {
			continue
		}
		if c.itemID == 0 {
			if item, ok := t.s.items[o.ItemID]; ok && item.Category == c.category {
				o.Equipped = false
			}
			continue
		}
		if o.ItemID == c.itemID {
			o.Equipped = c.equipped
		}
	}
}

func (t *tx) InsertEntry(_ context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	staged := *entry
	staged.ID = t.s.nextEntryID + int64(len(t.stagedEntries))
	t.stagedEntries = append(t.stagedEntries, staged)
	return &staged, nil
}

func (t *tx) SumAmounts(_ context.Context, userID string) (int, error) {
	total := t.s.sumLocked(userID)
	for _, e := range t.stagedEntries {
		if e.UserID == userID {
			total += e.Amount
		}
	}
	return total, nil
}

func (t *tx) GetOwnedItem(_ context.Context, userID string, itemID int) (*domain.OwnedItem, error) {
	if o := findOwnedLocked(t.s, userID, itemID); o != nil {
		return o, nil
	}
	for _, o := range t.stagedOwned {
		if o.UserID == userID && o.ItemID == itemID {
			staged := o
			return &staged, nil
		}
	}
	return nil, nil
}

func (t *tx) InsertOwnedItem(_ context.Context, owned *domain.OwnedItem) (*domain.OwnedItem, error) {
	if existing, _ := t.GetOwnedItem(context.Background(), owned.UserID, owned.ItemID); existing != nil {
		return nil, fmt.Errorf("%w: item %d", domain.ErrAlreadyExists, owned.ItemID)
	}
	staged := *owned
	if staged.PurchasedAt.IsZero() {
		staged.PurchasedAt = time.Now()
	}
	t.stagedOwned = append(t.stagedOwned, staged)
	return &staged, nil
}

func (t *tx) InsertRecord(_ context.Context, userID string, date time.Time) (*domain.AttendanceRecord, error) {
	day := domain.AttendanceDay(date)
	dayKey := day.Format(dayFormat)
	if _, ok := t.s.attendance[userID][dayKey]; ok {
		return nil, fmt.Errorf("%w: attendance for %s on %s", domain.ErrAlreadyExists, userID, dayKey)
	}
	for _, rec := range t.stagedRecords {
		if rec.UserID == userID && rec.Date.Format(dayFormat) == dayKey {
			return nil, fmt.Errorf("%w: attendance for %s on %s", domain.ErrAlreadyExists, userID, dayKey)
		}
	}
	staged := domain.AttendanceRecord{
		ID:        t.s.nextAttendID + int64(len(t.stagedRecords)),
		UserID:    userID,
		Date:      day,
		CreatedAt: time.Now(),
	}
	t.stagedRecords = append(t.stagedRecords, staged)
	return &staged, nil
}

func (t *tx) ListRecent(_ context.Context, userID string, limit int) ([]domain.AttendanceRecord, error) {
	var out []domain.AttendanceRecord
	for _, rec := range t.s.attendance[userID] {
		out = append(out, rec)
	}
	for _, rec := range t.stagedRecords {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return sortRecentRecords(out, limit), nil
}

func (t *tx) UnequipCategory(_ context.Context, userID, category string) error {
	t.stagedEquips = append(t.stagedEquips, equipChange{userID: userID, category: category})
	return nil
}

func (t *tx) SetEquipped(_ context.Context, userID string, itemID int, equipped bool) error {
	t.stagedEquips = append(t.stagedEquips, equipChange{userID: userID, itemID: itemID, equipped: equipped})
	return nil
}
