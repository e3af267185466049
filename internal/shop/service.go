package shop

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/devjjun/commu/internal/concurrency"
	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/ledger"
	"github.com/devjjun/commu/internal/logger"
	"github.com/devjjun/commu/internal/repository"
)

// PurchaseResult is the outcome of a completed purchase
type PurchaseResult struct {
	Item        domain.Item `json:"item"`
	PricePaid   int         `json:"price_paid"`
	NewBalance  int         `json:"new_balance"`
	PurchasedAt time.Time   `json:"purchased_at"`
}

// ReceiptSender delivers a purchase receipt after a successful purchase.
// Delivery is best effort and must not fail the purchase itself.
type ReceiptSender interface {
	SendReceipt(ctx context.Context, userID string, item domain.Item, pricePaid int)
}

// Service defines the interface for shop operations
type Service interface {
	// Catalog returns listed items only
	Catalog(ctx context.Context) ([]domain.Item, error)

	// GetItem returns any catalog item, listed or not
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)

	// Inventory returns everything the user owns
	Inventory(ctx context.Context, userID string) ([]domain.OwnedItem, error)

	// Purchase debits the item price and grants ownership atomically
	Purchase(ctx context.Context, userID string, itemID int) (*PurchaseResult, error)

	// Equip marks an owned item equipped, unequipping the rest of its category
	Equip(ctx context.Context, userID string, itemID int) error

	// Unequip clears the equipped flag on an owned item
	Unequip(ctx context.Context, userID string, itemID int) error
}

type service struct {
	repo      repository.Shop
	users     repository.User
	ledgerSvc ledger.Service
	locks     *concurrency.LockService
	receipts  ReceiptSender
	itemCache *expirable.LRU[int, domain.Item]
	now       func() time.Time
}

// NewService creates a new shop service. receipts may be nil when receipt
// delivery is not wired.
func NewService(repo repository.Shop, users repository.User, ledgerSvc ledger.Service, locks *concurrency.LockService, receipts ReceiptSender) Service {
	return &service{
		repo:      repo,
		users:     users,
		ledgerSvc: ledgerSvc,
		locks:     locks,
		receipts:  receipts,
		itemCache: expirable.NewLRU[int, domain.Item](ItemCacheSize, nil, ItemCacheTTL),
		now:       time.Now,
	}
}

func (s *service) Catalog(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	listed := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item.Listed {
			listed = append(listed, item)
		}
	}
	return listed, nil
}

// GetItem serves catalog rows through a short-lived cache. Prices change
// rarely; the purchase path still re-reads the item under the lock.
func (s *service) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	if item, ok := s.itemCache.Get(itemID); ok {
		return &item, nil
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %d", domain.ErrItemNotFound, itemID)
	}

	s.itemCache.Add(itemID, *item)
	return item, nil
}

func (s *service) Inventory(ctx context.Context, userID string) ([]domain.OwnedItem, error) {
	owned, err := s.repo.ListOwnedItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned items: %w", err)
	}
	return owned, nil
}

// Purchase runs the check-debit-grant sequence under the user's purchase
// lock, with the debit and the ownership insert sharing one transaction.
// Two concurrent purchases from the same user therefore see each other's
// debits, and a purchase that fails at any step charges nothing.
func (s *service) Purchase(ctx context.Context, userID string, itemID int) (*PurchaseResult, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	var result *PurchaseResult
	err = s.locks.WithLock(ctx, concurrency.PurchaseKey(userID), func(ctx context.Context) error {
		result, err = s.purchaseLocked(ctx, userID, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgPurchaseComplete, "userID", userID, "itemID", itemID, "price", result.PricePaid, "balance", result.NewBalance)

	if s.receipts != nil {
		s.receipts.SendReceipt(ctx, userID, result.Item, result.PricePaid)
	}
	return result, nil
}

func (s *service) purchaseLocked(ctx context.Context, userID string, itemID int) (*PurchaseResult, error) {
	// Re-read inside the lock so a just-delisted or repriced item is seen
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %d", domain.ErrItemNotFound, itemID)
	}
	if !item.Listed {
		return nil, fmt.Errorf("%w: item %d is not listed", domain.ErrItemUnavailable, itemID)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	existing, err := tx.GetOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to check ownership: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: item %d", domain.ErrAlreadyOwned, itemID)
	}

	refID := purchaseReference(itemID)
	if _, err := s.ledgerSvc.SpendWithTx(ctx, tx, userID, item.Price, fmt.Sprintf("purchase: %s", item.Name), refID); err != nil {
		return nil, err
	}

	purchasedAt := s.now()
	if _, err := tx.InsertOwnedItem(ctx, &domain.OwnedItem{
		UserID:        userID,
		ItemID:        itemID,
		PurchasePrice: item.Price,
		PurchasedAt:   purchasedAt,
	}); err != nil {
		// The unique (user_id, item_id) index backs up the lock
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: item %d", domain.ErrAlreadyOwned, itemID)
		}
		return nil, fmt.Errorf("failed to insert owned item: %w", err)
	}

	balance, err := tx.SumAmounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &PurchaseResult{
		Item:        *item,
		PricePaid:   item.Price,
		NewBalance:  balance,
		PurchasedAt: purchasedAt,
	}, nil
}

// Equip marks the item equipped under the user's equip lock, clearing any
// previously equipped item of the same category in the same transaction.
func (s *service) Equip(ctx context.Context, userID string, itemID int) error {
	return s.locks.WithLock(ctx, concurrency.EquipKey(userID), func(ctx context.Context) error {
		owned, err := s.repo.GetOwnedItem(ctx, userID, itemID)
		if err != nil {
			return fmt.Errorf("failed to check ownership: %w", err)
		}
		if owned == nil {
			return fmt.Errorf("%w: item %d", domain.ErrNotOwned, itemID)
		}

		item, err := s.repo.GetItemByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("failed to get item: %w", err)
		}
		if item == nil {
			return fmt.Errorf("%w: item %d", domain.ErrItemNotFound, itemID)
		}

		tx, err := s.repo.BeginTx(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer repository.SafeRollback(ctx, tx)

		if err := tx.UnequipCategory(ctx, userID, item.Category); err != nil {
			return fmt.Errorf("failed to unequip category: %w", err)
		}
		if err := tx.SetEquipped(ctx, userID, itemID, true); err != nil {
			return fmt.Errorf("failed to equip item: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		logger.FromContext(ctx).Info(LogMsgItemEquipped, "userID", userID, "itemID", itemID, "category", item.Category)
		return nil
	})
}

func (s *service) Unequip(ctx context.Context, userID string, itemID int) error {
	return s.locks.WithLock(ctx, concurrency.EquipKey(userID), func(ctx context.Context) error {
		owned, err := s.repo.GetOwnedItem(ctx, userID, itemID)
		if err != nil {
			return fmt.Errorf("failed to check ownership: %w", err)
		}
		if owned == nil {
			return fmt.Errorf("%w: item %d", domain.ErrNotOwned, itemID)
		}
		if !owned.Equipped {
			return nil
		}

		tx, err := s.repo.BeginTx(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer repository.SafeRollback(ctx, tx)

		if err := tx.SetEquipped(ctx, userID, itemID, false); err != nil {
			return fmt.Errorf("failed to unequip item: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
}

func purchaseReference(itemID int) string {
	return "item:" + strconv.Itoa(itemID)
}
