package repository

import (
	"context"

	"github.com/devjjun/commu/internal/domain"
)

// Shop defines the data access interface for the item catalog and ownership
type Shop interface {
	GetItemByID(ctx context.Context, itemID int) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetOwnedItem(ctx context.Context, userID string, itemID int) (*domain.OwnedItem, error)
	ListOwnedItems(ctx context.Context, userID string) ([]domain.OwnedItem, error)
	BeginTx(ctx context.Context) (ShopTx, error)
}

// ShopTx groups the operations of a purchase or equip flow into one
// transaction. It embeds LedgerTx so the point debit and the ownership
// insert commit or roll back together.
type ShopTx interface {
	LedgerTx
	GetOwnedItem(ctx context.Context, userID string, itemID int) (*domain.OwnedItem, error)
	InsertOwnedItem(ctx context.Context, owned *domain.OwnedItem) (*domain.OwnedItem, error)
	UnequipCategory(ctx context.Context, userID, category string) error
	SetEquipped(ctx context.Context, userID string, itemID int, equipped bool) error
}
