package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/repository"
)

// ShopRepository implements the shop repository for PostgreSQL
type ShopRepository struct {
	db *pgxpool.Pool
}

// NewShopRepository creates a new ShopRepository
func NewShopRepository(db *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{db: db}
}

// ShopTx implements repository.ShopTx. It carries the ledger operations of
// the same transaction so a purchase debit and its ownership insert commit
// together.
type ShopTx struct {
	LedgerTx
}

// BeginTx starts a new transaction
func (r *ShopRepository) BeginTx(ctx context.Context) (repository.ShopTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &ShopTx{LedgerTx: LedgerTx{tx: tx}}, nil
}

func (r *ShopRepository) GetItemByID(ctx context.Context, itemID int) (*domain.Item, error) {
	return getItemByID(ctx, r.db, itemID)
}

func (r *ShopRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT item_id, item_name, item_description, category, price, listed, created_at
		 FROM items ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Category, &item.Price, &item.Listed, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	return items, nil
}

func (r *ShopRepository) GetOwnedItem(ctx context.Context, userID string, itemID int) (*domain.OwnedItem, error) {
	return getOwnedItem(ctx, r.db, userID, itemID)
}

func (t *ShopTx) GetOwnedItem(ctx context.Context, userID string, itemID int) (*domain.OwnedItem, error) {
	return getOwnedItem(ctx, t.tx, userID, itemID)
}

func (r *ShopRepository) ListOwnedItems(ctx context.Context, userID string) ([]domain.OwnedItem, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT owned_item_id, item_id, purchase_price, equipped, purchased_at
		 FROM owned_items WHERE user_id = $1 ORDER BY purchased_at`,
		userUUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOwnedItems, err)
	}
	defer rows.Close()

	var owned []domain.OwnedItem
	for rows.Next() {
		o := domain.OwnedItem{UserID: userID}
		if err := rows.Scan(&o.ID, &o.ItemID, &o.PurchasePrice, &o.Equipped, &o.PurchasedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOwnedItems, err)
		}
		owned = append(owned, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOwnedItems, err)
	}
	return owned, nil
}

func (t *ShopTx) InsertOwnedItem(ctx context.Context, owned *domain.OwnedItem) (*domain.OwnedItem, error) {
	userUUID, err := parseUserUUID(owned.UserID)
	if err != nil {
		return nil, err
	}

	inserted := *owned
	row := t.tx.QueryRow(ctx,
		`INSERT INTO owned_items (user_id, item_id, purchase_price, equipped, purchased_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING owned_item_id, purchased_at`,
		userUUID, owned.ItemID, owned.PurchasePrice, owned.Equipped, owned.PurchasedAt)
	if err := row.Scan(&inserted.ID, &inserted.PurchasedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: item %d", domain.ErrAlreadyExists, owned.ItemID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertOwnedItem, err)
	}
	return &inserted, nil
}

func (t *ShopTx) UnequipCategory(ctx context.Context, userID, category string) error {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	_, err = t.tx.Exec(ctx,
		`UPDATE owned_items SET equipped = FALSE
		 WHERE user_id = $1 AND equipped
		   AND item_id IN (SELECT item_id FROM items WHERE category = $2)`,
		userUUID, category)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateEquipped, err)
	}
	return nil
}

func (t *ShopTx) SetEquipped(ctx context.Context, userID string, itemID int, equipped bool) error {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx,
		`UPDATE owned_items SET equipped = $3 WHERE user_id = $1 AND item_id = $2`,
		userUUID, itemID, equipped)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateEquipped, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %d", domain.ErrNotOwned, itemID)
	}
	return nil
}

func getItemByID(ctx context.Context, q queryer, itemID int) (*domain.Item, error) {
	var item domain.Item
	row := q.QueryRow(ctx,
		`SELECT item_id, item_name, item_description, category, price, listed, created_at
		 FROM items WHERE item_id = $1`, itemID)
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Category, &item.Price, &item.Listed, &item.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItem, err)
	}
	return &item, nil
}

func getOwnedItem(ctx context.Context, q queryer, userID string, itemID int) (*domain.OwnedItem, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	o := domain.OwnedItem{UserID: userID, ItemID: itemID}
	row := q.QueryRow(ctx,
		`SELECT owned_item_id, purchase_price, equipped, purchased_at
		 FROM owned_items WHERE user_id = $1 AND item_id = $2`,
		userUUID, itemID)
	if err := row.Scan(&o.ID, &o.PurchasePrice, &o.Equipped, &o.PurchasedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetOwnedItem, err)
	}
	return &o, nil
}
