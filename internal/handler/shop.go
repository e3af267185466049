package handler

import (
	"net/http"
	"strconv"

	"github.com/devjjun/commu/internal/logger"
	"github.com/devjjun/commu/internal/shop"
)

// CatalogResponse lists the purchasable items
type CatalogResponse struct {
	Items interface{} `json:"items"`
}

// PurchaseRequest asks to buy a catalog item for a user.
type PurchaseRequest struct {
	UserID string `json:"user_id" validate:"required"`
	ItemID int    `json:"item_id" validate:"required,gt=0"`
}

// EquipRequest asks to equip or unequip an owned item.
type EquipRequest struct {
	UserID string `json:"user_id" validate:"required"`
	ItemID int    `json:"item_id" validate:"required,gt=0"`
}

// HandleGetCatalog returns the listed items.
// GET /api/v1/shop/catalog
func HandleGetCatalog(shopService shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := shopService.Catalog(r.Context())
		if err != nil {
			respondServiceError(w, r, "Get catalog", err)
			return
		}

		respondJSON(w, http.StatusOK, CatalogResponse{Items: items})
	}
}

// HandleGetItem returns a single catalog item.
// GET /api/v1/shop/item?item_id=...
func HandleGetItem(shopService shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := GetQueryParam(r, w, "item_id")
		if !ok {
			return
		}
		itemID, err := strconv.Atoi(raw)
		if err != nil || itemID <= 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidItemID)
			return
		}

		item, err := shopService.GetItem(r.Context(), itemID)
		if err != nil {
			respondServiceError(w, r, "Get item", err)
			return
		}

		respondJSON(w, http.StatusOK, item)
	}
}

// HandleGetInventory returns everything the user owns.
// GET /api/v1/shop/inventory?user_id=...
func HandleGetInventory(shopService shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		owned, err := shopService.Inventory(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get inventory", err)
			return
		}

		respondJSON(w, http.StatusOK, owned)
	}
}

// HandlePurchase buys an item: the debit and the ownership grant land
// atomically, and repeat purchases of the same item are rejected.
// POST /api/v1/shop/purchase
func HandlePurchase(shopService shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase item"); err != nil {
			return
		}

		result, err := shopService.Purchase(r.Context(), req.UserID, req.ItemID)
		if err != nil {
			respondServiceError(w, r, "Purchase item", err)
			return
		}

		log.Info("Purchase completed",
			"user_id", req.UserID,
			"item_id", req.ItemID,
			"price_paid", result.PricePaid,
			"new_balance", result.NewBalance)
		respondJSON(w, http.StatusCreated, result)
	}
}

// HandleEquip equips an owned item, displacing whatever was equipped in the
// same category.
// POST /api/v1/shop/equip
func HandleEquip(shopService shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EquipRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Equip item"); err != nil {
			return
		}

		if err := shopService.Equip(r.Context(), req.UserID, req.ItemID); err != nil {
			respondServiceError(w, r, "Equip item", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemEquippedSuccess})
	}
}

// HandleUnequip clears the equipped flag on an owned item.
// POST /api/v1/shop/unequip
func HandleUnequip(shopService shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EquipRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unequip item"); err != nil {
			return
		}

		if err := shopService.Unequip(r.Context(), req.UserID, req.ItemID); err != nil {
			respondServiceError(w, r, "Unequip item", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemUnequippedSuccess})
	}
}
