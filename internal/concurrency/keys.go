package concurrency

import "strings"

// Lock key operations. Keys follow the "{operation}:{entityId}" convention;
// building them through these helpers keeps the namespace collision-free.
const (
	OpAttendance = "attendance"
	OpPurchase   = "purchase"
	OpEquip      = "equip"
)

// AttendanceKey is the lock key guarding a user's daily check-in
func AttendanceKey(userID string) string {
	return lockKey(OpAttendance, userID)
}

// PurchaseKey is the lock key guarding a user's shop purchases
func PurchaseKey(userID string) string {
	return lockKey(OpPurchase, userID)
}

// EquipKey is the lock key guarding a user's equip/unequip operations
func EquipKey(userID string) string {
	return lockKey(OpEquip, userID)
}

func lockKey(operation, entityID string) string {
	return operation + ":" + entityID
}

// keyOperation extracts the operation prefix for metric labels
func keyOperation(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
