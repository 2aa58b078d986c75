package enum

// BulkOperationType describes the kind of multi-row mutation a bulk marker
// is guarding
type BulkOperationType string

const (
	BulkOperationDelete      BulkOperationType = "bulk_delete"
	BulkOperationImport      BulkOperationType = "bulk_import"
	BulkOperationRateUpdate  BulkOperationType = "rate_update"
	BulkOperationPriceUpdate BulkOperationType = "price_update"
)

// IsValid reports whether the operation type is one of the known types
func (t BulkOperationType) IsValid() bool {
	switch t {
	case BulkOperationDelete, BulkOperationImport, BulkOperationRateUpdate, BulkOperationPriceUpdate:
		return true
	}
	return false
}
