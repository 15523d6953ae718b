package warehouse

import (
	"fmt"

	"github.com/fruitscm/backend/internal/domain/shared"
)

// NewNoInventoryError reports that no available stock record exists for a
// product at the target warehouse.
func NewNoInventoryError(productName string) *shared.DomainError {
	return shared.NewDomainError("NO_INVENTORY", fmt.Sprintf("No available inventory for product %s", productName))
}

// NewInsufficientInventoryError reports that the total available quantity for
// a product cannot cover the requested amount.
func NewInsufficientInventoryError(productName string) *shared.DomainError {
	return shared.NewDomainError("INSUFFICIENT_INVENTORY", fmt.Sprintf("Insufficient inventory for product %s", productName))
}
